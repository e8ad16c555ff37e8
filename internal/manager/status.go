package manager

import (
	"time"

	"translatord/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		StorageMode:    string(m.mode),
		LoadedModels:   len(m.entries),
		UptimeSeconds:  int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	resp.Pairs = make([]types.PairStatus, 0, len(m.pairs))
	for _, pair := range m.pairs {
		ps := types.PairStatus{
			Pair:       pair,
			ModelName:  m.mappings[pair],
			Downloaded: m.bundleExists(pair),
		}
		if e, ok := m.entries[pair]; ok {
			ps.Loaded = true
			ps.LastUsed = e.lastUsed.Unix()
		}
		resp.Pairs = append(resp.Pairs, ps)
	}
	return resp
}

// Ready reports whether the manager can serve at least one pair, used by
// the readiness probe.
func (m *Manager) Ready() bool {
	for _, pair := range m.pairs {
		if _, ok := m.mappings[pair]; ok && m.bundleExists(pair) {
			return true
		}
	}
	return false
}
