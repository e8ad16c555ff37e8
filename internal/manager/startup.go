package manager

import "context"

// LoadStartupModels eagerly fetches bundles for the first limit pairs of
// the full supported catalog, bounding cold-start cost; pairs beyond the
// limit are fetched lazily on first predict. A negative limit loads the
// whole catalog, zero loads nothing. Each pair's failure is isolated so
// one bad model cannot abort the rest of the startup load. Returns the
// number of pairs whose bundle is present after the pass.
func (m *Manager) LoadStartupModels(ctx context.Context, limit int) int {
	pairs := m.pairs
	if limit == 0 {
		return 0
	}
	if limit > 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}
	loaded := 0
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			m.log.Warn().Err(err).Msg("startup load interrupted")
			break
		}
		if err := m.EnsureLocal(ctx, pair, m.overwrite); err != nil {
			m.log.Error().Err(err).Str("pair", pair).
				Msg("startup fetch failed, continuing with remaining pairs")
			continue
		}
		loaded++
	}
	m.log.Info().Int("loaded", loaded).Int("requested", len(pairs)).
		Msg("startup model loading finished")
	return loaded
}
