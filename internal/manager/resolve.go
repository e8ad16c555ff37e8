package manager

import "strings"

// normalizePair lowercases and trims a translation pair key.
func normalizePair(pair string) string {
	return strings.ToLower(strings.TrimSpace(pair))
}

// Resolve maps a translation pair to its model hub identifier. The key is
// normalized to lowercase; unknown pairs fail with an error naming the
// supported set. Pure lookup, no side effects.
func (m *Manager) Resolve(pair string) (string, error) {
	key := normalizePair(pair)
	modelID, ok := m.mappings[key]
	if !ok {
		return "", ErrUnknownPair(key, m.supportedPairs())
	}
	return modelID, nil
}
