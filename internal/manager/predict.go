package manager

import (
	"context"
	"strings"

	"translatord/pkg/types"
)

// Predict translates text using the model for the given pair.
//
// The missing-model policy governs behavior when the bundle is absent:
// strict fails immediately, lenient attempts exactly one on-demand fetch
// before failing. Exactly one generation call is performed per invocation;
// batching across texts belongs to the caller, as does per-item failure
// isolation.
func (m *Manager) Predict(ctx context.Context, pair, text string, params types.GenerationParams, policy types.MissingModelPolicy) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrInvalidInput("text must be a non-empty string")
	}
	if _, err := m.Resolve(pair); err != nil {
		return "", err
	}
	pair = normalizePair(pair)

	if !m.bundleExists(pair) {
		if policy == types.PolicyStrict {
			return "", artifactMissingError{pair: pair, dir: m.bundleDir(pair)}
		}
		m.log.Warn().Str("pair", pair).
			Msg("model not found locally, attempting on-demand fetch")
		if err := m.EnsureLocal(ctx, pair, false); err != nil {
			m.log.Error().Err(err).Str("pair", pair).Msg("on-demand fetch failed")
		}
		// One attempt only; no retry loop.
		if !m.bundleExists(pair) {
			return "", artifactMissingError{pair: pair, dir: m.bundleDir(pair)}
		}
	}

	e, err := m.getOrLoad(ctx, pair)
	if err != nil {
		return "", err
	}

	e.genMu.Lock()
	defer e.genMu.Unlock()

	enc, err := e.tokenizer.Encode(ctx, text)
	if err != nil {
		return "", err
	}
	sequences, err := e.model.Generate(ctx, enc, params)
	if err != nil {
		return "", err
	}
	// Beam search returns sequences best-first; decode the first one and
	// strip special/control tokens.
	return e.tokenizer.Decode(ctx, sequences[0], true)
}
