// Package hub wraps the external model hub / converter capability: turning
// a hub model identifier into an on-disk ONNX artifact bundle.
package hub

import "context"

// Converter produces an artifact bundle for a hub model identifier.
// A successful call leaves converted weights, the structural config and the
// tokenizer files in destDir.
type Converter interface {
	ConvertAndDownload(ctx context.Context, modelID, destDir string) error
}
