// Package seq2seq abstracts the model runtime used for translation:
// loading a converted model and its tokenizer from a local bundle directory
// and driving sequence generation. The manager depends only on these
// interfaces; the concrete implementation talks to an inference sidecar.
package seq2seq

import (
	"context"

	"translatord/pkg/types"
)

// Encoding is tokenizer output fed into generation.
type Encoding struct {
	InputIDs      []int32 `json:"input_ids"`
	AttentionMask []int32 `json:"attention_mask"`
}

// Tokenizer converts between text and token ids.
type Tokenizer interface {
	// Encode tokenizes text with truncation and padding enabled.
	Encode(ctx context.Context, text string) (Encoding, error)
	// Decode converts a generated sequence back to text, optionally
	// stripping special/control tokens.
	Decode(ctx context.Context, ids []int32, skipSpecialTokens bool) (string, error)
}

// Model is a loaded seq2seq model ready for generation.
type Model interface {
	// Generate runs beam-search decoding and returns the output sequences,
	// best first.
	Generate(ctx context.Context, enc Encoding, params types.GenerationParams) ([][]int32, error)
	// Close releases runtime resources held for this model.
	Close() error
}

// Runtime materializes models and tokenizers from an artifact bundle
// directory. Paths must be absolute: a relative path risks the loader
// misreading it as a hub identifier instead of a local directory.
type Runtime interface {
	LoadModel(ctx context.Context, absDir string) (Model, error)
	LoadTokenizer(ctx context.Context, absDir string) (Tokenizer, error)
}
