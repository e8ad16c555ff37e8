package types

// StorageMode selects where model artifacts are sourced from.
type StorageMode string

const (
	StorageLocal StorageMode = "local"
	StorageS3    StorageMode = "s3"
)

// Valid reports whether the mode is one of the supported storage modes.
func (m StorageMode) Valid() bool {
	return m == StorageLocal || m == StorageS3
}

// MissingModelPolicy controls what Predict does when the artifact bundle
// for a pair is not present locally.
type MissingModelPolicy string

const (
	// PolicyStrict fails immediately; the caller must provision the model first.
	PolicyStrict MissingModelPolicy = "strict"
	// PolicyLenient attempts a single on-demand fetch before failing.
	PolicyLenient MissingModelPolicy = "lenient"
)

// Defaults for GenerationParams fields left unset by the caller.
const (
	DefaultMaxLength = 512
	DefaultNumBeams  = 4
)

// GenerationParams are the decode-time controls passed per request.
type GenerationParams struct {
	// Maximum length of the generated translation, in tokens.
	// example: 512
	MaxLength int `json:"max_length,omitempty" example:"512"`
	// Number of beams for beam search. Higher = better quality but slower.
	// example: 4
	NumBeams int `json:"num_beams,omitempty" example:"4"`
	// Stop generation when all beams finish. When false, generation
	// continues until MaxLength is reached.
	// example: true
	EarlyStopping bool `json:"early_stopping" example:"true"`
}

// DefaultGenerationParams returns the parameter set used when a request
// supplies nothing.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxLength:     DefaultMaxLength,
		NumBeams:      DefaultNumBeams,
		EarlyStopping: true,
	}
}
