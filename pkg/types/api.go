package types

import "encoding/json"

// PredictItem is a single text to translate within a predict request.
type PredictItem struct {
	// Required text to translate.
	// example: Hello, how are you?
	Text string `json:"text" example:"Hello, how are you?"`
	// Maximum length of the generated translation, in tokens (default 512).
	// example: 512
	MaxLength int `json:"max_length,omitempty" example:"512"`
	// Number of beams for beam search (default 4).
	// example: 4
	NumBeams int `json:"num_beams,omitempty" example:"4"`
	// Stop generation when all beams finish (default true).
	// example: true
	EarlyStopping *bool `json:"early_stopping,omitempty" example:"true"`
}

// Params materializes the item's generation parameters, applying defaults
// for unset fields.
func (it PredictItem) Params() GenerationParams {
	p := DefaultGenerationParams()
	if it.MaxLength > 0 {
		p.MaxLength = it.MaxLength
	}
	if it.NumBeams > 0 {
		p.NumBeams = it.NumBeams
	}
	if it.EarlyStopping != nil {
		p.EarlyStopping = *it.EarlyStopping
	}
	return p
}

// PredictRequest is the payload for POST /predict/{pair}. A single item
// performs an individual translation; multiple items are processed as a
// batch with per-item failure isolation.
type PredictRequest struct {
	Items []PredictItem `json:"items"`
}

// PredictResult holds the outcome of one batch item, keyed by the item's
// original position in the request. Exactly one of Result and Error is set.
type PredictResult struct {
	// Zero-based position of the item in the request batch.
	// example: 0
	Position int `json:"position" example:"0"`
	// Translated text.
	// example: Hola, como estas?
	Result string `json:"result,omitempty" example:"Hola, como estas?"`
	// Failure message when this item could not be translated.
	Error string `json:"error,omitempty"`
}

// PredictResponse is returned by POST /predict/{pair}.
type PredictResponse struct {
	Results []PredictResult `json:"results"`
}

// ModelDescription describes one locally available model bundle.
type ModelDescription struct {
	// Model hub identifier backing this pair.
	// example: Helsinki-NLP/opus-mt-en-es
	ModelName string `json:"model_name" example:"Helsinki-NLP/opus-mt-en-es"`
	// On-disk storage format of the bundle.
	// example: ONNX
	FileType string `json:"file_type" example:"ONNX"`
	// Structural config of the model, included on request when the
	// bundle's config file parses.
	Config json.RawMessage `json:"config,omitempty"`
}

// ModelsResponse wraps the catalog returned by GET /models, keyed by
// translation pair.
type ModelsResponse struct {
	Models map[string]ModelDescription `json:"models"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	// example: translatord
	Name string `json:"name" example:"translatord"`
	// example: v0.1.0
	Version string `json:"version" example:"v0.1.0"`
	// example: API for text translation using pre-trained seq2seq models.
	Description string `json:"description"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// PairStatus summarizes one translation pair for GET /status.
type PairStatus struct {
	// Translation pair key.
	// example: en-es
	Pair string `json:"pair" example:"en-es"`
	// Model hub identifier for the pair.
	// example: Helsinki-NLP/opus-mt-en-es
	ModelName string `json:"model_name" example:"Helsinki-NLP/opus-mt-en-es"`
	// Whether the artifact bundle exists on local disk.
	// example: true
	Downloaded bool `json:"downloaded" example:"true"`
	// Whether the model is loaded in memory.
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// Last time the loaded model served a request (unix seconds, 0 if never).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix,omitempty" example:"1700000000"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Per-pair state for every supported pair.
	Pairs []PairStatus `json:"pairs"`
	// Storage mode the daemon runs with.
	// example: s3
	StorageMode string `json:"storage_mode" example:"s3"`
	// Number of models currently loaded in memory.
	// example: 2
	LoadedModels int `json:"loaded_models" example:"2"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
