package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`

	// StorageMode selects where artifacts are sourced from: "local" or "s3".
	StorageMode string `json:"storage_mode" yaml:"storage_mode" toml:"storage_mode"`
	// S3Bucket is required when StorageMode is "s3".
	S3Bucket  string `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	AWSRegion string `json:"aws_region" yaml:"aws_region" toml:"aws_region"`

	// OverwriteExisting forces re-fetch of bundles that already exist locally.
	OverwriteExisting bool `json:"overwrite_existing" yaml:"overwrite_existing" toml:"overwrite_existing"`
	// StrictMissingModels fails predict requests for pairs whose bundle is
	// absent instead of attempting an on-demand fetch.
	StrictMissingModels bool `json:"strict_missing_models" yaml:"strict_missing_models" toml:"strict_missing_models"`
	// StartupLoadLimit bounds how many pairs are fetched eagerly at startup.
	// Negative means all, zero means none.
	StartupLoadLimit int `json:"startup_load_limit" yaml:"startup_load_limit" toml:"startup_load_limit"`
	// MaxLoadedModels bounds the in-memory cache (0 = unbounded).
	MaxLoadedModels int `json:"max_loaded_models" yaml:"max_loaded_models" toml:"max_loaded_models"`

	// Pairs is the ordered list of supported translation pairs (e.g. "en-es").
	Pairs []string `json:"pairs" yaml:"pairs" toml:"pairs"`
	// ModelMappings maps translation pairs to model hub identifiers. Entries
	// for pairs outside Pairs are dropped (with a warning) at construction.
	ModelMappings map[string]string `json:"model_mappings" yaml:"model_mappings" toml:"model_mappings"`
	// MappingsFile optionally points at a JSON file holding ModelMappings;
	// inline mappings take precedence over entries from the file.
	MappingsFile string `json:"mappings_file" yaml:"mappings_file" toml:"mappings_file"`

	// ConverterBin is the command invoked to convert a hub model into an
	// ONNX bundle directory (local storage mode).
	ConverterBin string `json:"converter_bin" yaml:"converter_bin" toml:"converter_bin"`
	// RuntimeURL is the base URL of the inference sidecar.
	RuntimeURL string `json:"runtime_url" yaml:"runtime_url" toml:"runtime_url"`

	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// LoadMappingsFile reads a JSON file mapping translation pairs to model hub
// identifiers, e.g. {"en-es": "Helsinki-NLP/opus-mt-en-es"}.
func LoadMappingsFile(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse mappings %s: %w", path, err)
	}
	return m, nil
}
