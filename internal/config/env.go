package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overlays environment variables onto cfg. It is called exactly
// once in main; the rest of the code receives the resulting immutable
// Config and never reads the environment directly.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("TRANSLATORD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MODELS_DIR"); v != "" {
		cfg.ModelsDir = v
	}
	if v := os.Getenv("MODEL_STORAGE_MODE"); v != "" {
		cfg.StorageMode = strings.ToLower(v)
	}
	if v := os.Getenv("S3_BUCKET_NAME"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWSRegion = v
	}
	if v := os.Getenv("OVERWRITE_EXISTING_MODELS"); v != "" {
		cfg.OverwriteExisting = parseBool(v)
	}
	if v := os.Getenv("RAISE_ON_MISSING_MODEL"); v != "" {
		cfg.StrictMissingModels = parseBool(v)
	}
	if v := os.Getenv("STARTUP_MODEL_LOADING_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StartupLoadLimit = n
		}
	}
	if v := os.Getenv("MAX_LOADED_MODELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxLoadedModels = n
		}
	}
	if v := os.Getenv("MODEL_MAPPINGS_FILE"); v != "" {
		cfg.MappingsFile = v
	}
	if v := os.Getenv("CONVERTER_BIN"); v != "" {
		cfg.ConverterBin = v
	}
	if v := os.Getenv("RUNTIME_URL"); v != "" {
		cfg.RuntimeURL = v
	}
	if v := os.Getenv("TRANSLATORD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
