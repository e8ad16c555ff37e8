package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"translatord/internal/common/fsutil"
	"translatord/internal/config"
	"translatord/internal/hub"
	"translatord/internal/manager"
	"translatord/internal/seq2seq"
	"translatord/internal/storage"
	"translatord/pkg/types"
)

const (
	runtimeRequestTimeout = 120 * time.Second
	runtimeConnectTimeout = 5 * time.Second
)

// resolveConfig builds the effective configuration: file (if any), then
// environment overlay, then CLI-level overrides and defaults. The result is
// treated as immutable from here on.
func resolveConfig() (config.Config, error) {
	var cfg config.Config
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", cfgPath, err)
		}
	}
	cfg = config.ApplyEnv(cfg)
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = "./models"
	}
	cfg.ModelsDir = fsutil.ExpandHome(cfg.ModelsDir)
	if cfg.StorageMode == "" {
		cfg.StorageMode = string(types.StorageLocal)
	}
	if cfg.RuntimeURL == "" {
		cfg.RuntimeURL = "http://127.0.0.1:8501"
	}

	// Mappings from file first, inline entries win on conflict.
	if cfg.MappingsFile != "" {
		fromFile, err := config.LoadMappingsFile(cfg.MappingsFile)
		if err != nil {
			return cfg, fmt.Errorf("load mappings %s: %w", cfg.MappingsFile, err)
		}
		for k, v := range cfg.ModelMappings {
			fromFile[k] = v
		}
		cfg.ModelMappings = fromFile
	}
	// With no explicit pair list, serve everything that is mapped.
	if len(cfg.Pairs) == 0 {
		for k := range cfg.ModelMappings {
			cfg.Pairs = append(cfg.Pairs, k)
		}
		sort.Strings(cfg.Pairs)
	}
	return cfg, nil
}

// buildManager wires storage, converter and runtime into a Manager.
func buildManager(ctx context.Context, cfg config.Config, log zerolog.Logger) (*manager.Manager, error) {
	mode := types.StorageMode(cfg.StorageMode)

	var backend storage.Backend
	if mode == types.StorageS3 {
		s3b, err := storage.NewS3Backend(ctx, storage.S3Options{Region: cfg.AWSRegion}, log)
		if err != nil {
			return nil, fmt.Errorf("init s3 backend: %w", err)
		}
		backend = s3b
	} else {
		backend = storage.NewLocalBackend(cfg.ModelsDir, log)
	}

	return manager.NewWithConfig(manager.ManagerConfig{
		Pairs:           cfg.Pairs,
		Mappings:        cfg.ModelMappings,
		StorageMode:     mode,
		Bucket:          cfg.S3Bucket,
		BaseDir:         cfg.ModelsDir,
		Overwrite:       cfg.OverwriteExisting,
		MaxLoadedModels: cfg.MaxLoadedModels,
		Backend:         backend,
		Converter:       hub.NewExecConverter(cfg.ConverterBin, log),
		Runtime:         seq2seq.NewServerRuntime(cfg.RuntimeURL, runtimeRequestTimeout, runtimeConnectTimeout),
		Logger:          log,
	})
}
