package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"translatord/internal/httpapi"
	"translatord/pkg/types"
)

var serveFlags struct {
	addr         string
	modelsDir    string
	storageMode  string
	bucket       string
	startupLimit int
	corsEnabled  bool
	corsOrigins  []string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", "", "HTTP listen address, e.g. :8000")
	f.StringVar(&serveFlags.modelsDir, "models-dir", "", "directory holding artifact bundles")
	f.StringVar(&serveFlags.storageMode, "storage-mode", "", "artifact source: local or s3")
	f.StringVar(&serveFlags.bucket, "bucket", "", "s3 bucket holding published bundles")
	f.IntVar(&serveFlags.startupLimit, "startup-limit", 0, "pairs to fetch eagerly at startup (-1 = all)")
	f.BoolVar(&serveFlags.corsEnabled, "cors-enabled", false, "enable CORS middleware")
	f.StringSliceVar(&serveFlags.corsOrigins, "cors-origins", nil, "allowed CORS origins")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	// Flags set explicitly on the command line win over file and env.
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveFlags.addr
	}
	if cmd.Flags().Changed("models-dir") {
		cfg.ModelsDir = serveFlags.modelsDir
	}
	if cmd.Flags().Changed("storage-mode") {
		cfg.StorageMode = serveFlags.storageMode
	}
	if cmd.Flags().Changed("bucket") {
		cfg.S3Bucket = serveFlags.bucket
	}
	if cmd.Flags().Changed("startup-limit") {
		cfg.StartupLoadLimit = serveFlags.startupLimit
	}
	if cmd.Flags().Changed("cors-enabled") {
		cfg.CORSEnabled = serveFlags.corsEnabled
	}
	if cmd.Flags().Changed("cors-origins") {
		cfg.CORSOrigins = serveFlags.corsOrigins
	}
	log := newLogger(cfg.LogLevel)

	// Base context canceled on SIGINT/SIGTERM so in-flight work stops with
	// the server.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr, err := buildManager(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer mgr.Close()

	loaded := mgr.LoadStartupModels(ctx, cfg.StartupLoadLimit)
	log.Info().Int("loaded", loaded).Msg("startup model provisioning done")

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	if cfg.StrictMissingModels {
		httpapi.SetMissingModelPolicy(types.PolicyStrict)
	}
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Accept", "Content-Type"})

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(mgr)}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).
			Str("storage_mode", cfg.StorageMode).Msg("translatord listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
