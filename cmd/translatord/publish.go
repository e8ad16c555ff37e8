package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var publishAll bool

var publishCmd = &cobra.Command{
	Use:   "publish [pair...]",
	Short: "Fetch model bundles from the hub and publish them to storage",
	Long: "Converts the named pairs' hub models into local ONNX bundles and, " +
		"in s3 storage mode, uploads each bundle under its pair prefix.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPublish(cmd.Context(), args)
	},
}

func init() {
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "publish every supported pair")
}

func runPublish(ctx context.Context, pairs []string) error {
	if len(pairs) == 0 && !publishAll {
		return fmt.Errorf("name at least one pair or pass --all")
	}
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)
	if ctx == nil {
		ctx = context.Background()
	}

	mgr, err := buildManager(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if publishAll {
		pairs = mgr.SupportedPairs()
	}
	var failed int
	for _, pair := range pairs {
		if err := mgr.SaveOrPublish(ctx, pair); err != nil {
			log.Error().Err(err).Str("pair", pair).Msg("publish failed")
			failed++
			continue
		}
		log.Info().Str("pair", pair).Msg("published")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pairs failed to publish", failed, len(pairs))
	}
	return nil
}
