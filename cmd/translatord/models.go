package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List configured translation pairs and their local state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModels(cmd.Context())
	},
}

func runModels(ctx context.Context) error {
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

	st := mgr.Status()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAIR\tMODEL\tDOWNLOADED")
	for _, ps := range st.Pairs {
		fmt.Fprintf(w, "%s\t%s\t%v\n", ps.Pair, ps.ModelName, ps.Downloaded)
	}
	return w.Flush()
}
