package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classgen/internal/emit"
	"github.com/skdltmxn/classgen/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one test program per legal hierarchy",
	Long: `Enumerate every legal class hierarchy for the configured shape and
write one C++ program per hierarchy into the output directory.

With --override random, --variants programs are written per hierarchy,
each with its own reproducible choice of overridden methods.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sink := &emit.DirSink{Dir: cfg.OutputDir, Prefix: cfg.FilePrefix, Ext: cfg.FileExt}
	stats, err := generate.New(cfg, sink, logger).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Fprintf(output, "Solutions found: %d\n", stats.Hierarchies)
	if cfg.Variants() > 1 {
		fmt.Fprintf(output, "Programs written: %d\n", stats.Programs)
	}
	return nil
}
