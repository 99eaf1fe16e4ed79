package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classgen/hierarchy"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display configuration and hierarchy counts",
	Long:  `Display the effective configuration and how many hierarchies and programs generate would produce, without writing files.`,
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	byDepth := make([]int, cfg.Classes+1)
	total := 0
	err = hierarchy.Walk(cfg.SearchOptions(), func(h *hierarchy.Hierarchy) error {
		byDepth[h.Len()]++
		total++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to enumerate hierarchies: %w", err)
	}

	fmt.Fprintf(output, "Classes: %d\n", cfg.Classes)
	fmt.Fprintf(output, "Max Parents: %d\n", cfg.MaxParents)
	fmt.Fprintf(output, "Diamond: %t\n", cfg.Diamond)
	fmt.Fprintf(output, "Override: %s\n", cfg.OverrideMode())
	if cfg.Variants() > 1 {
		fmt.Fprintf(output, "Variants: %d\n", cfg.Variants())
		fmt.Fprintf(output, "Seed: %d\n", cfg.Seed)
	}
	fmt.Fprintf(output, "Output: %s/%s<N>%s\n", cfg.OutputDir, cfg.FilePrefix, cfg.FileExt)
	fmt.Fprintf(output, "Hierarchies: %d\n", total)
	for n := 1; n < len(byDepth); n++ {
		fmt.Fprintf(output, "  %d classes: %d\n", n, byDepth[n])
	}
	fmt.Fprintf(output, "Programs: %d\n", total*cfg.Variants())
	return nil
}
