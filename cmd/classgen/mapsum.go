package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/classgen/internal/vtmap"
)

var mapsumCmd = &cobra.Command{
	Use:   "mapsum [file]",
	Short: "Sum vtable-map coverage across runs",
	Long: `Sum every "<total> <covered>" line read from a file or stdin, as
produced by mapcheck, and print the totals. Other lines are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMapsum,
}

func runMapsum(cmd *cobra.Command, args []string) error {
	in, name, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	var sum vtmap.Summary
	if err := sum.Feed(in); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	fmt.Fprintln(output, sum.String())
	return nil
}
