package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skdltmxn/classgen/internal/stream"
	"github.com/skdltmxn/classgen/internal/vtmap"
)

var mapcheckEnd string

var mapcheckCmd = &cobra.Command{
	Use:   "mapcheck [report-file]",
	Short: "Check vtable-map coverage of one instrumented run",
	Long: `Read call-site records ("<callsite> <vtable> <map> <size>", addresses in
hex) from a report file or stdin and report every call site whose
verification map size differs from the number of distinct vtables seen.

The last line is "<total> <covered>", which mapsum aggregates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMapcheck,
}

func init() {
	mapcheckCmd.Flags().StringVar(&mapcheckEnd, "end", "", "ignore call sites at or above this hex address")
}

func runMapcheck(cmd *cobra.Command, args []string) error {
	var end uint64
	if mapcheckEnd != "" {
		v, err := stream.NewReader(mapcheckEnd).ReadHex()
		if err != nil {
			return fmt.Errorf("invalid end address %q: %w", mapcheckEnd, err)
		}
		end = v
	}

	in, name, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	acc := vtmap.NewAccumulator(end, logger)
	if err := acc.Feed(in); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	rep := acc.Report()
	logger.Info("report analyzed",
		zap.String("input", name),
		zap.Int("sites", len(rep.Sites)),
		zap.Int("incomplete", len(rep.Incomplete())),
		zap.Int("skipped", rep.Skipped),
		zap.Int("filtered", rep.Filtered))

	_, err = rep.WriteTo(output)
	return err
}

// openInput opens the file named by args, or stdin when there is none.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input: %w", err)
	}
	return f, args[0], nil
}
