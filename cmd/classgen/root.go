package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skdltmxn/classgen/internal/config"
)

var (
	outputFile string
	configFile string
	verbose    bool
	output     io.Writer
	logger     *zap.Logger
)

// Search flags; applied over the loaded configuration only when set.
var (
	flagClasses    int
	flagMaxParents int
	flagDiamond    bool
	flagOverride   string
	flagVariants   int
	flagSeed       uint64
	flagDir        string
	flagWorkers    int
)

var rootCmd = &cobra.Command{
	Use:   "classgen",
	Short: "C++ class hierarchy test program generator",
	Long: `classgen enumerates every legal C++ class hierarchy up to a given
size and writes one self-contained test program per hierarchy.

Each program constructs, casts, calls and destroys every class along every
inheritance path, exercising base layout, vtables and virtual dispatch.
The mapcheck and mapsum commands analyze vtable-map coverage reports
produced by running instrumented builds of those programs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l

		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = cmd.OutOrStdout()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	pf.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	pf.IntVar(&flagClasses, "classes", 0, "number of classes in a full hierarchy")
	pf.IntVar(&flagMaxParents, "max-parents", 0, "maximum direct bases per class")
	pf.BoolVar(&flagDiamond, "diamond", true, "allow diamond inheritance")
	pf.StringVar(&flagOverride, "override", "", "method overrides (none, all, random)")
	pf.IntVar(&flagVariants, "variants", 0, "programs per hierarchy with random overrides")
	pf.Uint64Var(&flagSeed, "seed", 0, "seed for random overrides")
	pf.StringVar(&flagDir, "dir", "", "directory receiving generated programs")
	pf.IntVar(&flagWorkers, "workers", 0, "concurrent program writes (0 = one per CPU)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(mapcheckCmd)
	rootCmd.AddCommand(mapsumCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// loadConfig layers defaults, the --config file, CLASSGEN_* variables and
// explicitly set flags, then validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Layer(configFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("classes") {
		cfg.Classes = flagClasses
	}
	if flags.Changed("max-parents") {
		cfg.MaxParents = flagMaxParents
	}
	if flags.Changed("diamond") {
		cfg.Diamond = flagDiamond
	}
	if flags.Changed("override") {
		cfg.Override = flagOverride
	}
	if flags.Changed("variants") {
		cfg.RandomVariants = flagVariants
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("dir") {
		cfg.OutputDir = flagDir
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("configuration loaded",
		zap.String("file", configFile),
		zap.Int("classes", cfg.Classes),
		zap.Int("max_parents", cfg.MaxParents),
		zap.Bool("diamond", cfg.Diamond),
		zap.String("override", cfg.Override))
	return cfg, nil
}
