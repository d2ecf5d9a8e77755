package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hupe1980/crewpram/internal/config"
)

type rootFlags struct {
	configPath  string
	size        int
	target      int
	processors  int
	legacy      bool
	workers     int
	rate        float64
	memoryLimit int64
	showValues  int
	quiet       bool
	verbose     bool
	metrics     bool
	promFile    string
}

// newRootCmd builds the crewsearch command. A nil logger is built from the
// configuration before the command runs.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	f := &rootFlags{}
	ownLogger := logger == nil

	rootCmd := &cobra.Command{
		Use:   "crewsearch",
		Short: "Simulate a CREW-PRAM parallel search over 1..N",
		Long: `crewsearch generates the ascending sequence 1..N and searches it for a
target with P simulated CREW-PRAM processors. Each stage prints the window,
the processors' frontiers with their search directions, and the narrowed
window. N is read from stdin when --size is not given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !ownLogger {
				return nil
			}
			level := "info"
			if cfg, err := config.Load(f.configPath); err == nil {
				level = cfg.Logging.Level
			}
			var err error
			logger, err = newLogger(level, f.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ownLogger && logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, f, logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	d := config.DefaultConfig()
	flags = rootCmd.Flags()
	flags.IntVarP(&f.size, "size", "n", 0, "sequence size N (prompted when unset)")
	flags.IntVarP(&f.target, "target", "t", d.Target, "value to search for")
	flags.IntVarP(&f.processors, "processors", "p", d.Processors, "number of virtual processors")
	flags.BoolVar(&f.legacy, "legacy", false, "use the classic float stage count and high-1 clamp")
	flags.IntVar(&f.workers, "workers", 0, "evaluate frontiers on this many goroutines (0 = sequential)")
	flags.Float64Var(&f.rate, "rate", 0, "stages per second (0 = unpaced)")
	flags.Int64Var(&f.memoryLimit, "memory-limit", 0, "memory budget in bytes for the sequence (0 = unlimited)")
	flags.IntVar(&f.showValues, "show-values", d.Search.ShowValues, "window values printed per stage (-1 = all)")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "print only the result line")
	flags.BoolVar(&f.metrics, "metrics", false, "print search metrics after the result")
	flags.StringVar(&f.promFile, "prom-file", "", "write Prometheus metrics in text format to this file")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadConfig merges the config file, environment and explicitly set flags.
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("size") {
		cfg.Size = f.size
	}
	if changed("target") {
		cfg.Target = f.target
	}
	if changed("processors") {
		cfg.Processors = f.processors
	}
	if changed("legacy") {
		cfg.Search.Legacy = f.legacy
	}
	if changed("workers") {
		cfg.Search.Workers = f.workers
	}
	if changed("rate") {
		cfg.Resources.StagesPerSecond = f.rate
	}
	if changed("memory-limit") {
		cfg.Resources.MemoryLimitBytes = f.memoryLimit
	}
	if changed("show-values") {
		cfg.Search.ShowValues = f.showValues
	}
	if changed("quiet") {
		cfg.Search.Quiet = f.quiet
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage crewsearch configuration files",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultConfig().Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})

	return configCmd
}
