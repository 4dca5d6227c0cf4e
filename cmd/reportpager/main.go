// Command reportpager lays out inspection reports into printable pages.
//
// Usage:
//
//	reportpager plan report.json
//	reportpager plan --output yaml --verify reports/*.yaml
//	reportpager stats report.json
//	reportpager config --config heights.yaml
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/reportpager"
	"github.com/tsawler/reportpager/config"
	"github.com/tsawler/reportpager/format"
	"github.com/tsawler/reportpager/layout"
)

// app holds global flag values and the state built from them before a
// subcommand runs.
type app struct {
	configPath string
	envFile    string
	verbose    bool
	output     string

	logger *zap.Logger
	config *config.File
}

func newRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

// rootCmd builds the command tree around a. A logger already set on a is
// kept.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reportpager",
		Short: "Group inspection report sections into printable pages",
		Long: `reportpager estimates the printed height of every report section and
groups consecutive sections into pages that fit the page budget.

The cost model comes from --config (YAML) and REPORTPAGER_* environment
variables. Run "reportpager config --env-help" to list them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Height config file (YAML)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional .env file with REPORTPAGER_* settings")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "json", "Output format: json or yaml")

	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

// setup loads the environment and configuration and builds the logger.
func (a *app) setup() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", a.envFile, err)
		}
	}

	if a.logger == nil {
		cfg := zap.NewProductionConfig()
		if a.verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	f, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.config = f
	a.logger.Debug("configuration loaded", zap.String("path", a.configPath))
	return nil
}

// outputFormat validates the --output flag.
func (a *app) outputFormat() (format.Format, error) {
	f := format.Parse(a.output)
	if f == format.Unknown {
		return f, fmt.Errorf("unknown output format %q (want json or yaml)", a.output)
	}
	return f, nil
}

// heightConfig returns the loaded cost model.
func (a *app) heightConfig() (layout.HeightConfig, error) {
	return a.config.HeightConfig()
}

// engine builds a layout engine from the loaded configuration.
func (a *app) engine() (*reportpager.Engine, error) {
	cfg, err := a.heightConfig()
	if err != nil {
		return nil, err
	}
	opts := []reportpager.Option{
		reportpager.WithConfig(cfg),
		reportpager.WithLogger(a.logger),
		reportpager.WithCacheSize(a.config.Engine.CacheSize),
	}
	if a.config.Engine.Concurrency > 0 {
		opts = append(opts, reportpager.WithConcurrency(a.config.Engine.Concurrency))
	}
	return reportpager.NewEngine(opts...)
}

// write encodes v in the --output format to the command's stdout.
func (a *app) write(cmd *cobra.Command, v any) error {
	f, err := a.outputFormat()
	if err != nil {
		return err
	}
	out, err := format.Encode(v, f)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
