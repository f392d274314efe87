// Package cmd provides the CLI commands for units.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"units-system/core/system"
	"units-system/internal/config"
	"units-system/internal/logging"
	"units-system/internal/metrics"
)

// Version is the CLI version, overridden at link time
var Version = "0.1.0"

var (
	cfgFile     string
	verbose     bool
	defPaths    []string
	showMetrics bool

	// collector is set by loadSystem when metrics are enabled and dumped
	// after the command ran
	collector *metrics.Collector
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "units",
	Short: "Evaluate and convert physical quantities",
	Long: `units evaluates unit expressions, converts between compatible units
and lists the registered units and physical constants.

Examples:
  units convert "270*km/h" "m/s"
  units convert --relative "10*°C" "°F"
  units eval --with c "1*GeV/c**2" --si
  units dimension "kg*m/s**2"
  units units list --dimension length`,
	SilenceUsage:       true,
	PersistentPostRunE: dumpMetrics,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.units/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringSliceVar(&defPaths, "defs", nil, "extra definition files (glob patterns, .hcl or .yaml)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "log lookup and conversion counters on exit")

	// Add subcommands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(dimensionCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		return
	}
	logging.Debug("configuration loaded",
		zap.String("path", path),
		zap.Strings("definitions", cfg.Definitions.Paths),
		zap.Int("precision", cfg.Output.Precision))
}

// loadSystem builds the frozen unit system from the configuration and the
// --defs flag.
func loadSystem() (*system.System, error) {
	cfg := config.Get()

	opts := []system.Option{
		system.WithLogger(logging.Named("system")),
		system.WithDefinitionPaths(cfg.Definitions.Paths...),
		system.WithDefinitionPaths(defPaths...),
		system.WithStrict(cfg.Definitions.Strict),
	}
	collector = nil
	if showMetrics || cfg.Metrics.Enabled {
		collector = metrics.New()
		opts = append(opts, system.WithMetrics(collector))
	}
	return system.New(opts...)
}

func dumpMetrics(cmd *cobra.Command, args []string) error {
	if collector == nil {
		return nil
	}
	cfg := config.Get().Logging
	cfg.Level = "info"
	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	return collector.Dump(logger.Named("metrics").With(zap.String("command", cmd.Name())))
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "units version %s\n", Version)
	},
}
