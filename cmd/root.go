package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel   string // Log verbosity level
	configPath string // Optional YAML file with default option values

	toolConfig Config // Defaults loaded from configPath
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sampledb",
	Short: "Build the sample database for PEC tuples",
	Long: `sampledb prepares the sample database used by the analysis framework.

  sampledb norm SRC_DIR      computes event counts and mean weights per dataset
  sampledb build SRC_DIR     merges sample descriptions, normalization, and file masks
  sampledb inspect CATALOG   resolves datasets from a built catalog`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath != "" {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load config: %v", err)
			}
			toolConfig = cfg
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with default option values")
}
