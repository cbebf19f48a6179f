package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/config"
	"github.com/chriserin/gherk/internal/logger"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "gherk",
	Short:        "Parse and catalogue Gherkin feature files",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.Log.Level = logLevel
			if err := c.Validate(); err != nil {
				return err
			}
		}
		logger.Init(cmd.ErrOrStderr(), logger.Config{Level: c.Log.Level, Format: c.Log.Format})
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
