package cmd

import (
	"fmt"
	"os"

	"github.com/jjenkins/polls/internal/config"
	"github.com/jjenkins/polls/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "polls",
	Short: "Polls web application",
	Long: `Polls publishes questions with a set of choices, collects votes and
shows the results.

Configuration is read from the environment (and an optional .env file):
  PORT, DATABASE_URL, LOG_LEVEL, TIME_ZONE, LATEST_LIMIT`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
