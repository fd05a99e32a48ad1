package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/client"
	"github.com/shenikar/emergency_alert_system/internal/config"
	"github.com/shenikar/emergency_alert_system/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg *config.ClientConfig
	log *logrus.Logger

	serverFlag  string
	timeoutFlag time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "alert",
	Short:        "Report emergencies to the alert intake service",
	Long:         "Sends emergency alerts with an optional position to the intake service and queries their status.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadClientConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("server") {
			c.ServerURL = strings.TrimRight(serverFlag, "/")
		}
		if cmd.Flags().Changed("timeout") {
			if timeoutFlag <= 0 {
				return fmt.Errorf("--timeout must be positive, got %s", timeoutFlag)
			}
			c.SubmitTimeout = timeoutFlag
		}
		cfg = c

		// логи в stderr, результат команды в stdout
		log = logger.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "intake service URL (overrides ALERT_SERVER_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "request timeout (overrides SUBMIT_TIMEOUT)")

	rootCmd.AddCommand(reportCmd, categoriesCmd, statusCmd, historyCmd, healthCmd)
}

func newSubmissionClient() *client.SubmissionClient {
	return client.New(cfg.ServerURL, cfg.SubmitTimeout, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
