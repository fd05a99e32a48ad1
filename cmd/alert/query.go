package main

import (
	"errors"
	"fmt"

	"github.com/shenikar/emergency_alert_system/internal/client"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/spf13/cobra"
)

var categoriesRemote bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List emergency categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !categoriesRemote {
			names := make([]string, 0, len(models.Categories()))
			for _, c := range models.Categories() {
				names = append(names, string(c))
			}
			formatCategories(cmd.OutOrStdout(), names)
			return nil
		}

		names, err := newSubmissionClient().Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		formatCategories(cmd.OutOrStdout(), names)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show a submitted alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := newSubmissionClient().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		formatRecord(cmd.OutOrStdout(), record)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <contact>",
	Short: "List alerts sent from a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := newSubmissionClient().ListByReporter(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		formatRecordList(cmd.OutOrStdout(), records)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the intake service is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		health, err := newSubmissionClient().Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("health: %s: %w", describeFailure(err), err)
		}
		formatHealth(cmd.OutOrStdout(), health)
		return nil
	},
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesRemote, "remote", false, "fetch the list from the server")
}

// describeFailure отличает недоступный сервер от сервера, отвечающего ошибкой
func describeFailure(err error) string {
	var serr *client.SubmissionError
	if !errors.As(err, &serr) {
		return "request failed"
	}
	if serr.StatusCode == 0 {
		return "server unreachable"
	}
	return fmt.Sprintf("server responded with status %d", serr.StatusCode)
}
