package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/shenikar/emergency_alert_system/internal/composer"
	"github.com/shenikar/emergency_alert_system/internal/location"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/reporter"
	"github.com/spf13/cobra"
)

var errNotDelivered = errors.New("alert was not delivered")

var (
	reportContact     string
	reportDescription string
	reportLat         float64
	reportLng         float64
	reportAccuracy    float64
	reportLocate      string
	reportYes         bool
)

var reportCmd = &cobra.Command{
	Use:   "report <category>",
	Short: "Send an emergency alert",
	Long:  "Determines the position, shows the alert for confirmation and sends it. Run 'alert categories' for the list of categories.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		category, err := models.ParseCategory(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q (run 'alert categories')", err, args[0])
		}

		term := newTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
		locator, err := newLocator(cmd, term)
		if err != nil {
			return err
		}

		var contact *string
		if cmd.Flags().Changed("contact") {
			contact = &reportContact
		}

		var confirmer reporter.Confirmer = autoConfirm{}
		if !reportYes {
			confirmer = term
		}

		r := reporter.New(locator, composer.New(), confirmer, newSubmissionClient(), log)
		outcome, err := r.Report(ctx, category, contact, reportDescription)
		if err != nil {
			return err
		}

		formatOutcome(cmd.OutOrStdout(), outcome)
		if outcome.SubmitErr != nil {
			return errNotDelivered
		}
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportContact, "contact", "", "reporter phone number or other contact")
	f.StringVar(&reportDescription, "description", "", "short free-text description")
	f.Float64Var(&reportLat, "lat", 0, "latitude for --locate static")
	f.Float64Var(&reportLng, "lng", 0, "longitude for --locate static")
	f.Float64Var(&reportAccuracy, "accuracy", 0, "accuracy in meters for --locate static")
	f.StringVar(&reportLocate, "locate", "ip", "position source: static, ip or none")
	f.BoolVarP(&reportYes, "yes", "y", false, "send without confirmation and share position without asking")
}

// newLocator выбирает источник координат. Без --yes доступ к координатам спрашивается у пользователя.
func newLocator(cmd *cobra.Command, prompter location.Prompter) (reporter.Locator, error) {
	var provider location.Provider
	switch reportLocate {
	case "none":
		return nil, nil
	case "static":
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
			return nil, errors.New("--locate static requires --lat and --lng")
		}
		provider = location.NewStaticProvider(reportLat, reportLng, reportAccuracy)
	case "ip":
		provider = location.NewIPProvider(cfg.GeolocationURL, cfg.SubmitTimeout, log)
	default:
		return nil, fmt.Errorf("unknown --locate value %q: want static, ip or none", reportLocate)
	}

	if reportYes {
		return provider, nil
	}
	return location.NewPermissionGate(provider, prompter), nil
}
