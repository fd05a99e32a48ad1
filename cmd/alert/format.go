package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shenikar/emergency_alert_system/internal/client"
	"github.com/shenikar/emergency_alert_system/internal/location"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/reporter"
)

const timeLayout = "2006-01-02 15:04:05 MST"

func formatPosition(p *models.PositionReading) string {
	if p == nil {
		return "not available"
	}
	return fmt.Sprintf("%.5f, %.5f (±%.0f m)", p.Latitude, p.Longitude, p.Accuracy)
}

// formatPayload показывает тревогу перед подтверждением
func formatPayload(out io.Writer, payload models.AlertPayload) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Emergency:\t%s\n", payload.Category)
	_, _ = fmt.Fprintf(w, "Location:\t%s\n", formatPosition(payload.Position))
	_, _ = fmt.Fprintf(w, "Contact:\t%s\n", payload.ReporterContact)
	if payload.Description != "" {
		_, _ = fmt.Fprintf(w, "Description:\t%s\n", payload.Description)
	}
	_ = w.Flush()
}

func formatOutcome(out io.Writer, outcome *reporter.Outcome) {
	if outcome.LocationErr != nil && !errors.Is(outcome.LocationErr, location.ErrPermissionDenied) {
		_, _ = fmt.Fprintf(out, "Note: %v\n", outcome.LocationErr)
	}
	_, _ = fmt.Fprintln(out, outcome.Message)
}

func formatRecord(out io.Writer, r *models.AlertRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID:\t%s\n", r.ID)
	_, _ = fmt.Fprintf(w, "Emergency:\t%s\n", r.Category)
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", r.Status)
	_, _ = fmt.Fprintf(w, "Location:\t%s\n", formatPosition(r.Position))
	_, _ = fmt.Fprintf(w, "Contact:\t%s\n", r.ReporterContact)
	if r.Description != "" {
		_, _ = fmt.Fprintf(w, "Description:\t%s\n", r.Description)
	}
	_, _ = fmt.Fprintf(w, "Received:\t%s\n", r.SubmittedAt.Format(timeLayout))
	if r.AcknowledgedAt != nil {
		_, _ = fmt.Fprintf(w, "Acknowledged:\t%s\n", r.AcknowledgedAt.Format(timeLayout))
	}
	_ = w.Flush()
}

func formatRecordList(out io.Writer, records []*models.AlertRecord) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No alerts found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMERGENCY\tSTATUS\tRECEIVED")
	_, _ = fmt.Fprintln(w, "--\t---------\t------\t--------")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Category, r.Status, r.SubmittedAt.Format(timeLayout))
	}
	_ = w.Flush()
}

func formatCategories(out io.Writer, categories []string) {
	for i, c := range categories {
		_, _ = fmt.Fprintf(out, "%2d. %s\n", i+1, c)
	}
}

func formatHealth(out io.Writer, h *client.Health) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", h.Status)
	_, _ = fmt.Fprintf(w, "Alerts stored:\t%d\n", h.RecordCount)
	_, _ = fmt.Fprintf(w, "Server time:\t%s\n", h.Timestamp.Format(timeLayout))
	_ = w.Flush()
}
