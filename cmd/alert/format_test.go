package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/client"
	"github.com/shenikar/emergency_alert_system/internal/location"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/reporter"
	"github.com/stretchr/testify/assert"
)

func TestFormatPayload(t *testing.T) {
	var buf bytes.Buffer
	formatPayload(&buf, models.AlertPayload{
		Category:        models.CategoryFireOutbreak,
		Position:        &models.PositionReading{Latitude: 6.2, Longitude: 5.3, Accuracy: 10},
		ReporterContact: "08012345678",
	})

	output := buf.String()
	assert.Contains(t, output, "Fire Outbreak")
	assert.Contains(t, output, "6.20000, 5.30000 (±10 m)")
	assert.Contains(t, output, "08012345678")
	assert.NotContains(t, output, "Description")
}

func TestFormatPayload_NoPosition(t *testing.T) {
	var buf bytes.Buffer
	formatPayload(&buf, models.AlertPayload{Category: models.CategoryRiots, ReporterContact: "unknown", Description: "crowd at junction"})

	assert.Contains(t, buf.String(), "not available")
	assert.Contains(t, buf.String(), "crowd at junction")
}

func TestFormatOutcome_LocationNote(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantNote bool
	}{
		{name: "unavailable", err: &location.UnavailableError{Reason: "no fix"}, wantNote: true},
		{name: "denied", err: location.ErrPermissionDenied, wantNote: false},
		{name: "none", err: nil, wantNote: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatOutcome(&buf, &reporter.Outcome{LocationErr: tt.err, Message: "EMERGENCY ALERT SENT"})

			assert.Contains(t, buf.String(), "EMERGENCY ALERT SENT")
			assert.Equal(t, tt.wantNote, bytes.Contains(buf.Bytes(), []byte("Note:")))
		})
	}
}

func TestFormatRecordList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []*models.AlertRecord{
		{ID: "id-1", Category: models.CategoryFlooding, Status: models.AlertStatusReported, SubmittedAt: now},
		{ID: "id-2", Category: models.CategoryKidnapping, Status: models.AlertStatusAcknowledged, SubmittedAt: now.Add(time.Minute)},
	}

	var buf bytes.Buffer
	formatRecordList(&buf, records)

	output := buf.String()
	assert.Contains(t, output, "EMERGENCY")
	assert.Contains(t, output, "id-1")
	assert.Contains(t, output, "Flooding")
	assert.Contains(t, output, "Acknowledged")
	assert.Contains(t, output, "2026-03-01 12:01:00 UTC")
}

func TestFormatRecordList_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatRecordList(&buf, nil)

	assert.Equal(t, "No alerts found.\n", buf.String())
}

func TestFormatRecord_Acknowledged(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ackAt := now.Add(5 * time.Minute)

	var buf bytes.Buffer
	formatRecord(&buf, &models.AlertRecord{
		ID:             "id-1",
		Category:       models.CategoryMotorAccident,
		Status:         models.AlertStatusAcknowledged,
		SubmittedAt:    now,
		AcknowledgedAt: &ackAt,
	})

	assert.Contains(t, buf.String(), "Acknowledged:")
	assert.Contains(t, buf.String(), "2026-03-01 12:05:00 UTC")
}

func TestFormatCategories(t *testing.T) {
	var buf bytes.Buffer
	formatCategories(&buf, []string{"Fire Outbreak", "Flooding"})

	assert.Equal(t, " 1. Fire Outbreak\n 2. Flooding\n", buf.String())
}

func TestDescribeFailure(t *testing.T) {
	assert.Equal(t, "server unreachable", describeFailure(&client.SubmissionError{Transient: true, Err: errors.New("refused")}))
	assert.Equal(t, "server responded with status 503", describeFailure(&client.SubmissionError{Transient: true, StatusCode: 503}))
	assert.Equal(t, "request failed", describeFailure(errors.New("other")))
}
