package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/client"
	"github.com/shenikar/emergency_alert_system/internal/composer"
	"github.com/shenikar/emergency_alert_system/internal/location"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/reporter"
	"github.com/shenikar/emergency_alert_system/internal/reporter/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	locator   *mocks.MockLocator
	confirmer *mocks.MockConfirmer
	submitter *mocks.MockSubmitter
	reporter  *reporter.Reporter
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	f := &fixture{
		locator:   mocks.NewMockLocator(ctrl),
		confirmer: mocks.NewMockConfirmer(ctrl),
		submitter: mocks.NewMockSubmitter(ctrl),
	}
	clock := func() time.Time { return time.Date(2026, 3, 1, 11, 59, 58, 0, time.UTC) }
	f.reporter = reporter.New(f.locator, composer.NewWithClock(clock), f.confirmer, f.submitter, logger)
	return f
}

func TestReport_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contact := "08012345678"
	reading := models.PositionReading{Latitude: 6.2, Longitude: 5.3, Accuracy: 10}

	gomock.InOrder(
		f.locator.EXPECT().Acquire(ctx).Return(reading, nil),
		f.confirmer.EXPECT().Confirm(ctx, gomock.Any()).Return(true, nil),
		f.submitter.EXPECT().Submit(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, payload models.AlertPayload) (*client.SubmissionAck, error) {
				assert.Equal(t, models.CategoryFireOutbreak, payload.Category)
				require.NotNil(t, payload.Position)
				assert.Equal(t, reading, *payload.Position)
				assert.Equal(t, contact, payload.ReporterContact)
				return &client.SubmissionAck{ID: "id-1", Status: "Reported"}, nil
			}),
	)

	outcome, err := f.reporter.Report(ctx, models.CategoryFireOutbreak, &contact, "")

	require.NoError(t, err)
	assert.True(t, outcome.Sent())
	assert.Equal(t, "id-1", outcome.Ack.ID)
	assert.Contains(t, outcome.Message, "id-1")
	assert.Contains(t, outcome.Message, "location has been shared")
}

func TestReport_DeclinedConfirmationSendsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.locator.EXPECT().Acquire(ctx).Return(models.PositionReading{Latitude: 1, Longitude: 1}, nil)
	f.confirmer.EXPECT().Confirm(ctx, gomock.Any()).Return(false, nil)
	f.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := f.reporter.Report(ctx, models.CategoryRiots, nil, "")

	require.NoError(t, err)
	assert.True(t, outcome.Cancelled)
	assert.False(t, outcome.Sent())
}

func TestReport_LocationFailureStillSubmits(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "permission denied", err: location.ErrPermissionDenied},
		{name: "unavailable", err: &location.UnavailableError{Reason: "no fix"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			f.locator.EXPECT().Acquire(ctx).Return(models.PositionReading{}, tt.err)
			f.confirmer.EXPECT().Confirm(ctx, gomock.Any()).Return(true, nil)
			f.submitter.EXPECT().Submit(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, payload models.AlertPayload) (*client.SubmissionAck, error) {
					assert.Nil(t, payload.Position)
					assert.Equal(t, models.UnknownReporter, payload.ReporterContact)
					return &client.SubmissionAck{ID: "id-2", Status: "Reported"}, nil
				})

			outcome, err := f.reporter.Report(ctx, models.CategoryKidnapping, nil, "")

			require.NoError(t, err)
			assert.True(t, outcome.Sent())
			assert.ErrorIs(t, outcome.LocationErr, tt.err)
			assert.Contains(t, outcome.Message, "not shared")
		})
	}
}

func TestReport_SubmissionFailureGivesFallback(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "unreachable",
			err:      &client.SubmissionError{Transient: true, Err: errors.New("connection refused")},
			expected: "could not reach server",
		},
		{
			name:     "rejected",
			err:      &client.SubmissionError{StatusCode: 400, Detail: "invalid field 'category'"},
			expected: "rejected by the server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			f.locator.EXPECT().Acquire(ctx).Return(models.PositionReading{}, location.ErrPermissionDenied)
			f.confirmer.EXPECT().Confirm(ctx, gomock.Any()).Return(true, nil)
			f.submitter.EXPECT().Submit(ctx, gomock.Any()).Return(nil, tt.err)

			outcome, err := f.reporter.Report(ctx, models.CategoryMedicalEmergency, nil, "")

			require.NoError(t, err)
			assert.False(t, outcome.Sent())
			assert.Equal(t, tt.err, outcome.SubmitErr)
			assert.Contains(t, outcome.Message, tt.expected)
			assert.Contains(t, outcome.Message, "Please also call emergency services directly.")
		})
	}
}

func TestReport_ConfirmationError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.locator.EXPECT().Acquire(ctx).Return(models.PositionReading{}, nil)
	f.confirmer.EXPECT().Confirm(ctx, gomock.Any()).Return(false, context.Canceled)

	outcome, err := f.reporter.Report(ctx, models.CategoryProtest, nil, "")

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_WithoutLocator(t *testing.T) {
	ctrl := gomock.NewController(t)
	confirmer := mocks.NewMockConfirmer(ctrl)
	submitter := mocks.NewMockSubmitter(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	r := reporter.New(nil, composer.New(), confirmer, submitter, logger)

	confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
	submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&client.SubmissionAck{ID: "x", Status: "Reported"}, nil)

	outcome, err := r.Report(context.Background(), models.CategoryOthers, nil, "")

	require.NoError(t, err)
	assert.True(t, outcome.Sent())
	assert.Nil(t, outcome.LocationErr)
}
