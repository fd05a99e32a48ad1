package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(contact string) *models.AlertRecord {
	return &models.AlertRecord{
		Category:        models.CategoryFireOutbreak,
		ReporterContact: contact,
		Position:        &models.PositionReading{Latitude: 6.2, Longitude: 5.3, Accuracy: 10},
	}
}

func TestCreate_AssignsIDAndStatus(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	record := newRecord("08012345678")

	require.NoError(t, repo.Create(ctx, record))

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, models.AlertStatusReported, record.Status)
	assert.False(t, record.SubmittedAt.IsZero())

	stored, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, stored)
}

func TestCreate_ConcurrentInsertsGetDistinctIDs(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, newRecord(fmt.Sprintf("contact-%d", i))))
		}(i)
	}
	wg.Wait()

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, n)

	seen := make(map[string]bool, n)
	for i, record := range records {
		assert.False(t, seen[record.ID], "duplicate id %s", record.ID)
		seen[record.ID] = true
		if i > 0 {
			assert.False(t, record.SubmittedAt.Before(records[i-1].SubmittedAt), "submittedAt decreased at %d", i)
		}
	}
}

func TestCreate_ClampsSubmittedAtWhenClockGoesBack(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(-time.Minute)}
	ids := []string{"a", "b"}
	call := 0
	repo := newAlertRepository(
		func() (string, error) { return ids[call], nil },
		func() time.Time { t := times[call]; call++; return t },
	)
	ctx := context.Background()

	first, second := newRecord("x"), newRecord("y")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, base, first.SubmittedAt)
	assert.Equal(t, base, second.SubmittedAt)
}

func TestCreate_RegeneratesCollidingID(t *testing.T) {
	ids := []string{"same", "same", "other"}
	next := 0
	repo := newAlertRepository(
		func() (string, error) { id := ids[next]; next++; return id, nil },
		time.Now,
	)
	ctx := context.Background()

	first, second := newRecord("x"), newRecord("y")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "same", first.ID)
	assert.Equal(t, "other", second.ID)
}

func TestCreate_IDGeneratorFailureLeavesStoreUnchanged(t *testing.T) {
	repo := newAlertRepository(
		func() (string, error) { return "", errors.New("entropy exhausted") },
		time.Now,
	)
	ctx := context.Background()

	err := repo.Create(ctx, newRecord("x"))

	require.Error(t, err)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewAlertRepository()

	record, err := repo.GetByID(context.Background(), "missing")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestList_ReturnsIsolatedCopies(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newRecord("x")))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	records[0].Status = models.AlertStatusAcknowledged
	records[0].Position.Latitude = 0

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusReported, again[0].Status)
	assert.Equal(t, 6.2, again[0].Position.Latitude)
}

func TestListByReporter_FiltersInOrder(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	contacts := []string{"a", "b", "a", "c", "a"}
	for _, c := range contacts {
		require.NoError(t, repo.Create(ctx, newRecord(c)))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	filtered, err := repo.ListByReporter(ctx, "a")
	require.NoError(t, err)

	var expected []*models.AlertRecord
	for _, record := range all {
		if record.ReporterContact == "a" {
			expected = append(expected, record)
		}
	}
	assert.Equal(t, expected, filtered)

	none, err := repo.ListByReporter(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestAcknowledge_Transitions(t *testing.T) {
	repo := NewAlertRepository()
	ctx := context.Background()
	record := newRecord("x")
	require.NoError(t, repo.Create(ctx, record))
	at := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)

	acked, err := repo.Acknowledge(ctx, record.ID, at)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedAt)
	assert.Equal(t, at, *acked.AcknowledgedAt)

	_, err = repo.Acknowledge(ctx, record.ID, at)
	assert.ErrorIs(t, err, service.ErrAlreadyAcknowledged)

	_, err = repo.Acknowledge(ctx, "missing", at)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCancelledContext(t *testing.T) {
	repo := NewAlertRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Create(ctx, newRecord("x"))
	assert.ErrorIs(t, err, context.Canceled)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
