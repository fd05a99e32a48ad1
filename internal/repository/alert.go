package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/service"
)

const maxIDAttempts = 5

// AlertRepository хранит записи о тревогах в памяти процесса.
// Все изменения проходят через один мьютекс, чтение отдает копии.
type AlertRepository struct {
	mu      sync.RWMutex
	records []*models.AlertRecord
	index   map[string]int
	newID   func() (string, error)
	now     func() time.Time
}

func NewAlertRepository() service.AlertRepository {
	return newAlertRepository(newUUIDv7, time.Now)
}

func newAlertRepository(newID func() (string, error), now func() time.Time) *AlertRepository {
	return &AlertRepository{
		records: make([]*models.AlertRecord, 0),
		index:   make(map[string]int),
		newID:   newID,
		now:     now,
	}
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Create присваивает записи ID и время приема и добавляет ее в конец хранилища
func (r *AlertRepository) Create(ctx context.Context, record *models.AlertRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.uniqueID()
	if err != nil {
		return err
	}

	submittedAt := r.now().UTC()
	// время приема не убывает в порядке вставки, даже если часы перевели назад
	if n := len(r.records); n > 0 && submittedAt.Before(r.records[n-1].SubmittedAt) {
		submittedAt = r.records[n-1].SubmittedAt
	}

	record.ID = id
	record.SubmittedAt = submittedAt
	if record.Status == "" {
		record.Status = models.AlertStatusReported
	}

	r.index[id] = len(r.records)
	r.records = append(r.records, record.Clone())
	return nil
}

// uniqueID вызывается под r.mu
func (r *AlertRepository) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := r.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate alert id: %w", err)
		}
		if _, exists := r.index[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique alert id after %d attempts", maxIDAttempts)
}

// GetByID возвращает копию записи по ID
func (r *AlertRepository) GetByID(ctx context.Context, id string) (*models.AlertRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
	}
	return r.records[pos].Clone(), nil
}

// List возвращает снимок всех записей в порядке вставки
func (r *AlertRepository) List(ctx context.Context) ([]*models.AlertRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.AlertRecord, len(r.records))
	for i, record := range r.records {
		out[i] = record.Clone()
	}
	return out, nil
}

// ListByReporter возвращает записи с точным совпадением контакта, порядок сохраняется
func (r *AlertRepository) ListByReporter(ctx context.Context, contact string) ([]*models.AlertRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.AlertRecord, 0)
	for _, record := range r.records {
		if record.ReporterContact == contact {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

// Acknowledge атомарно переводит запись в статус Acknowledged
func (r *AlertRepository) Acknowledge(ctx context.Context, id string, at time.Time) (*models.AlertRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
	}

	record := r.records[pos]
	if record.Status == models.AlertStatusAcknowledged {
		return nil, fmt.Errorf("alert with id %s: %w", id, service.ErrAlreadyAcknowledged)
	}

	// запись заменяется целиком, ранее выданные копии не меняются
	updated := record.Clone()
	updated.Status = models.AlertStatusAcknowledged
	updated.AcknowledgedAt = &at
	r.records[pos] = updated
	return updated.Clone(), nil
}

// Count возвращает количество сохраненных записей
func (r *AlertRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}
