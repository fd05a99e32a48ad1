package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт хранилища записей о тревогах.
// Create присваивает ID и время приема атомарно относительно других вставок.
type AlertRepository interface {
	Create(ctx context.Context, record *models.AlertRecord) error
	GetByID(ctx context.Context, id string) (*models.AlertRecord, error)
	List(ctx context.Context) ([]*models.AlertRecord, error)
	ListByReporter(ctx context.Context, contact string) ([]*models.AlertRecord, error)
	Acknowledge(ctx context.Context, id string, at time.Time) (*models.AlertRecord, error)
	Count(ctx context.Context) (int, error)
}

// AlertService определяет контракт бизнес-логики приема тревог
type AlertService interface {
	Submit(ctx context.Context, payload *models.AlertPayload) (*models.AlertRecord, error)
	List(ctx context.Context) ([]*models.AlertRecord, error)
	ListByReporter(ctx context.Context, contact string) ([]*models.AlertRecord, error)
	Get(ctx context.Context, id string) (*models.AlertRecord, error)
	Acknowledge(ctx context.Context, id string) (*models.AlertRecord, error)
	Health(ctx context.Context) (*HealthStatus, error)
	Categories() []models.AlertCategory
}

// HealthStatus - ответ проверки работоспособности
type HealthStatus struct {
	Status      string    `json:"status"`
	RecordCount int       `json:"recordCount"`
	Timestamp   time.Time `json:"timestamp"`
}

type alertService struct {
	repo      AlertRepository
	logger    *logrus.Logger
	publisher webhook.Publisher
	validate  *validator.Validate
	now       func() time.Time
}

func NewAlertService(repo AlertRepository, logger *logrus.Logger, publisher webhook.Publisher) AlertService {
	return &alertService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
		validate:  newPayloadValidator(),
		now:       time.Now,
	}
}

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("alert_category", func(fl validator.FieldLevel) bool {
		return models.AlertCategory(fl.Field().String()).Valid()
	})
	return v
}

// Submit проверяет тревогу, сохраняет ее со статусом Reported и публикует событие
func (s *alertService) Submit(ctx context.Context, payload *models.AlertPayload) (*models.AlertRecord, error) {
	if payload == nil {
		return nil, &ValidationError{Field: "payload", Reason: "is required"}
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Submit",
		"category": payload.Category,
	})

	if err := s.validate.Struct(payload); err != nil {
		verr := newValidationError(err)
		log.WithError(verr).Warn("Rejected invalid alert payload")
		return nil, verr
	}

	record := &models.AlertRecord{
		Category:        payload.Category,
		ReporterContact: strings.TrimSpace(payload.ReporterContact),
		Description:     strings.TrimSpace(payload.Description),
		Status:          models.AlertStatusReported,
	}
	if record.ReporterContact == "" {
		record.ReporterContact = models.UnknownReporter
	}
	if payload.Position != nil {
		position := *payload.Position
		record.Position = &position
	}
	if !payload.SubmittedAt.IsZero() {
		reportedAt := payload.SubmittedAt.UTC()
		record.ReportedAt = &reportedAt
	}

	if err := s.repo.Create(ctx, record); err != nil {
		log.WithError(err).Error("Failed to store alert in repository")
		return nil, fmt.Errorf("service: could not store alert: %w", err)
	}

	log.WithFields(logrus.Fields{
		"alert_id":     record.ID,
		"has_position": record.Position != nil,
	}).Info("Alert reported")

	s.publish(ctx, log, webhook.EventAlertReported, record)
	return record, nil
}

// List возвращает все записи в порядке поступления
func (s *alertService) List(ctx context.Context) ([]*models.AlertRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "List",
	})

	records, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}

	log.WithField("count", len(records)).Debug("Alerts listed")
	return records, nil
}

// ListByReporter возвращает записи заявителя с точным совпадением контакта
func (s *alertService) ListByReporter(ctx context.Context, contact string) ([]*models.AlertRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "ListByReporter",
		"reporter": contact,
	})

	records, err := s.repo.ListByReporter(ctx, contact)
	if err != nil {
		log.WithError(err).Error("Failed to list reporter alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts for reporter: %w", err)
	}

	log.WithField("count", len(records)).Debug("Reporter alerts listed")
	return records, nil
}

// Get возвращает запись по ID
func (s *alertService) Get(ctx context.Context, id string) (*models.AlertRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Get",
		"alert_id": id,
	})

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug("Alert not found")
			return nil, err
		}
		log.WithError(err).Error("Failed to get alert from repository")
		return nil, fmt.Errorf("service: could not get alert: %w", err)
	}
	return record, nil
}

// Acknowledge переводит запись из Reported в Acknowledged
func (s *alertService) Acknowledge(ctx context.Context, id string) (*models.AlertRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Acknowledge",
		"alert_id": id,
	})

	record, err := s.repo.Acknowledge(ctx, id, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyAcknowledged) {
			log.WithError(err).Warn("Alert cannot be acknowledged")
			return nil, err
		}
		log.WithError(err).Error("Failed to acknowledge alert in repository")
		return nil, fmt.Errorf("service: could not acknowledge alert: %w", err)
	}

	log.Info("Alert acknowledged")
	s.publish(ctx, log, webhook.EventAlertAcknowledged, record)
	return record, nil
}

// Health сообщает, что процесс жив, и количество сохраненных записей
func (s *alertService) Health(ctx context.Context) (*HealthStatus, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not count alerts: %w", err)
	}
	return &HealthStatus{
		Status:      "OK",
		RecordCount: count,
		Timestamp:   s.now().UTC(),
	}, nil
}

func (s *alertService) Categories() []models.AlertCategory {
	return models.Categories()
}

// publish отправляет событие в очередь уведомлений. Ошибка публикации не отменяет прием тревоги.
func (s *alertService) publish(ctx context.Context, log *logrus.Entry, eventType string, record *models.AlertRecord) {
	if s.publisher == nil {
		return
	}
	event := webhook.Event{
		Type:      eventType,
		Alert:     record.Clone(),
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Error("Failed to publish alert event")
	}
}
