package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/emergency_alert_system/internal/client"
	"github.com/shenikar/emergency_alert_system/internal/composer"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Locator - источник координат заявителя
type Locator interface {
	Acquire(ctx context.Context) (models.PositionReading, error)
}

// Confirmer показывает тревогу пользователю и спрашивает подтверждение отправки
type Confirmer interface {
	Confirm(ctx context.Context, payload models.AlertPayload) (bool, error)
}

// Submitter отправляет тревогу сервису
type Submitter interface {
	Submit(ctx context.Context, payload models.AlertPayload) (*client.SubmissionAck, error)
}

// Outcome - результат одной попытки сообщить о тревоге
type Outcome struct {
	Payload     models.AlertPayload
	Ack         *client.SubmissionAck
	Cancelled   bool
	LocationErr error
	SubmitErr   error
	Message     string
}

// Sent сообщает, принял ли сервер тревогу
func (o *Outcome) Sent() bool {
	return o.Ack != nil
}

type Reporter struct {
	locator   Locator
	composer  *composer.Composer
	confirmer Confirmer
	submitter Submitter
	logger    *logrus.Logger
}

// New создает Reporter. locator может быть nil: тогда тревога уходит без координат.
func New(locator Locator, composer *composer.Composer, confirmer Confirmer, submitter Submitter, logger *logrus.Logger) *Reporter {
	return &Reporter{
		locator:   locator,
		composer:  composer,
		confirmer: confirmer,
		submitter: submitter,
		logger:    logger,
	}
}

// Report проходит путь: координаты, сборка, подтверждение, отправка.
// Ошибка возвращается только если не удалось получить подтверждение.
func (r *Reporter) Report(ctx context.Context, category models.AlertCategory, contact *string, description string) (*Outcome, error) {
	log := r.logger.WithFields(logrus.Fields{
		"component": "reporter",
		"category":  category,
	})
	outcome := &Outcome{}

	var position *models.PositionReading
	if r.locator != nil {
		reading, err := r.locator.Acquire(ctx)
		if err != nil {
			// без координат тревога все равно уходит
			log.WithError(err).Warn("Position unavailable, reporting without it")
			outcome.LocationErr = err
		} else {
			position = &reading
		}
	}

	outcome.Payload = r.composer.Compose(category, position, contact, description)

	confirmed, err := r.confirmer.Confirm(ctx, outcome.Payload)
	if err != nil {
		return nil, fmt.Errorf("reporter: confirmation failed: %w", err)
	}
	if !confirmed {
		log.Info("Alert cancelled by reporter")
		outcome.Cancelled = true
		outcome.Message = "Alert cancelled. Nothing was sent."
		return outcome, nil
	}

	ack, err := r.submitter.Submit(ctx, outcome.Payload)
	if err != nil {
		log.WithError(err).Error("Alert was not delivered")
		outcome.SubmitErr = err
		outcome.Message = failureMessage(category, err)
		return outcome, nil
	}

	outcome.Ack = ack
	outcome.Message = successMessage(category, ack, position != nil)
	return outcome, nil
}

func successMessage(category models.AlertCategory, ack *client.SubmissionAck, withPosition bool) string {
	msg := fmt.Sprintf("EMERGENCY ALERT SENT\nEmergency: %s\nAlert ID: %s\nStatus: %s", category, ack.ID, ack.Status)
	if withPosition {
		return msg + "\nYour location has been shared."
	}
	return msg + "\nYour location could not be determined and was not shared."
}

func failureMessage(category models.AlertCategory, err error) string {
	var serr *client.SubmissionError
	if errors.As(err, &serr) && !serr.Transient {
		return fmt.Sprintf("Alert was rejected by the server.\nEmergency: %s\nError: %v\nPlease also call emergency services directly.", category, err)
	}
	return fmt.Sprintf("Alert could not be delivered: could not reach server.\nEmergency: %s\nError: %v\nPlease also call emergency services directly.", category, err)
}
