package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/models"
)

// ErrPermissionDenied - пользователь отказал в доступе к местоположению
var ErrPermissionDenied = errors.New("location permission denied")

// UnavailableError - местоположение не удалось определить
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location unavailable: %s: %v", e.Reason, e.Err)
	}
	return "location unavailable: " + e.Reason
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Provider определяет контракт источника координат. Повторов внутри нет.
type Provider interface {
	Acquire(ctx context.Context) (models.PositionReading, error)
}

// StaticProvider возвращает заранее заданные координаты
type StaticProvider struct {
	latitude  float64
	longitude float64
	accuracy  float64
	now       func() time.Time
}

func NewStaticProvider(latitude, longitude, accuracy float64) *StaticProvider {
	return &StaticProvider{
		latitude:  latitude,
		longitude: longitude,
		accuracy:  accuracy,
		now:       time.Now,
	}
}

func (p *StaticProvider) Acquire(ctx context.Context) (models.PositionReading, error) {
	if err := ctx.Err(); err != nil {
		return models.PositionReading{}, &UnavailableError{Reason: "acquisition cancelled", Err: err}
	}
	if err := checkCoordinates(p.latitude, p.longitude, p.accuracy); err != nil {
		return models.PositionReading{}, err
	}
	return models.PositionReading{
		Latitude:   p.latitude,
		Longitude:  p.longitude,
		Accuracy:   p.accuracy,
		CapturedAt: p.now().UTC(),
	}, nil
}

func checkCoordinates(latitude, longitude, accuracy float64) error {
	switch {
	case latitude < -90 || latitude > 90:
		return &UnavailableError{Reason: fmt.Sprintf("latitude %v out of range", latitude)}
	case longitude < -180 || longitude > 180:
		return &UnavailableError{Reason: fmt.Sprintf("longitude %v out of range", longitude)}
	case accuracy < 0:
		return &UnavailableError{Reason: fmt.Sprintf("negative accuracy %v", accuracy)}
	}
	return nil
}
