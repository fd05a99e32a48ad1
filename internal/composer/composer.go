package composer

import (
	"strings"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/models"
)

// Composer собирает тревогу перед отправкой. Время берется из переданных часов.
type Composer struct {
	now func() time.Time
}

func New() *Composer {
	return &Composer{now: time.Now}
}

// NewWithClock нужен для детерминированных тестов
func NewWithClock(now func() time.Time) *Composer {
	return &Composer{now: now}
}

// Compose не проверяет категорию: ее разбирает models.ParseCategory до вызова.
func (c *Composer) Compose(category models.AlertCategory, position *models.PositionReading, reporterContact *string, description string) models.AlertPayload {
	payload := models.AlertPayload{
		Category:        category,
		ReporterContact: models.UnknownReporter,
		Description:     strings.TrimSpace(description),
		SubmittedAt:     c.now().UTC(),
	}
	if reporterContact != nil {
		if contact := strings.TrimSpace(*reporterContact); contact != "" {
			payload.ReporterContact = contact
		}
	}
	if position != nil {
		reading := *position
		payload.Position = &reading
	}
	return payload
}
