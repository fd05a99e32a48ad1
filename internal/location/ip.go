package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Определение по IP дает точность уровня города
const ipAccuracyMeters = 5000

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPProvider определяет приблизительное местоположение по внешнему IP адресу
type IPProvider struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time
}

func NewIPProvider(url string, timeout time.Duration, logger *logrus.Logger) *IPProvider {
	return &IPProvider{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

func (p *IPProvider) Acquire(ctx context.Context) (models.PositionReading, error) {
	log := p.logger.WithFields(logrus.Fields{
		"provider": "ip",
		"url":      p.url,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return models.PositionReading{}, &UnavailableError{Reason: "invalid geolocation url", Err: err}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Geolocation lookup failed")
		return models.PositionReading{}, &UnavailableError{Reason: "geolocation lookup failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status_code", resp.StatusCode).Warn("Geolocation service returned non-OK status")
		return models.PositionReading{}, &UnavailableError{Reason: fmt.Sprintf("geolocation service returned status %d", resp.StatusCode)}
	}

	var body ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.PositionReading{}, &UnavailableError{Reason: "malformed geolocation response", Err: err}
	}
	if body.Status != "success" {
		log.WithField("message", body.Message).Warn("Geolocation lookup was not successful")
		return models.PositionReading{}, &UnavailableError{Reason: "geolocation lookup unsuccessful: " + body.Message}
	}
	if err := checkCoordinates(body.Lat, body.Lon, ipAccuracyMeters); err != nil {
		return models.PositionReading{}, err
	}

	log.Debug("Position acquired from IP lookup")
	return models.PositionReading{
		Latitude:   body.Lat,
		Longitude:  body.Lon,
		Accuracy:   ipAccuracyMeters,
		CapturedAt: p.now().UTC(),
	}, nil
}
