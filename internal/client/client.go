package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Ограничение на чтение тела ответа с ошибкой
const maxErrorBody = 4 << 10

// SubmissionAck - подтверждение приема тревоги сервером
type SubmissionAck struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Health - ответ сервиса на проверку работоспособности
type Health struct {
	Status      string    `json:"status"`
	RecordCount int       `json:"recordCount"`
	Timestamp   time.Time `json:"timestamp"`
}

// SubmissionClient отправляет тревоги сервису приема. Повторов не делает.
type SubmissionClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(baseURL string, timeout time.Duration, logger *logrus.Logger) *SubmissionClient {
	return &SubmissionClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Submit отправляет тревогу одним POST запросом
func (c *SubmissionClient) Submit(ctx context.Context, payload models.AlertPayload) (*SubmissionAck, error) {
	log := c.logger.WithFields(logrus.Fields{
		"client":   "submission",
		"method":   "Submit",
		"category": payload.Category,
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SubmissionError{Detail: "could not encode alert", Err: err}
	}

	var ack SubmissionAck
	if err := c.do(ctx, http.MethodPost, "/emergencies", body, &ack); err != nil {
		log.WithError(err).Warn("Alert submission failed")
		return nil, err
	}
	if ack.ID == "" {
		err := &SubmissionError{Detail: "malformed server response: missing alert id"}
		log.WithError(err).Warn("Alert submission failed")
		return nil, err
	}

	log.WithField("alert_id", ack.ID).Info("Alert submitted")
	return &ack, nil
}

// Get возвращает запись по ID. Отсутствующая запись - ErrNotFound.
func (c *SubmissionClient) Get(ctx context.Context, id string) (*models.AlertRecord, error) {
	var record models.AlertRecord
	err := c.do(ctx, http.MethodGet, "/emergencies/"+url.PathEscape(id), nil, &record)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("alert %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &record, nil
}

func (c *SubmissionClient) ListByReporter(ctx context.Context, contact string) ([]*models.AlertRecord, error) {
	var records []*models.AlertRecord
	if err := c.do(ctx, http.MethodGet, "/emergencies/user/"+url.PathEscape(contact), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *SubmissionClient) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *SubmissionClient) Categories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/emergencies/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// do выполняет запрос и декодирует JSON ответ в out. Все ошибки - *SubmissionError.
func (c *SubmissionClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &SubmissionError{Detail: "could not build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// сеть, таймаут или отмена контекста
		return &SubmissionError{Transient: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SubmissionError{
			Transient:  transientStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SubmissionError{Detail: "malformed server response", Err: err}
	}
	return nil
}

// errorDetail достает поле error из тела ответа, если оно есть
func errorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(bytes.TrimSpace(raw))
}

func isStatus(err error, code int) bool {
	var serr *SubmissionError
	return errors.As(err, &serr) && serr.StatusCode == code
}
