package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/config"
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// keep-alive соединения http.Client закрываются асинхронно после остановки httptest сервера
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // отключаем вывод логов в тестах
	return logger
}

func newTestConfig(url string) *config.Config {
	return &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "test-secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
}

func testEvent() Event {
	return Event{
		Type: EventAlertReported,
		Alert: &models.AlertRecord{
			ID:              "alert-1",
			Category:        models.CategoryFireOutbreak,
			ReporterContact: "08012345678",
			Status:          models.AlertStatusReported,
		},
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestDeliver_SignsPayload(t *testing.T) {
	var gotBody, gotSignature, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSignature = r.Header.Get(signatureHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	worker := NewWorker(NewMemoryQueue(1), newTestLogger(), newTestConfig(srv.URL))
	event := testEvent()
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	err = worker.deliver(context.Background(), event, string(raw))

	require.NoError(t, err)
	assert.Equal(t, string(raw), gotBody)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, generateHMACSHA256(string(raw), "test-secret"), gotSignature)
}

func TestDeliver_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	worker := NewWorker(NewMemoryQueue(1), newTestLogger(), newTestConfig(srv.URL))

	err := worker.deliver(context.Background(), testEvent(), `{}`)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	worker := NewWorker(NewMemoryQueue(1), newTestLogger(), newTestConfig(srv.URL))

	err := worker.deliver(context.Background(), testEvent(), `{}`)

	require.Error(t, err)
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliver_NoURLSkips(t *testing.T) {
	worker := NewWorker(NewMemoryQueue(1), newTestLogger(), newTestConfig(""))

	err := worker.deliver(context.Background(), testEvent(), `{}`)

	assert.NoError(t, err)
}

func TestWorker_DeliversQueuedEvents(t *testing.T) {
	received := make(chan Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event Event
		if err := json.NewDecoder(r.Body).Decode(&event); err == nil {
			received <- event
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	queue := NewMemoryQueue(4)
	worker := NewWorker(queue, newTestLogger(), newTestConfig(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	require.NoError(t, queue.Publish(ctx, testEvent()))

	select {
	case event := <-received:
		assert.Equal(t, EventAlertReported, event.Type)
		require.NotNil(t, event.Alert)
		assert.Equal(t, "alert-1", event.Alert.ID)
	case <-time.After(3 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	cancel()
	worker.Stop()
}

func TestWorker_StopsOnCancel(t *testing.T) {
	worker := NewWorker(NewMemoryQueue(1), newTestLogger(), newTestConfig(""))

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
