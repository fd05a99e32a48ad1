package location

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestStaticProvider(t *testing.T) {
	tests := []struct {
		name      string
		lat, lng  float64
		accuracy  float64
		wantError bool
	}{
		{name: "valid", lat: 6.2, lng: 5.3, accuracy: 10},
		{name: "boundaries", lat: -90, lng: 180, accuracy: 0},
		{name: "latitude out of range", lat: 91, lng: 0, wantError: true},
		{name: "longitude out of range", lat: 0, lng: -181, wantError: true},
		{name: "negative accuracy", lat: 0, lng: 0, accuracy: -1, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStaticProvider(tt.lat, tt.lng, tt.accuracy)
			reading, err := p.Acquire(context.Background())
			if tt.wantError {
				var unavailable *UnavailableError
				assert.ErrorAs(t, err, &unavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, reading.Latitude)
			assert.Equal(t, tt.lng, reading.Longitude)
			assert.False(t, reading.CapturedAt.IsZero())
		})
	}
}

func TestIPProvider_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":6.33,"lon":5.62}`))
	}))
	defer server.Close()

	p := NewIPProvider(server.URL, time.Second, quietLogger())
	reading, err := p.Acquire(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 6.33, reading.Latitude)
	assert.Equal(t, 5.62, reading.Longitude)
	assert.Equal(t, float64(ipAccuracyMeters), reading.Accuracy)
}

func TestIPProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "lookup failed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			p := NewIPProvider(server.URL, 50*time.Millisecond, quietLogger())
			_, err := p.Acquire(context.Background())

			var unavailable *UnavailableError
			assert.ErrorAs(t, err, &unavailable)
		})
	}
}

type countingPrompter struct {
	calls   atomic.Int32
	answer  bool
	err     error
	release chan struct{}
}

func (p *countingPrompter) AskLocationPermission(ctx context.Context) (bool, error) {
	p.calls.Add(1)
	if p.release != nil {
		<-p.release
	}
	return p.answer, p.err
}

func TestPermissionGate_AsksOnce(t *testing.T) {
	prompter := &countingPrompter{answer: true}
	gate := NewPermissionGate(NewStaticProvider(6.2, 5.3, 10), prompter)

	for i := 0; i < 3; i++ {
		reading, err := gate.Acquire(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 6.2, reading.Latitude)
	}

	assert.Equal(t, int32(1), prompter.calls.Load())
}

func TestPermissionGate_DenialIsCached(t *testing.T) {
	prompter := &countingPrompter{answer: false}
	gate := NewPermissionGate(NewStaticProvider(6.2, 5.3, 10), prompter)

	_, err := gate.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = gate.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.Equal(t, int32(1), prompter.calls.Load())
}

func TestPermissionGate_ConcurrentCallersShareOnePrompt(t *testing.T) {
	prompter := &countingPrompter{answer: true, release: make(chan struct{})}
	gate := NewPermissionGate(NewStaticProvider(6.2, 5.3, 10), prompter)

	const n = 10
	var wg sync.WaitGroup
	results := make([]models.PositionReading, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = gate.Acquire(context.Background())
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(prompter.release)
	wg.Wait()

	assert.Equal(t, int32(1), prompter.calls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 5.3, results[i].Longitude)
	}
}

func TestPermissionGate_PromptErrorNotCached(t *testing.T) {
	prompter := &countingPrompter{err: errors.New("prompt closed")}
	gate := NewPermissionGate(NewStaticProvider(6.2, 5.3, 10), prompter)

	_, err := gate.Acquire(context.Background())
	require.Error(t, err)

	prompter.err = nil
	prompter.answer = true
	_, err = gate.Acquire(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), prompter.calls.Load())
}

func TestPermissionGate_CancelledCallerDoesNotFailOthers(t *testing.T) {
	prompter := &countingPrompter{answer: true, release: make(chan struct{})}
	gate := NewPermissionGate(NewStaticProvider(6.2, 5.3, 10), prompter)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := gate.Acquire(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return prompter.calls.Load() == 1 }, time.Second, time.Millisecond)

	secondResult := make(chan error, 1)
	go func() {
		_, err := gate.Acquire(context.Background())
		secondResult <- err
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(prompter.release)
	assert.NoError(t, <-secondResult)
	assert.Equal(t, int32(1), prompter.calls.Load())

	// ответ сохранен и для отменившего вызова
	_, err := gate.Acquire(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(1), prompter.calls.Load())
}
