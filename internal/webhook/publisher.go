package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_alert_system/internal/models"
)

const (
	webhookQueueKey = "alert_webhook_events"

	EventAlertReported     = "alert.reported"
	EventAlertAcknowledged = "alert.acknowledged"

	// BRPOP ждет не дольше этого времени, чтобы воркер замечал отмену контекста
	popTimeout = time.Second
)

var (
	ErrQueueFull  = errors.New("webhook queue is full")
	ErrQueueEmpty = errors.New("webhook queue is empty")
)

// Event - структура для данных вебхука
type Event struct {
	Type      string              `json:"type"`
	Alert     *models.AlertRecord `json:"alert"`
	Timestamp time.Time           `json:"timestamp"`
}

// Publisher - интерфейс для публикации вебхуков
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Consumer - источник сериализованных событий для воркера.
// Pop возвращает ErrQueueEmpty, если за время ожидания событий не было.
type Consumer interface {
	Pop(ctx context.Context) (string, error)
}

// RedisQueue - очередь событий в списке Redis
type RedisQueue struct {
	redisClient *redis.Client
}

// NewRedisQueue создает новую очередь в Redis
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (q *RedisQueue) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH добавляет в левую часть списка, воркер забирает справа
	if err := q.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// Pop забирает самое старое событие из очереди Redis
func (q *RedisQueue) Pop(ctx context.Context) (string, error) {
	result, err := q.redisClient.BRPop(ctx, popTimeout, webhookQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrQueueEmpty
		}
		return "", fmt.Errorf("failed to pop webhook event from Redis: %w", err)
	}
	// result[0] - ключ, result[1] - значение
	return result[1], nil
}

// MemoryQueue - очередь событий в памяти процесса, используется без Redis
type MemoryQueue struct {
	events chan string
}

// NewMemoryQueue создает очередь с буфером на size событий
func NewMemoryQueue(size int) *MemoryQueue {
	if size < 1 {
		size = 1
	}
	return &MemoryQueue{
		events: make(chan string, size),
	}
}

// Publish не блокируется: при переполненном буфере событие отбрасывается
func (q *MemoryQueue) Publish(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	select {
	case q.events <- string(payload):
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Pop(ctx context.Context) (string, error) {
	timer := time.NewTimer(popTimeout)
	defer timer.Stop()

	select {
	case payload := <-q.events:
		return payload, nil
	case <-timer.C:
		return "", ErrQueueEmpty
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Len возвращает количество событий, ожидающих доставки
func (q *MemoryQueue) Len() int {
	return len(q.events)
}
