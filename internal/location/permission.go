package location

import (
	"context"
	"sync"

	"github.com/shenikar/emergency_alert_system/internal/models"
	"golang.org/x/sync/singleflight"
)

// Prompter спрашивает у пользователя разрешение на доступ к местоположению
type Prompter interface {
	AskLocationPermission(ctx context.Context) (bool, error)
}

// PermissionGate спрашивает разрешение один раз и запоминает ответ.
// Одновременные первые вызовы ждут один общий запрос.
type PermissionGate struct {
	provider Provider
	prompter Prompter
	group    singleflight.Group

	mu      sync.Mutex
	decided bool
	granted bool
}

func NewPermissionGate(provider Provider, prompter Prompter) *PermissionGate {
	return &PermissionGate{
		provider: provider,
		prompter: prompter,
	}
}

func (g *PermissionGate) Acquire(ctx context.Context) (models.PositionReading, error) {
	granted, err := g.permission(ctx)
	if err != nil {
		return models.PositionReading{}, err
	}
	if !granted {
		return models.PositionReading{}, ErrPermissionDenied
	}
	return g.provider.Acquire(ctx)
}

func (g *PermissionGate) cached() (granted, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.granted, g.decided
}

// permission ждет общий запрос, но каждый вызывающий выходит по своему ctx.
// Сам запрос не отменяется, если отменил только один из ожидающих.
func (g *PermissionGate) permission(ctx context.Context) (bool, error) {
	if granted, ok := g.cached(); ok {
		return granted, nil
	}

	promptCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan("permission", func() (any, error) {
		if granted, ok := g.cached(); ok {
			return granted, nil
		}
		// мьютекс не держим, пока пользователь отвечает
		granted, err := g.prompter.AskLocationPermission(promptCtx)
		if err != nil {
			return false, err
		}
		g.mu.Lock()
		g.decided, g.granted = true, granted
		g.mu.Unlock()
		return granted, nil
	})

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	}
}
