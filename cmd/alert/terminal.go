package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shenikar/emergency_alert_system/internal/models"
)

// terminal задает вопросы пользователю в консоли. Пустой ответ или конец ввода - отказ.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) AskLocationPermission(ctx context.Context) (bool, error) {
	return t.ask(ctx, "Share your current location with emergency responders?")
}

func (t *terminal) Confirm(ctx context.Context, payload models.AlertPayload) (bool, error) {
	formatPayload(t.out, payload)
	return t.ask(ctx, "Send this emergency alert?")
}

func (t *terminal) ask(ctx context.Context, question string) (bool, error) {
	_, _ = fmt.Fprintf(t.out, "%s [y/N]: ", question)

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := t.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(t.out)
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// autoConfirm используется с --yes
type autoConfirm struct{}

func (autoConfirm) Confirm(context.Context, models.AlertPayload) (bool, error) {
	return true, nil
}
