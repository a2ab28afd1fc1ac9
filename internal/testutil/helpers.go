package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ErrSimulated — sentinel ошибка для проверки путей отказа в тестах.
var ErrSimulated = errors.New("simulated error for testing")

// ContextWithTimeout создаёт context с timeout, отменяется при завершении теста.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

// ContextWithCancel создаёт context с cancel, отменяется при завершении теста.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}
