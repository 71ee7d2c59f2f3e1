package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// errEmptyResponse is recorded when a call returns neither data nor error.
var errEmptyResponse = errors.New("empty response")

// tracker holds the state record of one kind of call.
// Only one call may be in flight at a time.
type tracker[T any] struct {
	mu    sync.Mutex
	state domain.Operation[T]
}

func (t *tracker[T]) snapshot() domain.Operation[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *tracker[T]) update(fn func(domain.Operation[T]) domain.Operation[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = fn(t.state)
}

// begin moves to pending unless a call is already in flight.
func (t *tracker[T]) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.InFlight() {
		return false
	}
	t.state = t.state.Pending()
	return true
}

// run executes call under the tracker. Failures are normalised with fallback,
// stored, and returned as a *domain.OperationError.
func (t *tracker[T]) run(
	ctx context.Context, op, fallback string, call func(context.Context) (*T, error),
) (*T, error) {
	if !t.begin() {
		return nil, domain.ErrOperationInProgress
	}

	settled := false
	defer func() {
		if !settled {
			t.update(func(s domain.Operation[T]) domain.Operation[T] { return s.Failed(fallback) })
		}
	}()

	out, err := call(ctx)
	if err == nil && out == nil {
		err = errEmptyResponse
	}
	if err != nil {
		msg := domain.ErrorMessage(err, fallback)
		logger.Debug("%s failed: %v", op, err)
		t.update(func(s domain.Operation[T]) domain.Operation[T] { return s.Failed(msg) })
		settled = true
		return nil, &domain.OperationError{Op: op, Message: msg, Err: err}
	}

	t.update(func(s domain.Operation[T]) domain.Operation[T] { return s.Succeeded(*out) })
	settled = true
	return out, nil
}

// failure wraps err for a stateless call.
func failure(op, fallback string, err error) error {
	msg := domain.ErrorMessage(err, fallback)
	logger.Debug("%s failed: %v", op, err)
	return &domain.OperationError{Op: op, Message: msg, Err: err}
}
