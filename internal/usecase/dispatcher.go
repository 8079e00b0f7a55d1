package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/email"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Outcome is the result of one send attempt.
type Outcome struct {
	MessageID string
	Err       error
	Took      time.Duration
}

func (o Outcome) Sent() bool {
	return o.Err == nil
}

// Dispatcher sends messages on a bounded goroutine pool. Each send gets its
// own timeout and one attempt.
type Dispatcher struct {
	notifier domain.Notifier
	pool     *ants.Pool
	timeout  time.Duration
}

func NewDispatcher(notifier domain.Notifier, pool *ants.Pool, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{notifier: notifier, pool: pool, timeout: timeout}
}

// NewDispatchPool builds the worker pool that bounds concurrent SMTP sessions.
func NewDispatchPool(size int, log *zap.Logger) (*ants.Pool, error) {
	pool, err := ants.NewPool(size,
		ants.WithLogger(antsLogger{log}),
		ants.WithPanicHandler(func(p interface{}) {
			log.Error("Panic recovered in dispatch pool", zap.Any("panic", p), zap.Stack("stack"))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch pool: %w", err)
	}
	return pool, nil
}

// Dispatch sends every message concurrently and waits for all of them.
// Outcomes are returned in input order. A failure, panic or timeout in one
// send never affects the others.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs ...email.Message) []Outcome {
	// Client disconnects must not abort an in-flight lead notification.
	ctx = context.WithoutCancel(ctx)

	outcomes := make([]Outcome, len(msgs))
	var wg sync.WaitGroup

	for i := range msgs {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcomes[i] = d.send(ctx, msgs[i])
		}
		if err := d.submit(task); err != nil {
			outcomes[i] = Outcome{Err: fmt.Errorf("dispatch rejected: %w", err)}
			wg.Done()
		}
	}

	wg.Wait()
	return outcomes
}

func (d *Dispatcher) submit(task func()) error {
	if d.pool == nil {
		go task()
		return nil
	}
	return d.pool.Submit(task)
}

func (d *Dispatcher) send(ctx context.Context, msg email.Message) Outcome {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("notifier panic: %v", r)}
			}
		}()
		id, err := d.notifier.Send(ctx, msg)
		done <- result{id: id, err: err}
	}()

	select {
	case r := <-done:
		return Outcome{MessageID: r.id, Err: r.err, Took: time.Since(start)}
	case <-ctx.Done():
		return Outcome{
			Err:  fmt.Errorf("send timed out after %s: %w", d.timeout, ctx.Err()),
			Took: time.Since(start),
		}
	}
}

type antsLogger struct {
	log *zap.Logger
}

func (a antsLogger) Printf(format string, args ...interface{}) {
	a.log.Info(fmt.Sprintf(format, args...))
}
