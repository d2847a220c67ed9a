package generate

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lunarlabs/redpocket/internal/game"
)

// DefaultTimeout bounds how long a round start or evaluation waits on the
// primary content source before degrading.
const DefaultTimeout = 20 * time.Second

// Source is a combined question and chat generator.
type Source interface {
	game.QuestionGenerator
	game.ChatGenerator
}

// Fallback wraps a primary content source with an offline backup. A primary
// call that errors or exceeds the timeout degrades to the backup, so the
// game core always receives content. The clock is injectable for tests.
type Fallback struct {
	primary Source
	backup  *Static
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewFallback combines a primary source with a static backup.
func NewFallback(primary Source, backup *Static, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *Fallback {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fallback{
		primary: primary,
		backup:  backup,
		timeout: timeout,
		clock:   clock,
		logger:  logger.WithPrefix("generate"),
	}
}

// GenerateQuestion asks the primary source, degrading to the static bank on
// error or timeout.
func (f *Fallback) GenerateQuestion(ctx context.Context, region string) (string, error) {
	text, err := f.call(ctx, func(ctx context.Context) (string, error) {
		return f.primary.GenerateQuestion(ctx, region)
	})
	if err != nil {
		f.logger.Warn("primary question source unavailable, serving from bank", "region", region, "error", err)
		return f.backup.GenerateQuestion(ctx, region)
	}
	return text, nil
}

// GenerateChat asks the primary source, degrading to canned lines on error
// or timeout.
func (f *Fallback) GenerateChat(ctx context.Context, situation string) (string, error) {
	text, err := f.call(ctx, func(ctx context.Context) (string, error) {
		return f.primary.GenerateChat(ctx, situation)
	})
	if err != nil {
		f.logger.Warn("primary chat source unavailable, serving canned lines", "error", err)
		return f.backup.GenerateChat(ctx, situation)
	}
	return text, nil
}

type result struct {
	text string
	err  error
}

// call runs fn with a clock-driven deadline. The late result of a timed-out
// call is dropped via the buffered channel rather than leaking a goroutine.
func (f *Fallback) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		text, err := fn(ctx)
		done <- result{text: text, err: err}
	}()

	timedOut := make(chan struct{})
	timer := f.clock.AfterFunc(f.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	select {
	case r := <-done:
		return r.text, r.err
	case <-timedOut:
		return "", context.DeadlineExceeded
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

var (
	_ game.QuestionGenerator = (*Fallback)(nil)
	_ game.ChatGenerator     = (*Fallback)(nil)
)
