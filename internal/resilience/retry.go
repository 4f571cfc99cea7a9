// Package resilience wraps remote calls with retry, backoff, timeout,
// debouncing and a short-TTL result cache.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/track"
	"go.uber.org/zap"
)

type Policy struct {
	Attempts   int
	Base       time.Duration
	Multiplier int
	Timeout    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Base: time.Second, Multiplier: 2, Timeout: 8 * time.Second}
}

// BootstrapPolicy carries the longer timeout for cold-start paths, where
// the first call pays for connection setup.
func BootstrapPolicy() Policy {
	p := DefaultPolicy()
	p.Timeout = 15 * time.Second
	return p
}

type Runner struct {
	policy  Policy
	log     *zap.SugaredLogger
	tracker track.Tracker

	// timer is swapped out in tests so backoff doesn't wall-clock. Nil
	// means the library's default timer.
	timer backoff.Timer
}

func NewRunner(policy Policy, log *zap.SugaredLogger, tracker track.Tracker) *Runner {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if policy.Multiplier < 2 {
		policy.Multiplier = 2
	}
	return &Runner{policy: policy, log: log, tracker: tracker}
}

// Do runs fn under the runner's timeout, retrying transient failures with
// exponential backoff. Auth, permission, not-found and validation-shaped
// errors fail on the first attempt. When retries are exhausted the last
// error is reported to the tracker with the operation tag and attempt
// count, then returned. A caller cancellation is not reported: there is
// nothing upstream to capture.
func (r *Runner) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := 0

	operation := func() error {
		attempts++
		attemptCtx := ctx
		if r.policy.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, r.policy.Timeout)
			defer cancel()
		}

		err := fn(attemptCtx)
		if err != nil && !apperrors.Retriable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.policy.Base
	exp.Multiplier = float64(r.policy.Multiplier)
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0

	var b backoff.BackOff = backoff.WithMaxRetries(exp, uint64(r.policy.Attempts-1))
	b = backoff.WithContext(b, ctx)

	notify := func(err error, delay time.Duration) {
		r.log.Debugw("retrying operation", "op", op, "attempt", attempts, "error", err)
	}

	err := backoff.RetryNotifyWithTimer(operation, b, notify, r.timer)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	if !apperrors.Retriable(err) {
		return err
	}

	r.tracker.CaptureError(err, map[string]any{
		"op":       op,
		"attempts": attempts,
	})
	return err
}
