package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/code-payments/code-nft-staking/pkg/retry/backoff"
)

// Strategy is a function that determines whether or not an action should be
// retried. Strategies are allowed to delay or cause other side effects.
type Strategy func(ctx context.Context, attempts uint, err error) bool

// Limit returns a strategy that limits the total number of attempts.
// maxAttempts should be >= 1, since the action is evaluated first.
func Limit(maxAttempts uint) Strategy {
	return func(_ context.Context, attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors returns a strategy that specifies which errors can be retried.
func RetriableErrors(retriableErrors ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, e := range retriableErrors {
			if errors.Is(err, e) {
				return true
			}
		}

		return false
	}
}

// NonRetriableErrors returns a strategy that specifies which errors should not be retried.
func NonRetriableErrors(nonRetriableErrors ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, e := range nonRetriableErrors {
			if errors.Is(err, e) {
				return false
			}
		}

		return true
	}
}

// Backoff returns a strategy that delays the next attempt. The delay is cut
// short, and the retry abandoned, when the context is done.
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return func(ctx context.Context, attempts uint, _ error) bool {
		delay := strategy(attempts)
		cappedDelay := time.Duration(math.Min(float64(maxBackoff), float64(delay)))
		return sleeperImpl.Sleep(ctx, cappedDelay)
	}
}

// BackoffWithJitter is Backoff with a jitter applied after capping. The jitter
// is a fraction of the capped delay: a capped delay of 100ms with a jitter of
// 0.1 sleeps for 100ms +/- 10ms.
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(ctx context.Context, attempts uint, _ error) bool {
		delay := strategy(attempts)
		cappedDelay := time.Duration(math.Min(float64(maxBackoff), float64(delay)))
		cappedDelayWithJitter := time.Duration(float64(cappedDelay) * (1 + (rand.Float64()*jitter*2 - jitter)))
		return sleeperImpl.Sleep(ctx, cappedDelayWithJitter)
	}
}

type sleeper interface {
	// Sleep returns false if the context finished before the delay elapsed.
	Sleep(ctx context.Context, d time.Duration) bool
}

type realSleeper struct{}

func (r *realSleeper) Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

var sleeperImpl sleeper = &realSleeper{}
