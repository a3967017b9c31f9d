// internal/probe/retrychecker.go
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/checkstatus/internal/domain"
)

// RetryChecker repeats retryable attempts of Inner with exponential backoff.
type RetryChecker struct {
	Inner  Getter
	Policy domain.RetryPolicy
	Sleep  SleepFunc
	Logger *zap.Logger
}

// Get returns the first 2xx response and the number of attempts made.
// Non-retryable failures stop immediately.
func (r *RetryChecker) Get(ctx context.Context, target string) (*http.Response, int, error) {
	attempts := r.Policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	mult := r.Policy.Multiplier
	if mult < 1 {
		mult = 1
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	delay := r.Policy.InitialDelay
	var last *CheckError
	for i := 1; i <= attempts; i++ {
		log.Info(fmt.Sprintf("Attempt %d/%d...", i, attempts))

		resp, err := r.Inner.Get(ctx, target)
		if err == nil {
			return resp, i, nil
		}
		ce := asCheckError(err)
		if !ce.Retryable {
			return nil, i, ce
		}
		last = ce
		if i == attempts {
			break
		}

		log.Warn(fmt.Sprintf("Transient error (%s), retrying in %s", ce.Msg, delay),
			zap.String("kind", string(ce.Kind)),
			zap.Int("attempt", i),
			zap.Duration("delay", delay),
		)
		if err := sleep(ctx, delay); err != nil {
			return nil, i, &CheckError{Kind: domain.KindFatalNetwork, Msg: "Non-retryable error: " + err.Error(), Err: err}
		}
		delay *= time.Duration(mult)
	}

	return nil, attempts, &CheckError{
		Kind:       last.Kind,
		Msg:        fmt.Sprintf("Failed to fetch %s after %d retries: %s", target, attempts, last.Msg),
		StatusCode: last.StatusCode,
		Err:        last,
	}
}
