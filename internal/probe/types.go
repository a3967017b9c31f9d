package probe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hamed0406/checkstatus/internal/domain"
)

// CheckError is a classified failure of one attempt or of a whole check.
type CheckError struct {
	Kind       domain.FailureKind
	Msg        string
	Retryable  bool
	StatusCode int // set for KindHTTPStatus
	Err        error
}

func (e *CheckError) Error() string { return e.Msg }
func (e *CheckError) Unwrap() error { return e.Err }

// Getter performs a single GET attempt. A nil error means a 2xx response
// whose body the caller must close; otherwise the error is a *CheckError.
type Getter interface {
	Get(ctx context.Context, target string) (*http.Response, error)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func asCheckError(err error) *CheckError {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce
	}
	return classifyTransportError(err)
}
