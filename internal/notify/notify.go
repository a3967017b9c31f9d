package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/checkstatus/internal/domain"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

type Multi []Notifier

// Send delivers to every notifier and returns all failures combined.
func (m Multi) Send(ctx context.Context, title, text string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, title, text))
	}
	return err
}

// FailureMessage renders the title and text sent when a check fails.
func FailureMessage(url string, out domain.CheckOutcome) (string, string) {
	httpTxt := "n/a"
	if out.StatusCode != 0 {
		httpTxt = fmt.Sprintf("%d", out.StatusCode)
	}
	text := fmt.Sprintf(
		"URL: %s\nHTTP: %s\nReason: %s\nKind: %s\nAttempts: %d\nElapsed: %s",
		url, httpTxt, out.Message, out.Kind, out.Attempts, out.Elapsed.Round(time.Millisecond),
	)
	return "🔴 Site check FAILED", text
}
