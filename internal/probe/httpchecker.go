package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hamed0406/checkstatus/internal/domain"
)

const UserAgent = "CheckStatus-Monitor/2.0"

// HTTPChecker performs a single GET attempt against a target.
type HTTPChecker struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: UserAgent,
	}
}

func (h *HTTPChecker) Get(ctx context.Context, target string) (resp *http.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = &CheckError{Kind: domain.KindUnhandled, Msg: fmt.Sprintf("Unhandled Error: %v", r)}
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &CheckError{Kind: domain.KindFatalNetwork, Msg: "Non-retryable error: " + err.Error(), Err: err}
	}
	ua := h.UserAgent
	if ua == "" {
		ua = UserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err = client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		discard(resp.Body)
		return nil, &CheckError{
			Kind:       domain.KindHTTPStatus,
			Msg:        fmt.Sprintf("Website is down. HTTP status code: %d", resp.StatusCode),
			Retryable:  true,
			StatusCode: resp.StatusCode,
		}
	}
	return resp, nil
}

// discard drains a bounded amount so the connection can be reused, then closes.
func discard(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
