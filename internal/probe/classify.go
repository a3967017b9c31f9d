package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/hamed0406/checkstatus/internal/domain"
)

// Substrings that mark an error as transient when no structured cause is
// recognised. Matching is case-sensitive.
var transientMarkers = []string{"SSL", "timeout", "ETIMEDOUT"}

func classifyTransportError(err error) *CheckError {
	text := errorText(err)
	if text == "" {
		return &CheckError{
			Kind: domain.KindUnhandled,
			Msg:  fmt.Sprintf("Unhandled Error: %T", innerError(err)),
			Err:  err,
		}
	}
	if isTransient(err) {
		return &CheckError{Kind: domain.KindTransientNetwork, Msg: err.Error(), Retryable: true, Err: err}
	}
	return &CheckError{Kind: domain.KindFatalNetwork, Msg: "Non-retryable error: " + err.Error(), Err: err}
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	// only a resolver timeout is retried, never NXDOMAIN
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if isTLSError(err) {
		return true
	}

	text := err.Error()
	for _, m := range transientMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func isTLSError(err error) bool {
	if errors.Is(err, http.ErrSchemeMismatch) {
		return true
	}
	var recErr tls.RecordHeaderError
	if errors.As(err, &recErr) {
		return true
	}
	var verErr *tls.CertificateVerificationError
	if errors.As(err, &verErr) {
		return true
	}
	// remote TLS alerts surface as an OpError with this op
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "remote error" {
		return true
	}
	return false
}

// errorText is the message of the transport error itself, without the
// request prefix net/http adds.
func errorText(err error) string {
	inner := innerError(err)
	if inner == nil {
		return ""
	}
	return strings.TrimSpace(inner.Error())
}

func innerError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
