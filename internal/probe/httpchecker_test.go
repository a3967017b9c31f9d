package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/checkstatus/internal/domain"
)

func TestHTTPChecker_StatusOK(t *testing.T) {
	var gotUA string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	resp, err := chk.Get(context.Background(), s.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "CheckStatus-Monitor/2.0", gotUA)
}

func TestHTTPChecker_Status500(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	resp, err := chk.Get(context.Background(), s.URL)
	require.Nil(t, resp)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindHTTPStatus, ce.Kind)
	assert.True(t, ce.Retryable)
	assert.Equal(t, 500, ce.StatusCode)
	assert.Equal(t, "Website is down. HTTP status code: 500", ce.Msg)
}

func TestHTTPChecker_RedirectToSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s := httptest.NewServer(mux)
	defer s.Close()

	resp, err := NewHTTPChecker(2*time.Second).Get(context.Background(), s.URL+"/old")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHTTPChecker_TimeoutIsTransient(t *testing.T) {
	// Server sleeps longer than client timeout
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50 * time.Millisecond)
	_, err := chk.Get(context.Background(), s.URL)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindTransientNetwork, ce.Kind)
	assert.True(t, ce.Retryable)
	assert.NotEmpty(t, ce.Msg)
}

func TestHTTPChecker_ConnectionRefusedIsFatal(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := s.URL
	s.Close()

	_, err := NewHTTPChecker(2*time.Second).Get(context.Background(), target)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindFatalNetwork, ce.Kind)
	assert.False(t, ce.Retryable)
	assert.True(t, strings.HasPrefix(ce.Msg, "Non-retryable error: "), ce.Msg)
}

func TestHTTPChecker_UntrustedCertificateIsTransient(t *testing.T) {
	s := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()

	_, err := NewHTTPChecker(2*time.Second).Get(context.Background(), s.URL)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindTransientNetwork, ce.Kind)
}

func TestHTTPChecker_HTTPSAgainstPlainServerIsTransient(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()

	target := "https://" + strings.TrimPrefix(s.URL, "http://")
	_, err := NewHTTPChecker(2*time.Second).Get(context.Background(), target)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindTransientNetwork, ce.Kind)
}

func TestHTTPChecker_TransportPanicIsUnhandled(t *testing.T) {
	chk := &HTTPChecker{Client: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		panic("transport exploded")
	})}}

	resp, err := chk.Get(context.Background(), "https://example.test")
	require.Nil(t, resp)

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindUnhandled, ce.Kind)
	assert.False(t, ce.Retryable)
	assert.Equal(t, "Unhandled Error: transport exploded", ce.Msg)
}

func TestHTTPChecker_EmptyErrorIsUnhandled(t *testing.T) {
	chk := &HTTPChecker{Client: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("")
	})}}

	_, err := chk.Get(context.Background(), "https://example.test")

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindUnhandled, ce.Kind)
	assert.False(t, ce.Retryable)
}

func TestHTTPChecker_BadURLIsFatal(t *testing.T) {
	_, err := NewHTTPChecker(time.Second).Get(context.Background(), "http://bad host/")

	var ce *CheckError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.KindFatalNetwork, ce.Kind)
}
