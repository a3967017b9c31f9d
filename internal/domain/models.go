package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 5 * time.Second
	DefaultMultiplier   = 2
)

// RetryPolicy bounds how often and how patiently a check is repeated.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   int
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		Multiplier:   DefaultMultiplier,
	}
}

// SignaturePattern pairs a body pattern with the message reported when it matches.
type SignaturePattern struct {
	Pattern *regexp.Regexp
	Message string
}

type CheckConfig struct {
	TargetURL  string `validate:"required,http_url"`
	CMSAware   bool
	Retry      RetryPolicy
	Signatures []SignaturePattern
}

// NewCheckConfig returns a config with the compiled-in retry policy and the
// WordPress signature list.
func NewCheckConfig(url string, cmsAware bool) CheckConfig {
	return CheckConfig{
		TargetURL:  strings.TrimSpace(url),
		CMSAware:   cmsAware,
		Retry:      DefaultRetryPolicy(),
		Signatures: WordPressSignatures(),
	}
}

var (
	ErrURLMissing = errors.New("SITE_URL not set")
	ErrURLInvalid = errors.New("SITE_URL is not a valid absolute URL")
)

var validate = validator.New()

// Validate reports ErrURLMissing or ErrURLInvalid for an unusable target.
func (c CheckConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() != "TargetURL" {
				continue
			}
			if fe.Tag() == "required" {
				return ErrURLMissing
			}
			return ErrURLInvalid
		}
	}
	return err
}

type FailureKind string

const (
	KindConfiguration    FailureKind = "configuration"
	KindHTTPStatus       FailureKind = "http_status"
	KindTransientNetwork FailureKind = "transient_network"
	KindFatalNetwork     FailureKind = "fatal_network"
	KindUnhandled        FailureKind = "unhandled"
	KindContentSignature FailureKind = "content_signature"
)

// CheckOutcome is the terminal result of one availability check.
type CheckOutcome struct {
	Success    bool
	StatusCode int
	Message    string
	Kind       FailureKind
	Attempts   int
	Elapsed    time.Duration
}
