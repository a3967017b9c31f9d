package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/checkstatus/internal/domain"
)

// AvailabilityChecker verifies that a site answers with 2xx and, for CMS-aware
// checks, that the page is not one of the CMS's own error pages.
type AvailabilityChecker struct {
	Logger *zap.Logger
	HTTP   Getter
	Sleep  SleepFunc
	// Resolver is used to log DNS diagnostics after a fatal network error.
	// Nil disables the diagnostics.
	Resolver DNSResolver
}

func NewAvailabilityChecker(logger *zap.Logger, http Getter) *AvailabilityChecker {
	return &AvailabilityChecker{
		Logger:   logger,
		HTTP:     http,
		Sleep:    sleepCtx,
		Resolver: net.DefaultResolver,
	}
}

// Check runs one availability check. Every failure is reported through the
// returned outcome.
func (a *AvailabilityChecker) Check(ctx context.Context, cfg domain.CheckConfig) domain.CheckOutcome {
	log := a.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("url", cfg.TargetURL))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return domain.CheckOutcome{Kind: domain.KindConfiguration, Message: err.Error()}
	}

	log.Info(fmt.Sprintf("Checking %s...", cfg.TargetURL))
	start := time.Now()

	rc := &RetryChecker{Inner: a.HTTP, Policy: cfg.Retry, Sleep: a.Sleep, Logger: log}
	resp, attempts, err := rc.Get(ctx, cfg.TargetURL)
	if err != nil {
		ce := asCheckError(err)
		if ce.Kind == domain.KindFatalNetwork {
			a.logDNS(ctx, log, cfg.TargetURL)
		}
		return a.fail(log, domain.CheckOutcome{
			Kind:       ce.Kind,
			Message:    ce.Msg,
			StatusCode: ce.StatusCode,
			Attempts:   attempts,
			Elapsed:    time.Since(start),
		})
	}
	defer resp.Body.Close()

	out := domain.CheckOutcome{
		Success:    true,
		StatusCode: resp.StatusCode,
		Attempts:   attempts,
	}

	if cfg.CMSAware {
		log.Info("Checking for CMS-specific errors...")
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			out.Success = false
			out.Kind = domain.KindFatalNetwork
			out.Message = fmt.Sprintf("Non-retryable error: reading response body: %v", err)
			out.Elapsed = time.Since(start)
			return a.fail(log, out)
		}
		if sig, ok := domain.MatchSignature(string(body), cfg.Signatures); ok {
			out.Success = false
			out.Kind = domain.KindContentSignature
			out.Message = sig.Message
			out.Elapsed = time.Since(start)
			return a.fail(log, out)
		}
	}

	out.Elapsed = time.Since(start)
	log.Info(fmt.Sprintf("%s is up! (HTTP %d)", cfg.TargetURL, out.StatusCode),
		zap.Int("status", out.StatusCode),
		zap.Int("attempts", out.Attempts),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out
}

func (a *AvailabilityChecker) fail(log *zap.Logger, out domain.CheckOutcome) domain.CheckOutcome {
	log.Error(out.Message,
		zap.String("kind", string(out.Kind)),
		zap.Int("status", out.StatusCode),
		zap.Int("attempts", out.Attempts),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out
}

func (a *AvailabilityChecker) logDNS(ctx context.Context, log *zap.Logger, target string) {
	if a.Resolver == nil {
		return
	}
	dns := CheckDNS(ctx, a.Resolver, extractHost(target))
	log.Info("dns_check",
		zap.String("domain", dns.Domain),
		zap.String("class", dns.Class),
		zap.Bool("has_a_or_aaaa", dns.HasAOrAAAA),
		zap.Strings("nameservers", dns.Nameservers),
		zap.String("cname", dns.CNAME),
		zap.String("resolver_error", dns.ResolverError),
	)
}
