package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/hamed0406/checkstatus/internal/domain"
)

type Config struct {
	Check        domain.CheckConfig
	HTTPTimeout  time.Duration // per-attempt client timeout
	LogDir       string        // empty means console only
	LogLevel     zapcore.Level
	SlackWebhook string // empty disables failure notifications
}

func FromEnv() Config {
	// Target (CI input first, then plain env)
	siteURL := input("site-url", "SITE_URL")
	cmsAware := strings.EqualFold(input("wordpress", "IS_WORDPRESS"), "true")

	timeout := 30 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	level := zapcore.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if l, err := zapcore.ParseLevel(v); err == nil {
			level = l
		}
	}
	// GitHub sets this when a run is re-run with debug logging
	if os.Getenv("RUNNER_DEBUG") == "1" {
		level = zapcore.DebugLevel
	}

	return Config{
		Check:        domain.NewCheckConfig(siteURL, cmsAware),
		HTTPTimeout:  timeout,
		LogDir:       strings.TrimSpace(os.Getenv("LOG_DIR")),
		LogLevel:     level,
		SlackWebhook: strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")),
	}
}

// input reads a GitHub Actions input (exposed as INPUT_<NAME>) and falls back
// to the given environment variable when the input is empty.
func input(name, fallback string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(fallback))
}
