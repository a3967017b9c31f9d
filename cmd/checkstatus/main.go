package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/checkstatus/internal/config"
	"github.com/hamed0406/checkstatus/internal/domain"
	"github.com/hamed0406/checkstatus/internal/logging"
	"github.com/hamed0406/checkstatus/internal/notify"
	"github.com/hamed0406/checkstatus/internal/probe"
)

func main() {
	os.Exit(run(context.Background(), config.FromEnv(), os.Stdout))
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer) int {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel, stdout)
	if err != nil {
		log.Printf("logger: %v", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	checker := probe.NewAvailabilityChecker(logger, probe.NewHTTPChecker(cfg.HTTPTimeout))
	out := checker.Check(ctx, cfg.Check)
	if out.Success {
		return 0
	}

	if cfg.SlackWebhook != "" {
		title, text := notify.FailureMessage(cfg.Check.TargetURL, out)
		n := notify.Multi{notify.NewSlack(cfg.SlackWebhook)}
		if err := n.Send(ctx, title, text); err != nil {
			logger.Warn("notify_failed", zap.Error(err))
		}
	}

	fmt.Fprintf(stdout, "::error::%s\n", annotation(out))
	return 1
}

// annotation escapes a failure message for a GitHub Actions workflow command.
func annotation(out domain.CheckOutcome) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(out.Message)
}
