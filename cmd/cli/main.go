// cmd/cli runs one check pass and prints the summary to stdout. Meant
// for cron jobs and one-off diagnosis; exits non-zero only when the
// configuration cannot be loaded.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/magnetlabs/watchtower/internal/config"
	"github.com/magnetlabs/watchtower/internal/logging"
	"github.com/magnetlabs/watchtower/internal/notify"
	"github.com/magnetlabs/watchtower/internal/probe"
	"github.com/magnetlabs/watchtower/internal/runner"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	targets, err := config.LoadTargets(cfg.TargetsFile)
	if err != nil {
		logger.Error("targets_load_failed", zap.Error(err))
		log.Fatal(err)
	}

	var notifier notify.Notifier
	if slack := notify.NewSlack(cfg.WebhookURL); slack != nil {
		notifier = slack
	} else {
		logger.Warn("webhook_not_configured")
	}

	run := runner.New(logger, probe.NewHTTPProber(cfg.UserAgent), notifier)
	summary := run.Run(context.Background(), targets)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatal(err)
	}
}
