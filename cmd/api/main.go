package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magnetlabs/watchtower/internal/config"
	"github.com/magnetlabs/watchtower/internal/httpapi"
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
		logger.Fatal("targets_load_failed", zap.Error(err))
	}

	var notifier notify.Notifier
	if slack := notify.NewSlack(cfg.WebhookURL); slack != nil {
		notifier = slack
	} else {
		logger.Warn("webhook_not_configured")
	}

	run := runner.New(logger, probe.NewHTTPProber(cfg.UserAgent), notifier)
	api := httpapi.NewServer(logger, run, targets)
	api.APIKeys = cfg.APIKeys
	api.RateRPM = cfg.RateRPM
	api.Burst = cfg.RateBurst

	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		logger.Info("api_listen",
			zap.String("addr", cfg.Addr),
			zap.Int("targets", len(targets)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	grp.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("api_failed", zap.Error(err))
	}
	logger.Info("api_stopped")
}
