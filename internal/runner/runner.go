package runner

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magnetlabs/watchtower/internal/domain"
	"github.com/magnetlabs/watchtower/internal/notify"
	"github.com/magnetlabs/watchtower/internal/probe"
)

// Runner drives one full pass: fan out probes, aggregate, alert.
// Notifier may be nil when no webhook is configured; the run then
// skips alerting and says so in the log.
type Runner struct {
	Logger   *zap.Logger
	Prober   probe.Prober
	Notifier notify.Notifier
}

func New(logger *zap.Logger, prober probe.Prober, notifier notify.Notifier) *Runner {
	return &Runner{Logger: logger, Prober: prober, Notifier: notifier}
}

// Run probes every target once and returns the summary. It cannot
// fail: per-target trouble is data in the summary, and a broken alert
// delivery is logged, never propagated.
func (r *Runner) Run(ctx context.Context, targets []domain.Target) domain.RunSummary {
	runID := uuid.NewString()
	log := r.Logger.With(zap.String("run_id", runID))
	log.Info("run_started", zap.Int("targets", len(targets)))

	outcomes := r.RunAll(ctx, targets)
	summary := Summarize(outcomes)
	failures := Failures(outcomes)

	if len(failures) > 0 {
		if r.Notifier == nil {
			log.Warn("webhook_not_configured", zap.Int("failed", len(failures)))
		} else if err := r.Notifier.Send(ctx, failures); err != nil {
			log.Warn("notify_failed", zap.Error(err))
		} else {
			log.Info("notify_sent", zap.Int("failed", len(failures)))
		}
	}

	log.Info("run_finished",
		zap.Int("total_checked", summary.TotalChecked),
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
	)
	return summary
}

// RunAll launches one probe goroutine per target and joins them all.
// The output is in join order, not input order; consumers correlate by
// name/url on each outcome. A panicking probe is logged and its result
// dropped: the run degrades, it does not abort.
func (r *Runner) RunAll(ctx context.Context, targets []domain.Target) []domain.CheckOutcome {
	ch := make(chan domain.CheckOutcome, len(targets))
	var wg sync.WaitGroup

	for _, tgt := range targets {
		t := tgt
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					r.Logger.Error("probe_panic",
						zap.String("name", t.Name),
						zap.String("url", t.URL),
						zap.Any("panic", p),
					)
				}
			}()
			ch <- r.Prober.Check(ctx, t)
		}()
	}
	wg.Wait()
	close(ch)

	outcomes := make([]domain.CheckOutcome, 0, len(targets))
	for out := range ch {
		outcomes = append(outcomes, out)
	}
	if dropped := len(targets) - len(outcomes); dropped > 0 {
		r.Logger.Warn("probes_dropped", zap.Int("dropped", dropped))
	}

	r.logDNSDiagnostics(outcomes)
	return outcomes
}

// logDNSDiagnostics adds resolver context for connection failures, so
// the log can tell a dead host apart from a dead DNS name.
func (r *Runner) logDNSDiagnostics(outcomes []domain.CheckOutcome) {
	for _, o := range outcomes {
		if o.Error == nil || *o.Error != "Connection failed" {
			continue
		}
		d := probe.CheckDNS(hostOf(o.URL))
		r.Logger.Info("dns_check",
			zap.String("name", o.Name),
			zap.String("domain", d.Domain),
			zap.String("class", d.Class),
			zap.Bool("resolves", d.Resolves),
			zap.Strings("nameservers", d.Nameservers),
			zap.String("resolver_error", d.ResolverError),
		)
	}
}

// hostOf pulls the hostname from a URL string.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
