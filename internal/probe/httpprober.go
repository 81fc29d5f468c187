package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/magnetlabs/watchtower/internal/domain"
)

// Prober performs a single check against one target.
type Prober interface {
	Check(ctx context.Context, t domain.Target) domain.CheckOutcome
}

// HTTPProber probes targets with a plain GET. One shared client across
// all concurrent probes: it is used read-only, purely for connection
// reuse, so no locking is needed. The per-target deadline comes from
// the request context, not from the client.
type HTTPProber struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPProber(userAgent string) *HTTPProber {
	return &HTTPProber{
		Client:    &http.Client{},
		UserAgent: userAgent,
	}
}

// Check never returns an error: every failure mode, including a probe
// that cannot even be constructed, is represented as a CheckOutcome.
func (p *HTTPProber) Check(ctx context.Context, t domain.Target) domain.CheckOutcome {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return failure(t, "Request failed", time.Since(start))
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return failure(t, classify(err), elapsed)
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	ms := elapsed.Milliseconds()
	out := domain.CheckOutcome{
		Name:           t.Name,
		URL:            t.URL,
		StatusCode:     &code,
		ResponseTimeMS: &ms,
	}
	if code >= 200 && code < 300 {
		out.Success = true
	} else {
		msg := fmt.Sprintf("HTTP %d", code)
		out.Error = &msg
	}
	return out
}

func failure(t domain.Target, msg string, elapsed time.Duration) domain.CheckOutcome {
	ms := elapsed.Milliseconds()
	return domain.CheckOutcome{
		Name:           t.Name,
		URL:            t.URL,
		Error:          &msg,
		ResponseTimeMS: &ms,
	}
}

// classify maps a transport error to a short human-readable cause.
// Timeouts win over everything else: a dial that times out is reported
// as a timeout, not a connection failure.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return "Timeout"
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return "Connection failed"
	}
	var de *net.DNSError
	if errors.As(err, &de) {
		return "Connection failed"
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	return "Error: " + err.Error()
}
