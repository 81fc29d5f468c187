package runner

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/magnetlabs/watchtower/internal/domain"
)

// --- fakes ---

// scriptedProber answers per target name; unknown names succeed.
type scriptedProber struct {
	mu    sync.Mutex
	calls int
	down  map[string]string // name -> error text
	panic map[string]bool
}

func (f *scriptedProber) Check(_ context.Context, t domain.Target) domain.CheckOutcome {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.panic[t.Name] {
		panic("boom: " + t.Name)
	}
	if msg, ok := f.down[t.Name]; ok {
		return domain.CheckOutcome{Name: t.Name, URL: t.URL, Error: &msg}
	}
	code := 200
	return domain.CheckOutcome{Name: t.Name, URL: t.URL, Success: true, StatusCode: &code}
}

type recordingNotifier struct {
	mu    sync.Mutex
	sends int
	last  []domain.CheckOutcome
	err   error
}

func (n *recordingNotifier) Send(_ context.Context, failures []domain.CheckOutcome) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends++
	n.last = failures
	return n.err
}

func targets(names ...string) []domain.Target {
	ts := make([]domain.Target, 0, len(names))
	for _, n := range names {
		ts = append(ts, domain.Target{Name: n, URL: "https://" + n + ".example"})
	}
	return ts
}

// --- tests ---

func TestRun_CountInvariantHolds(t *testing.T) {
	p := &scriptedProber{down: map[string]string{"b": "HTTP 503"}}
	nt := &recordingNotifier{}
	r := New(zap.NewNop(), p, nt)

	sum := r.Run(context.Background(), targets("a", "b", "c"))

	if sum.TotalChecked != 3 || sum.Successful != 2 || sum.Failed != 1 {
		t.Fatalf("counts wrong: %+v", sum)
	}
	if sum.TotalChecked != sum.Successful+sum.Failed {
		t.Fatalf("invariant broken: %+v", sum)
	}
	if len(sum.Results) != 3 {
		t.Fatalf("want 3 results, got %d", len(sum.Results))
	}
}

func TestRun_NotifierGetsOnlyFailures(t *testing.T) {
	p := &scriptedProber{down: map[string]string{"a": "Timeout", "c": "HTTP 500"}}
	nt := &recordingNotifier{}
	r := New(zap.NewNop(), p, nt)

	r.Run(context.Background(), targets("a", "b", "c"))

	if nt.sends != 1 {
		t.Fatalf("want one send, got %d", nt.sends)
	}
	if len(nt.last) != 2 {
		t.Fatalf("want 2 failures, got %+v", nt.last)
	}
	for _, f := range nt.last {
		if f.Success {
			t.Fatalf("success leaked into failures: %+v", f)
		}
	}
}

func TestRun_AllUpMeansNoNotification(t *testing.T) {
	p := &scriptedProber{}
	nt := &recordingNotifier{}
	r := New(zap.NewNop(), p, nt)

	r.Run(context.Background(), targets("a", "b"))

	if nt.sends != 0 {
		t.Fatalf("notifier should stay silent, got %d sends", nt.sends)
	}
}

func TestRun_NotifyFailureDoesNotAffectSummary(t *testing.T) {
	p := &scriptedProber{down: map[string]string{"a": "HTTP 500"}}
	nt := &recordingNotifier{err: context.DeadlineExceeded}
	r := New(zap.NewNop(), p, nt)

	sum := r.Run(context.Background(), targets("a", "b"))
	if sum.TotalChecked != 2 || sum.Failed != 1 {
		t.Fatalf("summary changed by notify error: %+v", sum)
	}
}

func TestRun_NilNotifierSkipsAlerting(t *testing.T) {
	p := &scriptedProber{down: map[string]string{"a": "HTTP 500"}}
	r := New(zap.NewNop(), p, nil)

	sum := r.Run(context.Background(), targets("a"))
	if sum.Failed != 1 {
		t.Fatalf("summary wrong: %+v", sum)
	}
}

func TestRunAll_PanickingProbeIsDropped(t *testing.T) {
	p := &scriptedProber{panic: map[string]bool{"b": true}}
	r := New(zap.NewNop(), p, nil)

	outcomes := r.RunAll(context.Background(), targets("a", "b", "c"))

	if len(outcomes) != 2 {
		t.Fatalf("want crashed probe dropped, got %d outcomes", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Name == "b" {
			t.Fatalf("crashed target should not appear: %+v", o)
		}
	}
}

func TestRunAll_ProbesEveryTargetOnce(t *testing.T) {
	p := &scriptedProber{}
	r := New(zap.NewNop(), p, nil)

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	outcomes := r.RunAll(context.Background(), targets(names...))

	if p.calls != len(names) {
		t.Fatalf("want %d probe calls, got %d", len(names), p.calls)
	}
	seen := map[string]bool{}
	for _, o := range outcomes {
		seen[o.Name] = true
	}
	for _, n := range names {
		if !seen[n] {
			t.Fatalf("target %s missing from outcomes", n)
		}
	}
}

func TestSummarize_IdempotentExceptTimestamp(t *testing.T) {
	msg := "HTTP 404"
	outcomes := []domain.CheckOutcome{
		{Name: "a", URL: "https://a", Success: true},
		{Name: "b", URL: "https://b", Error: &msg},
	}
	s1 := Summarize(outcomes)
	s2 := Summarize(outcomes)

	s2.Timestamp = s1.Timestamp
	if s1.TotalChecked != s2.TotalChecked || s1.Successful != s2.Successful || s1.Failed != s2.Failed {
		t.Fatalf("summaries differ:\n%+v\n%+v", s1, s2)
	}
	if len(s1.Results) != len(s2.Results) {
		t.Fatalf("result lists differ")
	}
}

func TestFailures_PreservesOrder(t *testing.T) {
	msg := "Connection failed"
	outcomes := []domain.CheckOutcome{
		{Name: "a", Error: &msg},
		{Name: "b", Success: true},
		{Name: "c", Error: &msg},
	}
	got := Failures(outcomes)
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Fatalf("order wrong: %+v", got)
	}
}

func TestHostOf(t *testing.T) {
	if h := hostOf("https://sub.example.com/path"); h != "sub.example.com" {
		t.Fatalf("hostOf wrong: %q", h)
	}
	if h := hostOf("not a url"); !strings.Contains(h, "not a url") {
		t.Fatalf("fallback wrong: %q", h)
	}
}
