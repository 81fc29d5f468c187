package runner

import (
	"time"

	"github.com/magnetlabs/watchtower/internal/domain"
)

// Summarize partitions outcomes into successes and failures. Pure: no
// I/O, no mutation of the input. TotalChecked == Successful + Failed
// always holds over the outcomes actually joined.
func Summarize(outcomes []domain.CheckOutcome) domain.RunSummary {
	ok := 0
	for _, o := range outcomes {
		if o.Success {
			ok++
		}
	}
	return domain.RunSummary{
		Timestamp:    time.Now().UTC(),
		TotalChecked: len(outcomes),
		Successful:   ok,
		Failed:       len(outcomes) - ok,
		Results:      outcomes,
	}
}

// Failures returns the failed outcomes, preserving their order.
func Failures(outcomes []domain.CheckOutcome) []domain.CheckOutcome {
	var failed []domain.CheckOutcome
	for _, o := range outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
