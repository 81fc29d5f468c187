package notify

import (
	"context"

	"go.uber.org/multierr"

	"github.com/magnetlabs/watchtower/internal/domain"
)

// Notifier delivers an alert for the failed outcomes of one run.
// Implementations must treat an empty failure list as a no-op.
type Notifier interface {
	Send(ctx context.Context, failures []domain.CheckOutcome) error
}

// Multi fans an alert out to several channels, collecting every
// delivery error instead of stopping at the first.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, failures []domain.CheckOutcome) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, failures))
	}
	return errs
}
