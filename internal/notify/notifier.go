// Package notify delivers end-of-run summaries to operators over Telegram
// and/or Discord. Delivery failures are logged, never fatal: a validation run
// must not depend on a chat service being up.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ykravets/promoaudit/internal/domain"
)

// Sender is one notification channel.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns a short channel identifier, e.g. "telegram".
	Name() string
}

// Notifier fans a run summary out to every configured sender.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

// NewNotifier creates a Notifier over the given senders.
func NewNotifier(senders []Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		senders: senders,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// SummaryNotify renders the run summary and sends it to all channels.
func (n *Notifier) SummaryNotify(ctx context.Context, summary domain.RunSummary) {
	title := fmt.Sprintf("Discount validation run %s finished", summary.RunID)
	message := fmt.Sprintf(
		"Products: %d (with rules: %d, without: %d)\nOK: %d | FAIL: %d | ERROR: %d | NOT_FOUND: %d\nMax difference: %.2f",
		summary.Products, summary.WithRules, summary.WithoutRules,
		summary.Totals.OK, summary.Totals.Fail, summary.Totals.Error, summary.Totals.NotFound,
		summary.MaxDifference,
	)

	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.WarnContext(ctx, "notification failed",
				slog.String("channel", s.Name()),
				slog.String("error", err.Error()),
			)
		}
	}
}
