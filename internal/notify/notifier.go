package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/dustin/go-humanize"
)

// Event is one user-facing adaptation notice.
type Event struct {
	Adaptation domain.ModelAdaptation
	Message    string
}

// Notifier surfaces human-readable adaptation messages. Implementations must
// never block the learning cycle on delivery failures.
type Notifier interface {
	AdaptationApplied(ctx context.Context, event Event)
	AdaptationRolledBack(ctx context.Context, event Event)
}

// AppliedMessage phrases an executed adaptation for humans.
func AppliedMessage(adaptation domain.ModelAdaptation) string {
	checkAt := adaptation.ImplementationDate.Add(adaptation.MonitoringInterval)
	return fmt.Sprintf("Tuned your schedule: %s. Checking the effect %s; it reverts automatically if it does not help.",
		adaptation.Opportunity.Description,
		humanize.RelTime(adaptation.ImplementationDate, checkAt, "later", "earlier"))
}

// RollbackMessage phrases a reverted adaptation for humans.
func RollbackMessage(adaptation domain.ModelAdaptation) string {
	return fmt.Sprintf("Rolled back a schedule change that was not helping: %s. %s",
		adaptation.Opportunity.Description,
		adaptation.Opportunity.RollbackPlan)
}

// Noop discards all events.
type Noop struct{}

func (Noop) AdaptationApplied(context.Context, Event)    {}
func (Noop) AdaptationRolledBack(context.Context, Event) {}

// Slog writes adaptation notices to a structured logger.
type Slog struct {
	Logger *slog.Logger
}

func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{Logger: logger}
}

func (n *Slog) AdaptationApplied(ctx context.Context, event Event) {
	n.Logger.InfoContext(ctx, "adaptation_applied",
		"adaptation_id", event.Adaptation.ID,
		"type", event.Adaptation.Type,
		"message", event.Message,
	)
}

func (n *Slog) AdaptationRolledBack(ctx context.Context, event Event) {
	n.Logger.InfoContext(ctx, "adaptation_rolled_back",
		"adaptation_id", event.Adaptation.ID,
		"type", event.Adaptation.Type,
		"message", event.Message,
	)
}

// Fanout delivers each event to every child notifier.
type Fanout []Notifier

func (f Fanout) AdaptationApplied(ctx context.Context, event Event) {
	for _, n := range f {
		n.AdaptationApplied(ctx, event)
	}
}

func (f Fanout) AdaptationRolledBack(ctx context.Context, event Event) {
	for _, n := range f {
		n.AdaptationRolledBack(ctx, event)
	}
}

var (
	_ Notifier = Noop{}
	_ Notifier = (*Slog)(nil)
	_ Notifier = Fanout(nil)
)
