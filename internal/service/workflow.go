package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"Mala_Admin/internal/pkg"
)

// workflow is the bookkeeping every transition shares: metrics, the
// transition event and courtesy notifications.
type workflow struct {
	events   EventPublisher
	notifier Notifier
	metrics  *pkg.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, pkg.ErrNotFound):
		return "not_found"
	case errors.Is(err, pkg.ErrInvalidTransition):
		return "invalid"
	default:
		return "error"
	}
}

func (w *workflow) done(ctx context.Context, family, transition string, id uint64, from, to string, err error) {
	w.metrics.ObserveTransition(family, transition, resultOf(err))
	if err != nil {
		return
	}
	ev := TransitionEvent{
		Family:     family,
		RecordID:   id,
		Transition: transition,
		From:       from,
		To:         to,
		Actor:      ActorFrom(ctx),
		At:         w.now().UTC(),
	}
	if perr := w.events.Publish(ctx, ev); perr != nil {
		w.logger.Warn("publish transition event failed",
			"family", family, "record_id", id, "transition", transition, "error", perr)
	}
}

// notify runs a best-effort notification and logs its failure.
func (w *workflow) notify(what string, fn func() error) {
	if err := fn(); err != nil {
		w.logger.Warn("notification failed", "notification", what, "error", err)
	}
}
