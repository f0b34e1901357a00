package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"Mala_Admin/internal/pkg"
)

// TransitionEvent is published after a workflow transition commits.
type TransitionEvent struct {
	Family     string    `json:"family"`
	RecordID   uint64    `json:"record_id"`
	Transition string    `json:"transition"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor,omitempty"`
	At         time.Time `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev TransitionEvent) error
}

// LogPublisher writes events to the log; used when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, ev TransitionEvent) error {
	if p.Logger == nil {
		return nil
	}
	p.Logger.InfoContext(ctx, "workflow transition",
		"family", ev.Family,
		"record_id", ev.RecordID,
		"transition", ev.Transition,
		"from", ev.From,
		"to", ev.To,
		"actor", ev.Actor,
	)
	return nil
}

// KafkaPublisher sends events keyed by family and record id.
type KafkaPublisher struct {
	Producer *pkg.KafkaProducer
}

func (p KafkaPublisher) Publish(ctx context.Context, ev TransitionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Producer.Send(ctx, pkg.MakeKey(ev.Family, ev.RecordID), payload, eventHeaders(ev))
}

// eventHeaders let consumers route on the event type without decoding the
// payload.
func eventHeaders(ev TransitionEvent) map[string]string {
	h := map[string]string{
		"content-type": "application/json",
		"event-type":   ev.Family + "." + ev.Transition,
		"status":       ev.To,
	}
	if ev.Actor != "" {
		h["actor"] = ev.Actor
	}
	return h
}

type actorKey struct{}

// WithActor tags ctx with the admin performing the request.
func WithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, actorKey{}, email)
}

func ActorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
