package events

import (
	"context"
	"log/slog"
	"slices"

	json "github.com/goccy/go-json"
)

// Hook defines the interface for observing the lifecycle of a model
// request. This interface is deliberately designed without a base "no-op"
// implementation to ensure consumers make explicit decisions about
// handling each event type.
//
// Implementation guidelines:
//   - Implement all methods explicitly, even if some events don't require handling
//   - Consider logging or monitoring for events that aren't actively handled
//   - Be prepared for new methods to be added as the system evolves
type Hook interface {
	OnRequestStart(context.Context, RequestStart)

	OnNewToken(context.Context, NewToken)

	OnRequestEnd(context.Context, RequestEnd)
}

// LoggingHook returns a Hook that logs every event it receives through the
// default slog logger.
func LoggingHook() Hook {
	return &loggingHook{}
}

type loggingHook struct{}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (loggingHook) OnRequestStart(ctx context.Context, evt RequestStart) {
	slog.InfoContext(ctx, "Request start", "event", mustJSON(evt))
}

func (loggingHook) OnNewToken(ctx context.Context, evt NewToken) {
	slog.InfoContext(ctx, "New token", "event", mustJSON(evt))
}

func (loggingHook) OnRequestEnd(ctx context.Context, evt RequestEnd) {
	slog.InfoContext(ctx, "Request end", "event", mustJSON(evt))
}

func NewCompositeHook(hooks ...Hook) Hook {
	return CompositeHook(hooks)
}

// CompositeHook allows combining multiple hooks into a single hook
// implementation. Events are delivered to the hooks in order.
type CompositeHook []Hook

func (c CompositeHook) OnRequestStart(ctx context.Context, evt RequestStart) {
	for h := range slices.Values(c) {
		h.OnRequestStart(ctx, evt)
	}
}

func (c CompositeHook) OnNewToken(ctx context.Context, evt NewToken) {
	for h := range slices.Values(c) {
		h.OnNewToken(ctx, evt)
	}
}

func (c CompositeHook) OnRequestEnd(ctx context.Context, evt RequestEnd) {
	for h := range slices.Values(c) {
		h.OnRequestEnd(ctx, evt)
	}
}
