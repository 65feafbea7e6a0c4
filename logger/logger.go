package logger

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// Handler implements [slog.Handler] and folds any attributes carried
// by the context into each record before handing off to the base
// handler.
type Handler struct {
	slog.Handler
}

// NewHandler wraps base so context attributes show up on records.
func NewHandler(base slog.Handler) Handler {
	return Handler{Handler: base}
}

// Handle implements [slog.Handler] interface.
func (h Handler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, record)
}

// With returns a context carrying the given attributes.
//
// Any record logged with the resulting context gets them appended by
// the [Handler].
func With(ctx context.Context, toAppend ...slog.Attr) context.Context {
	attrs, _ := ctx.Value(ctxKey{}).([]slog.Attr)

	// Copy so sibling contexts don't share a backing array.
	merged := make([]slog.Attr, 0, len(attrs)+len(toAppend))
	merged = append(merged, attrs...)
	merged = append(merged, toAppend...)

	return context.WithValue(ctx, ctxKey{}, merged)
}

// Setup installs the process-wide default logger. Format is either
// "text" or "json".
func Setup(format string) {
	var base slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if format == "json" {
		base = slog.NewJSONHandler(os.Stderr, nil)
	}

	slog.SetDefault(slog.New(NewHandler(base)))
}
