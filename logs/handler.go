package logs

import (
	"context"
	"log/slog"
)

type scanKey struct{}

// WithScan marks ctx with the scan cycle number.
func WithScan(ctx context.Context, n uint64) context.Context {
	return context.WithValue(ctx, scanKey{}, n)
}

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := ctx.Value(SpanKey); v != nil {
		record.Add("ladder.span", v.(Span))
	}
	if v := ctx.Value(scanKey{}); v != nil {
		record.Add("ladder.scan", v.(uint64))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
