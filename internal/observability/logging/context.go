package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Module labels log records with the subsystem that emitted them.
type Module string

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	moduleKey    contextKey = "module"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}

	return ""
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFromContext(ctx context.Context) Module {
	if v, ok := ctx.Value(moduleKey).(Module); ok {
		return v
	}

	return ""
}

// ValidateAndExtractRequestID returns the incoming request ID when it is a
// well-formed UUID, otherwise a fresh one. Callers propagate whatever comes
// back, so a forged or corrupted header never leaks into log correlation.
func ValidateAndExtractRequestID(header string) string {
	if header != "" {
		if _, err := uuid.Parse(header); err == nil {
			return header
		}
	}

	return uuid.NewString()
}

// ContextHandler lifts request ID and module from the context into log
// record attributes, so call sites only need slog.InfoContext and friends.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: inner}
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}

	if module := ModuleFromContext(ctx); module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	return h.Handler.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
