package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.IdentityStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level. Bot ids
// are redacted.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.IdentityStore) ports.IdentityStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

// Redact keeps the first four characters of id.
func Redact(id string) string {
	if len(id) <= 4 {
		return "***"
	}
	return id[:4] + "***"
}

func (m *loggingMiddleware) Save(ctx context.Context, identity domain.Identity) error {
	err := m.next.Save(ctx, identity)
	m.log(ctx, "save", identity.Name, err, "id", Redact(identity.ID))
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (domain.Identity, error) {
	identity, err := m.next.Load(ctx, name)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		m.logger.DebugContext(ctx, "Identity not stored", "bot", name)
		return identity, err
	}
	m.log(ctx, "load", name, err, "id", Redact(identity.ID))
	return identity, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	err := m.next.Delete(ctx, name)
	m.log(ctx, "delete", name, err)
	return err
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, err error, attrs ...any) {
	attrs = append([]any{"op", op, "bot", name}, attrs...)
	if err != nil {
		m.logger.WarnContext(ctx, "Identity store operation failed", append(attrs, "error", err)...)
		return
	}
	m.logger.DebugContext(ctx, "Identity store operation", attrs...)
}
