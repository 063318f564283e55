// log — маленький пакет для прокидывания request-scoped slog.Logger через контекст.
//
// Используется всеми слоями: транспорт кладёт логгер с request_id через Into,
// сервис и сторедж достают его через From и дополняют полями операции.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста; если его нет — возвращает slog.Default().
// Никогда не возвращает nil, чтобы вызывающий код не проверял.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}

	return slog.Default()
}
