package auth

import "context"

type ctxKey struct{}

// WithUser кладёт аутентифицированного пользователя в контекст запроса.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext достаёт пользователя из контекста.
// ok=false — запрос не аутентифицирован.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}

// ContextAuthenticator разрешает пользователя из контекста запроса.
// Идентичность устанавливает HTTP-middleware по заголовкам платформенного
// шлюза; за пределами HTTP-слоя секреты и токены сервису не видны.
type ContextAuthenticator struct{}

// AuthenticatedUser возвращает пользователя текущего запроса либо
// ErrUnauthenticated, если идентичность не была установлена.
func (ContextAuthenticator) AuthenticatedUser(ctx context.Context) (*User, error) {
	u, ok := UserFromContext(ctx)
	if !ok || u.UID == "" {
		return nil, ErrUnauthenticated
	}

	return &u, nil
}
