package middleware

import (
	"net/http"

	"github.com/jeanlaboratories/momentum/internal/auth"
)

// Заголовки идентичности, проставляемые платформенным шлюзом после
// проверки сессии. Сервис им доверяет: он не должен быть доступен
// напрямую извне периметра.
const (
	headerUserID    = "X-User-Id"
	headerUserName  = "X-User-Name"
	headerUserEmail = "X-User-Email"
	headerUserPhoto = "X-User-Photo"
)

// Identity переносит идентичность пользователя из заголовков шлюза
// в контекст запроса. Отсутствие X-User-Id оставляет запрос
// неаутентифицированным — отказ произойдёт на уровне операции.
func Identity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := r.Header.Get(headerUserID)
			if uid == "" {
				next.ServeHTTP(w, r)
				return
			}

			user := auth.User{
				UID:         uid,
				Email:       r.Header.Get(headerUserEmail),
				DisplayName: r.Header.Get(headerUserName),
				PhotoURL:    r.Header.Get(headerUserPhoto),
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}
