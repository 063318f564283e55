package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jeanlaboratories/momentum/internal/actions"
	logctx "github.com/jeanlaboratories/momentum/pkg/log"
)

// Recover перехватывает panic и пишет унифицированный конверт 500/internal.
// Детали паники не утекают на клиент.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logctx.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(actions.Result{
						Success: false,
						Code:    actions.CodeInternal,
						Message: "Something went wrong. Please try again.",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
