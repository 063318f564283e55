package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jeanlaboratories/momentum/internal/actions"
	"github.com/jeanlaboratories/momentum/internal/http/handlers"
	"github.com/jeanlaboratories/momentum/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	Metrics  prometheus.Registerer
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(a *actions.Actions, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Identity(),           // идентичность пользователя из заголовков шлюза
	)
	if opts.Metrics != nil {
		root.Use(middleware.Metrics(opts.Metrics))
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(a)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// comments
	r.Post("/comments", h.CreateComment)
	r.Patch("/comments/{id}", h.UpdateComment)
	r.Delete("/comments/{id}", h.DeleteComment)
	r.Get("/comments/{id}/replies", h.ListReplies)
	r.Get("/threads", h.Threads)
	r.Get("/context", h.CommentContext)

	// moderation
	r.Post("/comments/{id}/flags", h.FlagComment)
	r.Get("/brands/{brand_id}/flags", h.ListFlags)
	r.Post("/flags/{id}/resolve", h.ResolveFlag)

	// engagement
	r.Post("/engagement/share", h.ShareContentToProfile)
	r.Get("/brands/{brand_id}/campaigns/{campaign_id}/export", h.ExportCampaign)
	r.Post("/brands/{brand_id}/campaigns/{campaign_id}/import", h.ImportCampaign)
}
