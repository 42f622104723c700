// Package http собирает REST-слой engagement-сервиса: chi-роутер,
// middleware и регистрацию маршрутов.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dealhunt/engagement-service/internal/service"
	"github.com/dealhunt/engagement-service/internal/transport/http/handlers"
	"github.com/dealhunt/engagement-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Actor(),              // вынимаем идентичность из X-Actor-* в контекст
		middleware.Metrics(),            // счётчики/гистограммы запросов по route pattern
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

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
	// discussions
	r.Post("/discussions", h.CreateDiscussion)
	r.Get("/discussions", h.ListDiscussions)
	r.Get("/discussions/{id}", h.DiscussionByID)
	r.Patch("/discussions/{id}", h.UpdateDiscussion)
	r.Delete("/discussions/{id}", h.DeleteDiscussion)
	r.Post("/discussions/{id}/views", h.RecordView)

	// replies
	r.Get("/discussions/{id}/thread", h.Thread)
	r.Post("/discussions/{id}/replies", h.CreateReply)
	r.Patch("/replies/{id}", h.UpdateReply)
	r.Delete("/replies/{id}", h.DeleteReply)

	// likes
	r.Put("/discussions/{id}/likes", h.SetDiscussionLike)
	r.Delete("/discussions/{id}/likes", h.ClearDiscussionLike)
	r.Put("/replies/{id}/likes", h.SetReplyLike)
	r.Delete("/replies/{id}/likes", h.ClearReplyLike)
}
