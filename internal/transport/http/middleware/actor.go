package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/models"
)

type actorKey struct{}

// Actor вынимает идентичность из заголовков X-Actor-Id / X-Actor-Name
// и кладёт её в контекст запроса.
//
// Заголовки проставляет вышестоящий слой (gateway) после проверки
// сессии: сервис доверяет им и сам учётные данные не проверяет.
// Отсутствие или кривой заголовок — не ошибка на этом уровне:
// читающим ручкам актор не нужен, а пишущие отвергнут запрос сами.
func Actor() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(strings.TrimSpace(r.Header.Get("X-Actor-Id")))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			actor := models.Actor{
				ID:       id,
				Username: strings.TrimSpace(r.Header.Get("X-Actor-Name")),
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom достаёт актора из контекста; ok == false для анонимного запроса.
func ActorFrom(ctx context.Context) (models.Actor, bool) {
	if v := ctx.Value(actorKey{}); v != nil {
		if a, ok := v.(models.Actor); ok {
			return a, true
		}
	}

	return models.Actor{}, false
}
