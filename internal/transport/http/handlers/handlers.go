// handlers реализует REST-эндпоинты engagement-сервиса поверх бизнес-логики.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/service"
	apierrors "github.com/dealhunt/engagement-service/internal/transport/http/errors"
	"github.com/dealhunt/engagement-service/internal/transport/http/middleware"
)

// Handlers агрегирует зависимости (бизнес-логика).
type Handlers struct {
	service *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка парсинга входа -> 400.
func errInvalidArgument() error {
	return fmt.Errorf("%w: bad request", service.ErrInvalidArgument)
}

// requireActor достаёт актора из контекста; для пишущих ручек его
// отсутствие — 400 (идентичность обязана прийти от вышестоящего слоя).
func requireActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, errInvalidArgument())
		return models.Actor{}, false
	}

	return actor, true
}
