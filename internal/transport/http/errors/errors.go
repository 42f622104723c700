// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает сервисную ошибку, на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей бэкенда.
//
// Закрытый набор видов отказа — контракт для фронта; коды БД наружу
// не пересекают границу API.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dealhunt/engagement-service/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует сервисную ошибку в HTTP-статус и унифицированный
// ответ для фронта.
//
// Маппинг:
//   - ErrInvalidArgument            -> 400
//   - ErrForbidden                  -> 403
//   - ErrNotFound/ErrParentNotFound -> 404
//   - ErrConflict                   -> 409
//   - ErrMaxDepthExceeded           -> 422
//   - ErrUnavailable                -> 503
//   - прочее (включая nil)          -> 500/internal
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		// Программная ошибка вызова: не маскируем баг "200 OK с телом ошибки".
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden", "forbidden"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrParentNotFound):
		return http.StatusNotFound, "parent_not_found", "parent not found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict", "conflict"
	case errors.Is(err, service.ErrMaxDepthExceeded):
		return http.StatusUnprocessableEntity, "max_depth_exceeded", "max reply depth exceeded"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
