// service содержит бизнес-логику engagement-сервиса.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dealhunt/engagement-service/internal/config"
	"github.com/dealhunt/engagement-service/internal/events"
	"github.com/dealhunt/engagement-service/internal/pkg/log"
	"github.com/dealhunt/engagement-service/internal/storage"
)

var (
	// ErrInvalidArgument — вход нарушает ограничение длины/формата.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — обсуждение/ответ отсутствует или скрыт от актора.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound — родительский ответ отсутствует или чужой.
	ErrParentNotFound = errors.New("parent not found")
	// ErrMaxDepthExceeded — превышена максимальная глубина ветвления.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrForbidden — актор не автор изменяемой строки.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict — конфликт сериализации, не ушедший после повторов.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable — хранилище недоступно, повторы исчерпаны.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Ограничения длины из контракта данных. Инварианты продублированы
// CHECK-ами схемы; здесь они отсекаются до похода в БД.
const (
	titleMinLen        = 3
	titleMaxLen        = 200
	contentMinLen      = 10
	contentMaxLen      = 10000
	replyContentMinLen = 1
	replyContentMaxLen = 5000
)

// Service — бизнес-логика engagement-service.
type Service struct {
	storage  storage.Storage
	notifier events.Publisher
	cfg      config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, notifier events.Publisher, cfg config.Config) *Service {
	if notifier == nil {
		notifier = events.NewNoop()
	}

	return &Service{
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
	}
}

// mapStorageErr транслирует сентинелы хранилища в сервисные.
// Повторяемые ошибки сюда попадают уже после исчерпания повторов.
func (s *Service) mapStorageErr(lg *slog.Logger, call string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn("not found")
		return ErrNotFound
	case errors.Is(err, storage.ErrParentNotFound):
		lg.Warn("parent not found")
		return ErrParentNotFound
	case errors.Is(err, storage.ErrMaxDepthExceeded):
		lg.Warn("max depth exceeded")
		return ErrMaxDepthExceeded
	case errors.Is(err, storage.ErrForbidden):
		lg.Warn("forbidden")
		return ErrForbidden
	case errors.Is(err, storage.ErrConflict):
		lg.Error("serialization conflict, retries exhausted", "call", call, "err", err)
		return ErrConflict
	case errors.Is(err, storage.ErrUnavailable):
		lg.Error("storage unavailable, retries exhausted", "call", call, "err", err)
		return ErrUnavailable
	default:
		lg.Error("storage error", "call", call, "err", err)
		return ErrInternal
	}
}

// notify публикует событие изменения строк. Сбой публикации логируется
// и не влияет на результат уже зафиксированной мутации.
func (s *Service) notify(ctx context.Context, key string, event any) {
	if err := s.notifier.Publish(ctx, key, event); err != nil {
		log.From(ctx).Warn("event publish failed", "key", key, "err", err)
	}
}

// withRetry повторяет op при повторяемых ошибках хранилища
// (ErrConflict/ErrUnavailable) до cfg.Retry.Attempts раз с линейным
// backoff. Детерминированные ошибки возвращаются сразу.
func (s *Service) withRetry(ctx context.Context, op func() error) error {
	attempts := s.cfg.Retry.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.Retry.Backoff * time.Duration(attempt)):
			}
		}

		err = op()
		if err == nil {
			return nil
		}

		if !errors.Is(err, storage.ErrConflict) && !errors.Is(err, storage.ErrUnavailable) {
			return err
		}
	}

	return err
}
