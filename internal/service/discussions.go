package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/events"
	"github.com/dealhunt/engagement-service/internal/metrics"
	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/pkg/log"
	"github.com/dealhunt/engagement-service/internal/storage"
)

// Входные структуры сервисного слоя.

// CreateDiscussionInput — создание обсуждения от имени актора.
type CreateDiscussionInput struct {
	Actor   models.Actor
	Title   string
	Content string
}

// UpdateDiscussionInput — частичное редактирование автором.
// Нулевые указатели означают «поле не менять»; хотя бы одно поле обязательно.
type UpdateDiscussionInput struct {
	Actor   models.Actor
	ID      uuid.UUID
	Title   *string
	Content *string
}

// ListDiscussionsInput — параметры списка обсуждений.
type ListDiscussionsInput struct {
	Sort   models.DiscussionSort
	Offset int32
	Limit  int32
}

// CreateDiscussion — бизнес-операция создания обсуждения.
//
// Валидация:
//   - Actor.ID обязателен (uuid.Nil -> ErrInvalidArgument), Username непуст;
//   - Title после TrimSpace — от 3 до 200 символов;
//   - Content после TrimSpace — от 10 до 10000 символов.
//
// Поведение/ошибки:
//   - ErrConflict/ErrUnavailable — после исчерпания повторов;
//   - ErrInternal — прочие ошибки стораджа/БД/контекста.
func (s *Service) CreateDiscussion(ctx context.Context, in CreateDiscussionInput) (*models.Discussion, error) {
	const op = "service/discussions/CreateDiscussion"

	lg := log.From(ctx).With("op", op, "actor_id", in.Actor.ID.String())

	if err := validateActor(in.Actor); err != nil {
		lg.Warn("invalid argument: bad actor")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in.Title = strings.TrimSpace(in.Title)
	if n := utf8.RuneCountInString(in.Title); n < titleMinLen || n > titleMaxLen {
		lg.Warn("invalid argument: title length", "len", utf8.RuneCountInString(in.Title))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Content = strings.TrimSpace(in.Content)
	if n := utf8.RuneCountInString(in.Content); n < contentMinLen || n > contentMaxLen {
		lg.Warn("invalid argument: content length", "len", utf8.RuneCountInString(in.Content))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var result *models.Discussion
	err := s.withRetry(ctx, func() error {
		var err error
		result, err = s.storage.CreateDiscussion(ctx, models.Discussion{
			Title:      in.Title,
			Content:    in.Content,
			AuthorID:   in.Actor.ID,
			AuthorName: in.Actor.Username,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "CreateDiscussion", err))
	}

	metrics.EngagementEvents.WithLabelValues("discussion_created").Inc()
	s.notify(ctx, events.KeyDiscussionCreated, events.DiscussionEvent{
		DiscussionID: result.ID,
		ActorID:      in.Actor.ID,
		OccurredAt:   time.Now().UTC(),
	})

	return result, nil
}

// UpdateDiscussion — редактирование title/content автором.
//
// Поведение/ошибки:
//   - ErrNotFound — обсуждение отсутствует/удалено;
//   - ErrForbidden — актор не автор;
//   - ErrInvalidArgument — ни одного поля или длины вне диапазона.
func (s *Service) UpdateDiscussion(ctx context.Context, in UpdateDiscussionInput) (*models.Discussion, error) {
	const op = "service/discussions/UpdateDiscussion"

	lg := log.From(ctx).With("op", op, "actor_id", in.Actor.ID.String(), "id", in.ID.String())

	if err := validateActor(in.Actor); err != nil {
		lg.Warn("invalid argument: bad actor")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.ID == uuid.Nil {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Title == nil && in.Content == nil {
		lg.Warn("invalid argument: nothing to update")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	upd := storage.DiscussionUpdate{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
			lg.Warn("invalid argument: title length")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Title = &title
	}

	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if n := utf8.RuneCountInString(content); n < contentMinLen || n > contentMaxLen {
			lg.Warn("invalid argument: content length")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Content = &content
	}

	var result *models.Discussion
	err := s.withRetry(ctx, func() error {
		var err error
		result, err = s.storage.UpdateDiscussion(ctx, in.Actor.ID, in.ID, upd)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "UpdateDiscussion", err))
	}

	s.notify(ctx, events.KeyDiscussionUpdated, events.DiscussionEvent{
		DiscussionID: result.ID,
		ActorID:      in.Actor.ID,
		OccurredAt:   time.Now().UTC(),
	})

	return result, nil
}

// DeleteDiscussion — мягкое удаление автором.
func (s *Service) DeleteDiscussion(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	const op = "service/discussions/DeleteDiscussion"

	lg := log.From(ctx).With("op", op, "actor_id", actor.ID.String(), "id", id.String())

	if err := validateActor(actor); err != nil {
		lg.Warn("invalid argument: bad actor")
		return fmt.Errorf("%s: %w", op, err)
	}

	if id == uuid.Nil {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	err := s.withRetry(ctx, func() error {
		return s.storage.DeleteDiscussion(ctx, actor.ID, id)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "DeleteDiscussion", err))
	}

	s.notify(ctx, events.KeyDiscussionDeleted, events.DiscussionEvent{
		DiscussionID: id,
		ActorID:      actor.ID,
		OccurredAt:   time.Now().UTC(),
	})

	return nil
}

// DiscussionByID — обсуждение с состоянием лайка запрашивающего.
// viewerID может быть uuid.Nil (анонимный читатель).
func (s *Service) DiscussionByID(ctx context.Context, id, viewerID uuid.UUID) (*models.DiscussionView, error) {
	const op = "service/discussions/DiscussionByID"

	lg := log.From(ctx).With("op", op, "id", id.String())

	if id == uuid.Nil {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.DiscussionByID(ctx, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "DiscussionByID", err))
	}

	return result, nil
}

// ListDiscussions — страница обсуждений по ключу сортировки.
// limit нормализуется в [1, cfg.Limits.Max], 0 -> cfg.Limits.Default.
func (s *Service) ListDiscussions(ctx context.Context, in ListDiscussionsInput) (*models.DiscussionPage, error) {
	const op = "service/discussions/ListDiscussions"

	lg := log.From(ctx).With("op", op, "sort", string(in.Sort))

	switch in.Sort {
	case models.SortRecent, models.SortPopular, models.SortViews:
	case "":
		in.Sort = models.SortRecent
	default:
		lg.Warn("invalid argument: unknown sort")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Offset < 0 {
		lg.Warn("invalid argument: negative offset")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = s.cfg.Limits.Default
	}
	if limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	page, err := s.storage.ListDiscussions(ctx, models.ListParams{
		Sort:   in.Sort,
		Offset: in.Offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "ListDiscussions", err))
	}

	return page, nil
}

// RecordView — best-effort инкремент счётчика просмотров.
// Неизвестное обсуждение — ErrNotFound; прочие сбои проглатываются
// с логированием: метрика приблизительная, запрос клиента важнее.
func (s *Service) RecordView(ctx context.Context, id uuid.UUID) error {
	const op = "service/discussions/RecordView"

	lg := log.From(ctx).With("op", op, "id", id.String())

	if id == uuid.Nil {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.RecordView(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("discussion not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Warn("view increment dropped", "err", err)
		return nil
	}

	return nil
}

// validateActor проверяет, что идентичность пришла от identity-провайдера целиком.
func validateActor(a models.Actor) error {
	if a.ID == uuid.Nil {
		return ErrInvalidArgument
	}

	if strings.TrimSpace(a.Username) == "" {
		return ErrInvalidArgument
	}

	return nil
}
