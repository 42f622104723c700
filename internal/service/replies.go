package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/events"
	"github.com/dealhunt/engagement-service/internal/metrics"
	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/pkg/log"
)

// CreateReplyInput — создание ответа верхнего уровня или вложенного.
// ParentReplyID == uuid.Nil означает ответ верхнего уровня.
type CreateReplyInput struct {
	Actor         models.Actor
	DiscussionID  uuid.UUID
	ParentReplyID uuid.UUID
	Content       string
}

// UpdateReplyInput — редактирование ответа автором.
type UpdateReplyInput struct {
	Actor   models.Actor
	ID      uuid.UUID
	Content string
}

// CreateReply — бизнес-операция создания ответа.
//
// Валидация:
//   - Actor обязателен целиком;
//   - DiscussionID обязателен;
//   - Content после TrimSpace — от 1 до 5000 символов.
//
// Поведение/ошибки:
//   - ErrNotFound — обсуждение отсутствует/скрыто;
//   - ErrParentNotFound — родитель отсутствует или из другого обсуждения;
//   - ErrMaxDepthExceeded — глубина за пределом; не повторяется;
//   - ErrConflict/ErrUnavailable — после исчерпания повторов.
func (s *Service) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	const op = "service/replies/CreateReply"

	lg := log.From(ctx).With(
		"op", op,
		"actor_id", in.Actor.ID.String(),
		"discussion_id", in.DiscussionID.String(),
	)

	if err := validateActor(in.Actor); err != nil {
		lg.Warn("invalid argument: bad actor")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.DiscussionID == uuid.Nil {
		lg.Warn("invalid argument: empty discussion_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Content = strings.TrimSpace(in.Content)
	if n := utf8.RuneCountInString(in.Content); n < replyContentMinLen || n > replyContentMaxLen {
		lg.Warn("invalid argument: content length", "len", utf8.RuneCountInString(in.Content))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var result *models.Reply
	err := s.withRetry(ctx, func() error {
		var err error
		result, err = s.storage.CreateReply(ctx, models.Reply{
			DiscussionID:  in.DiscussionID,
			ParentReplyID: in.ParentReplyID,
			AuthorID:      in.Actor.ID,
			AuthorName:    in.Actor.Username,
			Content:       in.Content,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "CreateReply", err))
	}

	metrics.EngagementEvents.WithLabelValues("reply_created").Inc()
	s.notify(ctx, events.KeyReplyCreated, events.ReplyEvent{
		ReplyID:      result.ID,
		DiscussionID: result.DiscussionID,
		ActorID:      in.Actor.ID,
		OccurredAt:   time.Now().UTC(),
	})

	return result, nil
}

// UpdateReply — редактирование content автором; ставит is_edited.
func (s *Service) UpdateReply(ctx context.Context, in UpdateReplyInput) (*models.Reply, error) {
	const op = "service/replies/UpdateReply"

	lg := log.From(ctx).With("op", op, "actor_id", in.Actor.ID.String(), "id", in.ID.String())

	if err := validateActor(in.Actor); err != nil {
		lg.Warn("invalid argument: bad actor")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.ID == uuid.Nil {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Content = strings.TrimSpace(in.Content)
	if n := utf8.RuneCountInString(in.Content); n < replyContentMinLen || n > replyContentMaxLen {
		lg.Warn("invalid argument: content length")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var result *models.Reply
	err := s.withRetry(ctx, func() error {
		var err error
		result, err = s.storage.UpdateReply(ctx, in.Actor.ID, in.ID, in.Content)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "UpdateReply", err))
	}

	s.notify(ctx, events.KeyReplyUpdated, events.ReplyEvent{
		ReplyID:      result.ID,
		DiscussionID: result.DiscussionID,
		ActorID:      in.Actor.ID,
		OccurredAt:   time.Now().UTC(),
	})

	return result, nil
}

// DeleteReply — жёсткое каскадное удаление поддерева автором корня поддерева.
func (s *Service) DeleteReply(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	const op = "service/replies/DeleteReply"

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
		return s.storage.DeleteReply(ctx, actor.ID, id)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "DeleteReply", err))
	}

	metrics.EngagementEvents.WithLabelValues("reply_deleted").Inc()
	s.notify(ctx, events.KeyReplyDeleted, events.ReplyEvent{
		ReplyID:    id,
		ActorID:    actor.ID,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// Thread — все видимые ответы обсуждения в depth-first порядке
// (единый скан, отсортированный по материализованному пути).
// viewerID может быть uuid.Nil.
func (s *Service) Thread(ctx context.Context, discussionID, viewerID uuid.UUID) ([]models.ReplyView, error) {
	const op = "service/replies/Thread"

	lg := log.From(ctx).With("op", op, "discussion_id", discussionID.String())

	if discussionID == uuid.Nil {
		lg.Warn("invalid argument: empty discussion_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	items, err := s.storage.Thread(ctx, discussionID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(lg, "Thread", err))
	}

	return items, nil
}
