// events — издатель событий изменения строк engagement-хранилища.
//
// Сервис не определяет транспорт до потребителя: события публикуются в
// topic-обменник после успешного коммита транзакции, а фронтовая сторона
// подписывается на них, чтобы обновлять своё представление. Публикация
// best-effort: её сбой не откатывает уже зафиксированную мутацию.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Маршрутные ключи событий.
const (
	KeyDiscussionCreated = "discussion.created"
	KeyDiscussionUpdated = "discussion.updated"
	KeyDiscussionDeleted = "discussion.deleted"
	KeyReplyCreated      = "reply.created"
	KeyReplyUpdated      = "reply.updated"
	KeyReplyDeleted      = "reply.deleted"
	KeyLikeSet           = "like.set"
	KeyLikeCleared       = "like.cleared"
)

// Publisher публикует событие с маршрутным ключом key.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// NoopPublisher — заглушка для окружений без брокера.
type NoopPublisher struct{}

func NewNoop() Publisher { return NoopPublisher{} }

func (NoopPublisher) Publish(_ context.Context, _ string, _ any) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }

// DiscussionEvent — событие по строке обсуждения.
type DiscussionEvent struct {
	DiscussionID uuid.UUID `json:"discussion_id"`
	ActorID      uuid.UUID `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ReplyEvent — событие по строке ответа.
type ReplyEvent struct {
	ReplyID      uuid.UUID `json:"reply_id"`
	DiscussionID uuid.UUID `json:"discussion_id"`
	ActorID      uuid.UUID `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// LikeEvent — событие по строке лайка.
type LikeEvent struct {
	TargetID   uuid.UUID `json:"target_id"`
	TargetKind string    `json:"target_kind"`
	ActorID    uuid.UUID `json:"actor_id"`
	LikesCount int64     `json:"likes_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
