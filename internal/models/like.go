package models

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget — вид сущности, на которую ставится лайк.
type LikeTarget string

const (
	TargetDiscussion LikeTarget = "discussion"
	TargetReply      LikeTarget = "reply"
)

// Reaction — вид реакции. Закрытый маленький enum, по умолчанию like.
type Reaction string

const (
	ReactionLike Reaction = "like"
)

// Like — фактовая строка реакции.
// Инвариант: не более одной строки на (target, actor, reaction) —
// уникальный индекс в хранилище делает постановку лайка идемпотентной.
// Строка никогда не обновляется: только insert и delete.
type Like struct {
	ID        uuid.UUID
	TargetID  uuid.UUID
	ActorID   uuid.UUID
	Reaction  Reaction
	CreatedAt time.Time
}

// LikeState — результат Set/Clear: актуальное состояние после операции.
// Liked — лайкнул ли актор цель сейчас; LikesCount — счётчик цели.
type LikeState struct {
	TargetID   uuid.UUID
	Target     LikeTarget
	Liked      bool
	LikesCount int64
}
