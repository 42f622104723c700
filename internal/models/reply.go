package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reply — ответ в дереве обсуждения.
// Важно:
//   - ParentReplyID == uuid.Nil означает ответ верхнего уровня (Level = 0);
//   - Level = parent.Level + 1, ограничен cfg.Limits.MaxDepth;
//   - Path — материализованный путь предков: hex-представления UUID
//     (32 символа, фиксированная ширина), соединённые точкой. Лексическая
//     сортировка по Path восстанавливает дерево в depth-first порядке
//     без рекурсивных запросов;
//   - Level и Path неизменяемы после вставки;
//   - ChildRepliesCount считает только прямых детей;
//   - удаление жёсткое и каскадное: поддерево и его лайки уходят вместе.
type Reply struct {
	ID                uuid.UUID
	DiscussionID      uuid.UUID
	ParentReplyID     uuid.UUID
	AuthorID          uuid.UUID
	AuthorName        string
	Content           string
	Level             int32
	Path              string
	LikesCount        int64
	ChildRepliesCount int64
	Status            Status
	IsEdited          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReplyView — ответ вместе с состоянием лайка запрашивающего.
type ReplyView struct {
	Reply
	ViewerHasLiked bool
}

// PathSegment возвращает сегмент материализованного пути для id.
func PathSegment(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}

// ChildPath строит путь ребёнка: пустой родительский путь даёт корневой
// сегмент, иначе — родительский путь, точка, собственный сегмент.
func ChildPath(parentPath string, id uuid.UUID) string {
	if parentPath == "" {
		return PathSegment(id)
	}

	return parentPath + "." + PathSegment(id)
}
