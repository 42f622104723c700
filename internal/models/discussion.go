// Package models содержит доменные сущности engagement-сервиса.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status — статус видимости обсуждения или ответа.
type Status string

const (
	StatusActive  Status = "active"
	StatusHidden  Status = "hidden"
	StatusDeleted Status = "deleted"
	StatusFlagged Status = "flagged"
)

// Actor — аутентифицированный инициатор мутации.
// Сервис доверяет внешнему identity-провайдеру: никакой проверки
// учётных данных здесь нет, actor_id принимается как есть.
type Actor struct {
	ID       uuid.UUID
	Username string
}

// Discussion — обсуждение (корневая сущность треда).
// Важно:
//   - AuthorName — денормализованный снимок имени на момент создания;
//   - LikesCount/RepliesCount/ViewsCount — денормализованные счётчики,
//     поддерживаются хранилищем в одной транзакции с фактовыми строками;
//   - LastActivityAt >= CreatedAt и сдвигается на каждый ответ/лайк;
//   - удаление мягкое (Status = deleted), фактовые строки не трогаются.
type Discussion struct {
	ID             uuid.UUID
	Title          string
	Content        string
	AuthorID       uuid.UUID
	AuthorName     string
	Status         Status
	IsPinned       bool
	LikesCount     int64
	RepliesCount   int64
	ViewsCount     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastActivityAt time.Time
}

// DiscussionView — обсуждение вместе с состоянием лайка запрашивающего.
type DiscussionView struct {
	Discussion
	ViewerHasLiked bool
}

// DiscussionSort — ключ сортировки списка обсуждений.
type DiscussionSort string

const (
	// SortRecent — по last_activity_at DESC.
	SortRecent DiscussionSort = "recent"
	// SortPopular — по взвешенной сумме лайков и ответов.
	SortPopular DiscussionSort = "popular"
	// SortViews — по views_count DESC.
	SortViews DiscussionSort = "views"
)

// ListParams — offset/limit-пагинация списка обсуждений.
type ListParams struct {
	Sort   DiscussionSort
	Offset int32
	Limit  int32
}

// DiscussionPage — страница выдачи списка обсуждений.
type DiscussionPage struct {
	Items []Discussion
	Total int64
}
