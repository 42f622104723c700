package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/models"
)

// DTO транспортного слоя: доменные структуры наружу не отдаём,
// контракт JSON фиксируем здесь.

type discussionResponse struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Status         string    `json:"status"`
	IsPinned       bool      `json:"is_pinned"`
	ViewsCount     int64     `json:"views_count"`
	LikesCount     int64     `json:"likes_count"`
	RepliesCount   int64     `json:"replies_count"`
	ViewerHasLiked bool      `json:"viewer_has_liked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

type discussionPageResponse struct {
	Items  []discussionResponse `json:"items"`
	Total  int64                `json:"total"`
	Offset int32                `json:"offset"`
	Limit  int32                `json:"limit"`
}

type replyResponse struct {
	ID                string    `json:"id"`
	DiscussionID      string    `json:"discussion_id"`
	ParentReplyID     string    `json:"parent_reply_id,omitempty"`
	AuthorID          string    `json:"author_id"`
	AuthorUsername    string    `json:"author_username"`
	Content           string    `json:"content"`
	Level             int32     `json:"level"`
	Path              string    `json:"path"`
	LikesCount        int64     `json:"likes_count"`
	ChildRepliesCount int64     `json:"child_replies_count"`
	IsEdited          bool      `json:"is_edited"`
	ViewerHasLiked    bool      `json:"viewer_has_liked"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type threadResponse struct {
	DiscussionID string          `json:"discussion_id"`
	Replies      []replyResponse `json:"replies"`
}

type likeStateResponse struct {
	TargetID   string `json:"target_id"`
	Target     string `json:"target"`
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likes_count"`
}

func toDiscussionResponse(view models.DiscussionView) discussionResponse {
	return discussionResponse{
		ID:             view.ID.String(),
		AuthorID:       view.AuthorID.String(),
		AuthorUsername: view.AuthorName,
		Title:          view.Title,
		Content:        view.Content,
		Status:         string(view.Status),
		IsPinned:       view.IsPinned,
		ViewsCount:     view.ViewsCount,
		LikesCount:     view.LikesCount,
		RepliesCount:   view.RepliesCount,
		ViewerHasLiked: view.ViewerHasLiked,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
		LastActivityAt: view.LastActivityAt,
	}
}

func toDiscussionPageResponse(page models.DiscussionPage, offset, limit int32) discussionPageResponse {
	items := make([]discussionResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toDiscussionResponse(models.DiscussionView{Discussion: item}))
	}

	return discussionPageResponse{
		Items:  items,
		Total:  page.Total,
		Offset: offset,
		Limit:  limit,
	}
}

func toReplyResponse(view models.ReplyView) replyResponse {
	resp := replyResponse{
		ID:                view.ID.String(),
		DiscussionID:      view.DiscussionID.String(),
		AuthorID:          view.AuthorID.String(),
		AuthorUsername:    view.AuthorName,
		Content:           view.Content,
		Level:             view.Level,
		Path:              view.Path,
		LikesCount:        view.LikesCount,
		ChildRepliesCount: view.ChildRepliesCount,
		IsEdited:          view.IsEdited,
		ViewerHasLiked:    view.ViewerHasLiked,
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
	}
	if view.ParentReplyID != uuid.Nil {
		resp.ParentReplyID = view.ParentReplyID.String()
	}

	return resp
}

func toThreadResponse(discussionID uuid.UUID, replies []models.ReplyView) threadResponse {
	items := make([]replyResponse, 0, len(replies))
	for _, reply := range replies {
		items = append(items, toReplyResponse(reply))
	}

	return threadResponse{
		DiscussionID: discussionID.String(),
		Replies:      items,
	}
}

func toLikeStateResponse(state models.LikeState) likeStateResponse {
	return likeStateResponse{
		TargetID:   state.TargetID.String(),
		Target:     string(state.Target),
		Liked:      state.Liked,
		LikesCount: state.LikesCount,
	}
}
