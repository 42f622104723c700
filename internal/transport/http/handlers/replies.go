package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/service"
	apierrors "github.com/dealhunt/engagement-service/internal/transport/http/errors"
)

type createReplyRequest struct {
	ParentReplyID string `json:"parent_reply_id,omitempty"`
	Content       string `json:"content"`
}

type updateReplyRequest struct {
	Content string `json:"content"`
}

// CreateReply — POST /discussions/{id}/replies.
func (h *Handlers) CreateReply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	discussionID, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req createReplyRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	parentID := uuid.Nil
	if req.ParentReplyID != "" {
		parentID, err = uuid.Parse(req.ParentReplyID)
		if err != nil {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
	}

	reply, err := h.service.CreateReply(r.Context(), service.CreateReplyInput{
		Actor:         actor,
		DiscussionID:  discussionID,
		ParentReplyID: parentID,
		Content:       req.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReplyResponse(models.ReplyView{Reply: *reply}))
}

// UpdateReply — PATCH /replies/{id}.
func (h *Handlers) UpdateReply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req updateReplyRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	reply, err := h.service.UpdateReply(r.Context(), service.UpdateReplyInput{
		Actor:   actor,
		ID:      id,
		Content: req.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReplyResponse(models.ReplyView{Reply: *reply}))
}

// DeleteReply — DELETE /replies/{id}. Удаляет всё поддерево ответа.
func (h *Handlers) DeleteReply(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.service.DeleteReply(r.Context(), actor, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Thread — GET /discussions/{id}/thread.
// Ответы отдаются в порядке обхода дерева в глубину.
func (h *Handlers) Thread(w http.ResponseWriter, r *http.Request) {
	discussionID, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	replies, err := h.service.Thread(r.Context(), discussionID, viewerID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toThreadResponse(discussionID, replies))
}
