package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/service"
	apierrors "github.com/dealhunt/engagement-service/internal/transport/http/errors"
	"github.com/dealhunt/engagement-service/internal/transport/http/middleware"
)

type createDiscussionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateDiscussionRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// pathID разбирает uuid из path-параметра chi.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errInvalidArgument()
	}

	return id, nil
}

// viewerID — необязательная идентичность читателя: берём её из контекста,
// отсутствие даёт uuid.Nil (анонимный просмотр, viewer_has_liked=false).
func viewerID(r *http.Request) uuid.UUID {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		return uuid.Nil
	}

	return actor.ID
}

// CreateDiscussion — POST /discussions.
func (h *Handlers) CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req createDiscussionRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	discussion, err := h.service.CreateDiscussion(r.Context(), service.CreateDiscussionInput{
		Actor:   actor,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDiscussionResponse(models.DiscussionView{Discussion: *discussion}))
}

// DiscussionByID — GET /discussions/{id}.
func (h *Handlers) DiscussionByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	view, err := h.service.DiscussionByID(r.Context(), id, viewerID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDiscussionResponse(*view))
}

// ListDiscussions — GET /discussions?sort=&offset=&limit=.
func (h *Handlers) ListDiscussions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	in := service.ListDiscussionsInput{
		Sort: models.DiscussionSort(query.Get("sort")),
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || offset < 0 {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
		in.Offset = int32(offset)
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || limit < 0 {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
		in.Limit = int32(limit)
	}

	page, err := h.service.ListDiscussions(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDiscussionPageResponse(*page, in.Offset, in.Limit))
}

// UpdateDiscussion — PATCH /discussions/{id}.
func (h *Handlers) UpdateDiscussion(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req updateDiscussionRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	discussion, err := h.service.UpdateDiscussion(r.Context(), service.UpdateDiscussionInput{
		Actor:   actor,
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDiscussionResponse(models.DiscussionView{Discussion: *discussion}))
}

// DeleteDiscussion — DELETE /discussions/{id}.
func (h *Handlers) DeleteDiscussion(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.service.DeleteDiscussion(r.Context(), actor, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordView — POST /discussions/{id}/views.
func (h *Handlers) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.service.RecordView(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
