package handlers

import (
	"net/http"

	"github.com/dealhunt/engagement-service/internal/models"
	"github.com/dealhunt/engagement-service/internal/service"
	apierrors "github.com/dealhunt/engagement-service/internal/transport/http/errors"
)

// SetDiscussionLike — PUT /discussions/{id}/likes. Идемпотентно.
func (h *Handlers) SetDiscussionLike(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, models.TargetDiscussion)
}

// ClearDiscussionLike — DELETE /discussions/{id}/likes. Идемпотентно.
func (h *Handlers) ClearDiscussionLike(w http.ResponseWriter, r *http.Request) {
	h.clearLike(w, r, models.TargetDiscussion)
}

// SetReplyLike — PUT /replies/{id}/likes. Идемпотентно.
func (h *Handlers) SetReplyLike(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, models.TargetReply)
}

// ClearReplyLike — DELETE /replies/{id}/likes. Идемпотентно.
func (h *Handlers) ClearReplyLike(w http.ResponseWriter, r *http.Request) {
	h.clearLike(w, r, models.TargetReply)
}

func (h *Handlers) setLike(w http.ResponseWriter, r *http.Request, target models.LikeTarget) {
	in, ok := h.likeInput(w, r, target)
	if !ok {
		return
	}

	state, err := h.service.SetLike(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLikeStateResponse(*state))
}

func (h *Handlers) clearLike(w http.ResponseWriter, r *http.Request, target models.LikeTarget) {
	in, ok := h.likeInput(w, r, target)
	if !ok {
		return
	}

	state, err := h.service.ClearLike(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLikeStateResponse(*state))
}

func (h *Handlers) likeInput(w http.ResponseWriter, r *http.Request, target models.LikeTarget) (service.LikeInput, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return service.LikeInput{}, false
	}

	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return service.LikeInput{}, false
	}

	return service.LikeInput{
		Actor:    actor,
		Target:   target,
		TargetID: id,
		Reaction: models.Reaction(r.URL.Query().Get("reaction")),
	}, true
}
