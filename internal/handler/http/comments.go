package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	blogID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	comments, err := h.services.CommentService.ListComments(r.Context(), blogID)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	utils.WriteJSON(w, comments, http.StatusOK)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	user, err := sessionUser(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	blogID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	var input models.CommentInput
	if err = utils.ReadJSON(r, &input); err != nil {
		writeError(w, r, err, "")
		return
	}

	comment, err := h.services.CommentService.CreateComment(r.Context(), user, blogID, input)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, comment, http.StatusCreated)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	user, err := sessionUser(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err = h.services.CommentService.DeleteComment(r.Context(), user, id); err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgCommentDeleted}, http.StatusOK)
}
