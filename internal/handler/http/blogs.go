package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	query, err := blogQuery(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	blogs, err := h.services.BlogService.ListBlogs(r.Context(), query)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if blogs == nil {
		blogs = []models.Blog{}
	}
	utils.WriteJSON(w, blogs, http.StatusOK)
}

func (h *Handler) getBlog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	blog, err := h.services.BlogService.GetBlog(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, blog, http.StatusOK)
}

func (h *Handler) createBlog(w http.ResponseWriter, r *http.Request) {
	user, err := sessionUser(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	var input models.BlogInput
	if err = utils.ReadJSON(r, &input); err != nil {
		writeError(w, r, err, "")
		return
	}

	blog, err := h.services.BlogService.CreateBlog(r.Context(), user, input)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, blog, http.StatusCreated)
}

func (h *Handler) updateBlog(w http.ResponseWriter, r *http.Request) {
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

	var update models.BlogUpdate
	if err = utils.ReadJSON(r, &update); err != nil {
		writeError(w, r, err, "")
		return
	}

	blog, err := h.services.BlogService.UpdateBlog(r.Context(), user, id, update)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, blog, http.StatusOK)
}

func (h *Handler) deleteBlog(w http.ResponseWriter, r *http.Request) {
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

	if err = h.services.BlogService.DeleteBlog(r.Context(), user, id); err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgBlogDeleted}, http.StatusOK)
}
