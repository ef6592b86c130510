package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
	"github.com/go-chi/chi/v5"
)

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// blogQuery reads ?q=, ?limit= and ?offset= from the blog list request.
func blogQuery(r *http.Request) (models.BlogQuery, error) {
	values := r.URL.Query()
	query := models.BlogQuery{Search: values.Get("q")}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit < 1 || limit > validators.MaxPageSize {
			return models.BlogQuery{}, ErrInvalidPagination
		}
		query.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.BlogQuery{}, ErrInvalidPagination
		}
		query.Offset = offset
	}

	return query, nil
}

// sessionUser returns the user attached by identify.
func sessionUser(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, ErrNoSessionUser
	}
	return user, nil
}
