package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

type errorStatus struct {
	err     error
	status  int
	message string
}

// errorStatusMap is checked in order; the first sentinel found in the error
// chain decides the response. Anything unmatched is a 500.
var errorStatusMap = []errorStatus{
	{service.ErrTimeout, http.StatusServiceUnavailable, app.MsgServiceUnavailable},

	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{utils.ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrInvalidID, http.StatusBadRequest, app.MsgInvalidID},
	{ErrInvalidPagination, http.StatusBadRequest, app.MsgInvalidPagination},
	{service.ErrEmailAlreadyRegistered, http.StatusBadRequest, app.MsgEmailAlreadyRegistered},
	{service.ErrUsernameTaken, http.StatusBadRequest, app.MsgUsernameTaken},
	{service.ErrUserAlreadyExists, http.StatusBadRequest, app.MsgRegistrationFailed},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrUnauthenticated, http.StatusUnauthorized, app.MsgUnauthenticated},
	{service.ErrTokenIsInvalid, http.StatusUnauthorized, app.MsgUnauthenticated},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgUnauthenticated},
	{ErrNoSessionUser, http.StatusUnauthorized, app.MsgUnauthenticated},

	{service.ErrUnauthorizedAccess, http.StatusForbidden, app.MsgForbidden},

	{service.ErrBlogNotFound, http.StatusNotFound, app.MsgBlogNotFound},
	{service.ErrCommentNotFound, http.StatusNotFound, app.MsgCommentNotFound},
}

func statusFromError(err error) (int, string) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with {"error": message}. A validation
// failure carries its own field message; a 500 uses fallback when given so
// that internal detail never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromRequest(r)

	status, message := statusFromError(err)

	var fieldErr *validators.FieldError
	if status == http.StatusBadRequest && errors.As(err, &fieldErr) {
		message = fieldErr.Message
	}

	if status == http.StatusInternalServerError {
		if fallback != "" {
			message = fallback
		}
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
