package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/internal/utils"
)

// identify resolves the session cookie into a user for every request.
//
// A valid session stores the user in the request context under
// [utils.UserCtxKey]. A missing, invalid or expired cookie leaves the request
// anonymous; routes that need a user are additionally wrapped in auth. Any
// other failure (storage, timeout) is answered right away so that an outage
// is not reported as a logged-out user.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cookies.Name())
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, cookie.Value)
		if err != nil {
			log := logger.FromRequest(r)
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Debug().Err(err).Msg("session expired")
			case errors.Is(err, service.ErrTokenIsInvalid), errors.Is(err, service.ErrUnauthenticated):
				log.Warn().Err(err).Msg("invalid session cookie")
			default:
				writeError(w, r, err, "")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// auth rejects requests that identify did not attach a user to with
// 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); !ok {
			writeError(w, r, ErrNoSessionUser, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
