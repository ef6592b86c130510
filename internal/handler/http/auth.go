package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		writeError(w, r, err, "")
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		writeError(w, r, err, app.MsgRegistrationFailed)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgUserRegistered}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var request models.LoginRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		writeError(w, r, err, "")
		return
	}

	h.startSession(w, r, models.Credentials{Email: request.Email, Password: request.Password})
}

func (h *Handler) externalSignIn(w http.ResponseWriter, r *http.Request) {
	var request models.ExternalSignInRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		writeError(w, r, err, "")
		return
	}

	h.startSession(w, r, models.Credentials{Assertion: request.Assertion})
}

// startSession resolves credentials, issues a session token and sets it as
// the session cookie.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, credentials models.Credentials) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err, app.MsgLoginFailed)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err, app.MsgLoginFailed)
		return
	}

	http.SetCookie(w, h.cookies.SessionCookie(r, token.SignedString, token.Lifetime()))

	log.Info().Int64("user_id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, models.LoginResponse{Message: app.MsgLoginSuccess, User: user.Summary()}, http.StatusOK)
}

// logout always succeeds. The token itself stays valid until it expires;
// only the cookie is removed.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.ClearCookie(r))
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgLogoutSuccess}, http.StatusOK)
}

// me answers with the session user or null.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	var summary *models.UserSummary
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		s := user.Summary()
		summary = &s
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}
