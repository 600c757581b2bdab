package api

import (
	"errors"
	"net/http"

	"files-manager/internal/apperr"

	"go.uber.org/zap"
)

type TokenResponse struct {
	Token string `json:"token" example:"155342df-2399-41da-9e8c-458b6ac52a0c"`
}

// unauthorized answers 401 whatever went wrong. Failures other than a plain
// authentication failure are logged first.
func (s *Server) unauthorized(w http.ResponseWriter, err error) {
	if err != nil && !errors.Is(err, apperr.ErrUnauthorized) {
		s.log.Error("Authentication failed", zap.Error(err))
	}
	writeErrorMessage(w, http.StatusUnauthorized, apperr.ErrUnauthorized.Error())
}

// ConnectHandler godoc
// @Summary      Sign in
// @Description  Exchanges Basic credentials for a session token valid for 24 hours.
// @Tags         auth
// @Produce      json
// @Param        Authorization  header    string  true  "Basic base64(email:password)"
// @Success      200            {object}  TokenResponse
// @Failure      401            {object}  ErrorResponse
// @Router       /connect [get]
func (s *Server) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.verifier.Verify(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		s.unauthorized(w, err)
		return
	}

	token, err := s.sessions.Issue(r.Context(), user.ID)
	if err != nil {
		s.unauthorized(w, err)
		return
	}

	s.log.Info("Session opened", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// DisconnectHandler godoc
// @Summary      Sign out
// @Description  Revokes the session token and closes websockets opened with it. A token can be revoked once.
// @Tags         auth
// @Param        X-Token  header  string  true  "Session token"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /disconnect [get]
func (s *Server) DisconnectHandler(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(TokenHeader)

	userID, err := s.sessions.Resolve(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.sessions.Revoke(r.Context(), token); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.wsHub.CloseSession(userID, token)

	w.WriteHeader(http.StatusNoContent)
}
