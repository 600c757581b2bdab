package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"files-manager/internal/auth"

	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Email    string `json:"email" example:"bob@dylan.com"`
	Password string `json:"password" example:"toto1234!"`
}

type UserResponse struct {
	ID    int64  `json:"id" example:"1"`
	Email string `json:"email" example:"bob@dylan.com"`
}

// CreateUserHandler godoc
// @Summary      Register a user
// @Description  Creates an account. The password is stored as a one-way hash.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      CreateUserRequest  true  "Credentials"
// @Success      201   {object}  UserResponse
// @Failure      400   {object}  ErrorResponse "Missing email, Missing password or Already exist"
// @Failure      500   {object}  ErrorResponse
// @Router       /users [post]
func (s *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Missing email")
		return
	}
	if req.Password == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Missing password")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info("User registered", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Email: user.Email})
}

// GetMeHandler godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Param        X-Token  header    string  true  "Session token"
// @Success      200      {object}  UserResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /users/me [get]
func (s *Server) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := s.sessions.Resolve(r.Context(), r.Header.Get(TokenHeader))
	if err != nil {
		s.unauthorized(w, err)
		return
	}

	user, err := s.store.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		s.unauthorized(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{ID: user.ID, Email: user.Email})
}
