package api

import (
	"context"
	"net/http"
	"time"
)

const statusTimeout = 2 * time.Second

type StatusResponse struct {
	DB           bool `json:"db"`
	SessionStore bool `json:"sessionStore"`
}

type StatsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// StatusHandler godoc
// @Summary      Backing store health
// @Description  Reports whether the document store and the session store answer. Always 200.
// @Tags         app
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /status [get]
func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), statusTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, StatusResponse{
		DB:           s.store.Ping(ctx) == nil,
		SessionStore: s.sessions.Ping(ctx) == nil,
	})
}

// StatsHandler godoc
// @Summary      Record counts
// @Tags         app
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /stats [get]
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.CountUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	files, err := s.store.CountFiles(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Users: users, Files: files})
}
