package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"files-manager/internal/apperr"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error" example:"Not found"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeError renders err with the status of its category. Anything that is
// not a known domain error is logged and reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *apperr.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeErrorMessage(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, apperr.ErrUnauthorized):
		writeErrorMessage(w, http.StatusUnauthorized, apperr.ErrUnauthorized.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, apperr.ErrNotFound.Error())
	case errors.Is(err, apperr.ErrFolderContent):
		writeErrorMessage(w, http.StatusBadRequest, apperr.ErrFolderContent.Error())
	case errors.Is(err, apperr.ErrUserExists):
		writeErrorMessage(w, http.StatusBadRequest, apperr.ErrUserExists.Error())
	default:
		s.log.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeErrorMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
