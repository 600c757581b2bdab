package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"files-manager/internal/access"
	"files-manager/internal/files"
	"files-manager/internal/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UploadFileRequest struct {
	Name     string        `json:"name" example:"myText.txt"`
	Type     models.Kind   `json:"type" example:"file" enums:"folder,file,image"`
	ParentID models.Parent `json:"parentId" swaggertype:"string" example:"0"`
	IsPublic bool          `json:"isPublic"`
	Data     string        `json:"data" example:"SGVsbG8gV2Vic3RhY2shCg=="`
}

// UploadFileHandler godoc
// @Summary      Create a file or folder
// @Description  Creates a record owned by the caller. Content is sent base64 encoded and is not accepted for folders.
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        X-Token  header    string             true  "Session token"
// @Param        file     body      UploadFileRequest  true  "File"
// @Success      201      {object}  models.File
// @Failure      400      {object}  ErrorResponse "Missing name, Missing type, Missing data, Parent not found or Parent is not a folder"
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /files [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	var req UploadFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := s.files.Create(r.Context(), userID, files.CreateParams{
		Name:     req.Name,
		Type:     req.Type,
		Parent:   req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

// GetFileHandler godoc
// @Summary      Get a record
// @Tags         files
// @Produce      json
// @Param        X-Token  header    string  true  "Session token"
// @Param        id       path      string  true  "File ID"
// @Success      200      {object}  models.File
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /files/{id} [get]
func (s *Server) GetFileHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	file, err := s.files.Get(r.Context(), access.User(userID), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// ListFilesHandler godoc
// @Summary      List records in a folder
// @Description  Returns up to 20 of the caller's records under parentId, in creation order.
// @Tags         files
// @Produce      json
// @Param        X-Token   header    string  true   "Session token"
// @Param        parentId  query     string  false  "Folder ID, 0 for the root"
// @Param        page      query     int     false  "Zero-based page"
// @Success      200       {array}   models.File
// @Failure      401       {object}  ErrorResponse
// @Router       /files [get]
func (s *Server) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	query := r.URL.Query()
	parent := models.ParentOf(query.Get("parentId"))

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}

	list, err := s.files.List(r.Context(), userID, parent, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if list == nil {
		list = []models.File{}
	}

	writeJSON(w, http.StatusOK, list)
}

// PublishFileHandler godoc
// @Summary      Make a record public
// @Tags         files
// @Produce      json
// @Param        X-Token  header    string  true  "Session token"
// @Param        id       path      string  true  "File ID"
// @Success      200      {object}  models.File
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /files/{id}/publish [put]
func (s *Server) PublishFileHandler(w http.ResponseWriter, r *http.Request) {
	s.setPublic(w, r, true)
}

// UnpublishFileHandler godoc
// @Summary      Make a record private
// @Tags         files
// @Produce      json
// @Param        X-Token  header    string  true  "Session token"
// @Param        id       path      string  true  "File ID"
// @Success      200      {object}  models.File
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /files/{id}/unpublish [put]
func (s *Server) UnpublishFileHandler(w http.ResponseWriter, r *http.Request) {
	s.setPublic(w, r, false)
}

func (s *Server) setPublic(w http.ResponseWriter, r *http.Request, isPublic bool) {
	userID, _ := GetUserIDFromContext(r.Context())

	file, err := s.files.SetPublic(r.Context(), access.User(userID), chi.URLParam(r, "id"), isPublic)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// FileDataHandler godoc
// @Summary      Download content
// @Description  Streams the content of a file, or of one of its thumbnails when size is given. Public files need no token.
// @Tags         files
// @Produce      octet-stream
// @Param        X-Token  header  string  false  "Session token"
// @Param        id       path    string  true   "File ID"
// @Param        size     query   int     false  "Thumbnail width"  Enums(500, 250, 100)
// @Success      200      {file}  binary
// @Failure      400      {object}  ErrorResponse "A folder doesn't have content or Invalid size"
// @Failure      404      {object}  ErrorResponse
// @Router       /files/{id}/data [get]
func (s *Server) FileDataHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.requester(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	content, err := s.files.Content(r.Context(), req, chi.URLParam(r, "id"), r.URL.Query().Get("size"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer content.Data.Close()

	mtype, err := mimetype.DetectReader(content.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := content.Data.Seek(0, io.SeekStart); err != nil {
		s.writeError(w, r, err)
		return
	}

	stat, err := content.Data.Stat()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mtype.String())
	s.log.Debug("Serving content", zap.String("file_id", content.File.ID), zap.String("mime", mtype.String()))
	http.ServeContent(w, r, content.File.Name, stat.ModTime(), content.Data)
}
