package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dit-jay93/VersionManager/internal/model"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// APIError represents an error response
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.Error("encoding JSON response", "error", err)
		}
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, APIError{Error: http.StatusText(status), Message: message})
}

// respondServiceError maps service-layer sentinel errors to HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vfm.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vfm.ErrAlreadyTracked):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, vfm.ErrSourceMissing), errors.Is(err, vfm.ErrBackupMissing):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody decodes a JSON request body into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// versionNumberParam parses the {number} URL parameter.
func (s *Server) versionNumberParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "number")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		s.respondError(w, http.StatusBadRequest, "invalid version number")
		return 0, false
	}
	return n, true
}

// handleHealth returns the health status of the service
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Files

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	var (
		files []*model.TrackedFile
		err   error
	)
	switch {
	case r.URL.Query().Get("project_id") != "":
		files, err = s.registry.ListFilesByProject(r.URL.Query().Get("project_id"), includeArchived)
	case r.URL.Query().Get("tag_id") != "":
		files, err = s.registry.ListFilesByTag(r.URL.Query().Get("tag_id"))
	default:
		files, err = s.registry.ListFiles(includeArchived)
	}
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	if files == nil {
		files = []*model.TrackedFile{}
	}
	s.respondJSON(w, http.StatusOK, files)
}

type registerRequest struct {
	Path          string `json:"path"`
	CommitMessage string `json:"commit_message"`
	DisplayName   string `json:"display_name,omitempty"`
}

type registerResponse struct {
	File    *model.TrackedFile `json:"file"`
	Version *model.Version     `json:"version"`
}

// registerConflict carries the already-tracked record so clients can point
// the user at it instead of just reporting the failure.
type registerConflict struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	File    *model.TrackedFile `json:"file"`
}

func (s *Server) handleRegisterFile(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	if req.CommitMessage == "" {
		s.respondError(w, http.StatusBadRequest, "commit_message is required")
		return
	}

	file, version, err := s.registry.Register(req.Path, req.CommitMessage, req.DisplayName)
	if err != nil {
		if errors.Is(err, vfm.ErrAlreadyTracked) && file != nil {
			s.respondJSON(w, http.StatusConflict, registerConflict{
				Error:   http.StatusText(http.StatusConflict),
				Message: err.Error(),
				File:    file,
			})
			return
		}
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, registerResponse{File: file, Version: version})
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	file, err := s.registry.GetFile(chi.URLParam(r, "fileID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, file)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(chi.URLParam(r, "fileID")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleVerifyFile(w http.ResponseWriter, r *http.Request) {
	status, err := s.engine.Verify(chi.URLParam(r, "fileID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]model.FileStatus{"status": status})
}

type flagRequest struct {
	Value bool `json:"value"`
}

func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.registry.SetFavorite(chi.URLParam(r, "fileID"), req.Value); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"is_favorite": req.Value})
}

func (s *Server) handleSetArchived(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.registry.SetArchived(chi.URLParam(r, "fileID"), req.Value); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"is_archived": req.Value})
}

type renameRequest struct {
	DisplayName string `json:"display_name"`
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.DisplayName == "" {
		s.respondError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if err := s.registry.Rename(chi.URLParam(r, "fileID"), req.DisplayName); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"display_name": req.DisplayName})
}

type assignProjectRequest struct {
	ProjectID string `json:"project_id"` // empty unassigns
}

func (s *Server) handleAssignProject(w http.ResponseWriter, r *http.Request) {
	var req assignProjectRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.registry.AssignProject(chi.URLParam(r, "fileID"), req.ProjectID); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"project_id": req.ProjectID})
}

func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := s.registry.GetMetadata(chi.URLParam(r, "fileID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if meta == nil {
		s.respondError(w, http.StatusNotFound, "no metadata stored")
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

func (s *Server) handleSetMetadata(w http.ResponseWriter, r *http.Request) {
	var meta model.FileMetadata
	if !s.decodeBody(w, r, &meta) {
		return
	}
	if err := s.registry.SetMetadata(chi.URLParam(r, "fileID"), meta); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

// Versions

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.registry.ListVersions(chi.URLParam(r, "fileID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if versions == nil {
		versions = []*model.Version{}
	}
	s.respondJSON(w, http.StatusOK, versions)
}

type createVersionRequest struct {
	CommitMessage string `json:"commit_message"`
}

func (s *Server) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	var req createVersionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.CommitMessage == "" {
		s.respondError(w, http.StatusBadRequest, "commit_message is required")
		return
	}

	version, err := s.registry.CreateVersion(chi.URLParam(r, "fileID"), req.CommitMessage)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, version)
}

func (s *Server) handleRestoreVersion(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	number, ok := s.versionNumberParam(w, r)
	if !ok {
		return
	}

	if err := s.registry.RestoreVersion(fileID, number); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("restored to version %d", number),
		"version": number,
	})
}

func (s *Server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	number, ok := s.versionNumberParam(w, r)
	if !ok {
		return
	}

	state, err := s.registry.TogglePin(fileID, number)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleVerifyBackup(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	number, ok := s.versionNumberParam(w, r)
	if !ok {
		return
	}

	check, err := s.engine.VerifyBackup(fileID, number)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, check)
}

// Tags

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.registry.ListTags()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	s.respondJSON(w, http.StatusOK, tags)
}

func (s *Server) handleListFilesByTag(w http.ResponseWriter, r *http.Request) {
	files, err := s.registry.ListFilesByTag(chi.URLParam(r, "tagID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if files == nil {
		files = []*model.TrackedFile{}
	}
	s.respondJSON(w, http.StatusOK, files)
}

func (s *Server) handleListFileTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.registry.ListFileTags(chi.URLParam(r, "fileID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	s.respondJSON(w, http.StatusOK, tags)
}

type attachTagRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	var req attachTagRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	tag, err := s.registry.AttachTag(chi.URLParam(r, "fileID"), req.Name)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	err := s.registry.DetachTag(chi.URLParam(r, "fileID"), chi.URLParam(r, "tagID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"detached": true})
}

// Events

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	events, err := s.registry.ListEvents(chi.URLParam(r, "fileID"), limit)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	s.respondJSON(w, http.StatusOK, events)
}

// Projects

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.registry.ListProjects()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	s.respondJSON(w, http.StatusOK, projects)
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	project, err := s.registry.CreateProject(req.Name, req.Description, req.Color)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, project)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.registry.GetProject(chi.URLParam(r, "projectID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	project, err := s.registry.UpdateProject(chi.URLParam(r, "projectID"), req.Name, req.Description, req.Color)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.DeleteProject(chi.URLParam(r, "projectID")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Batch operations

func (s *Server) handleVerifyAll(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.VerifyAll(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}

type relinkRequest struct {
	Root         string   `json:"root"`
	UseHash      bool     `json:"use_hash,omitempty"`
	IncludeExts  []string `json:"include_exts,omitempty"`
	MaxSizeBytes int64    `json:"max_size_bytes,omitempty"`
	ModifiedDays int      `json:"modified_days,omitempty"`
}

func (s *Server) handleRelink(w http.ResponseWriter, r *http.Request) {
	var req relinkRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Root == "" {
		s.respondError(w, http.StatusBadRequest, "root is required")
		return
	}

	summary, err := s.registry.Relink(vfm.RelinkOptions{
		Root:           req.Root,
		UseHash:        req.UseHash,
		IncludeExts:    req.IncludeExts,
		MaxSizeBytes:   req.MaxSizeBytes,
		ModifiedWithin: time.Duration(req.ModifiedDays) * 24 * time.Hour,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}
