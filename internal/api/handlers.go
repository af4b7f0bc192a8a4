package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/catalogue-browser/internal/models"
	"github.com/terra-clan/catalogue-browser/internal/navigation"
	"github.com/terra-clan/catalogue-browser/internal/render"
	"github.com/terra-clan/catalogue-browser/internal/session"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// navigationStatus maps a session or navigation error to an HTTP status and code
func navigationStatus(err error) (int, string) {
	switch {
	case errors.Is(err, navigation.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, navigation.ErrInvalidSelection):
		return http.StatusUnprocessableEntity, "invalid_selection"
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func respondNavigationError(w http.ResponseWriter, err error) {
	status, code := navigationStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("session update failed", "error", err)
		respondError(w, status, code, "failed to update session")
		return
	}
	respondError(w, status, code, err.Error())
}

// sessionView is a navigation view plus the rendered widgets of the current lesson
type sessionView struct {
	navigation.View
	Widgets []render.Widget `json:"widgets,omitempty"`
}

func newSessionView(v navigation.View) sessionView {
	sv := sessionView{View: v}
	if v.Lesson != nil {
		sv.Widgets = render.RenderAll(v.Lesson.Content)
	}
	return sv
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Store().Ping(r.Context()); err != nil {
		slog.Warn("session store not ready", "error", err)
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"courses": s.catalog.Len(),
	})
}

// Catalogue handlers

func (s *Server) handleSearchCourses(w http.ResponseWriter, r *http.Request) {
	courses := s.catalog.Search(r.URL.Query().Get("q"))

	summaries := make([]models.CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, c.Summary())
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"courses": summaries,
		"total":   len(summaries),
	})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "course id must be an integer")
		return
	}

	course, ok := s.catalog.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "course not found")
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// Session handlers

type searchRequest struct {
	Term string `json:"term"`
}

type selectRequest struct {
	ID    *int `json:"id,omitempty"`
	Index *int `json:"index,omitempty"`
}

type backRequest struct {
	To string `json:"to"`
}

func (s *Server) updateSession(w http.ResponseWriter, r *http.Request, fn func(*navigation.Controller) error) {
	view, err := s.sessions.Update(r.Context(), SessionIDFromContext(r.Context()), fn)
	if err != nil {
		respondNavigationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSessionView(view))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.updateSession(w, r, func(*navigation.Controller) error { return nil })
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(r.Context(), SessionIDFromContext(r.Context())); err != nil {
		slog.Error("failed to close session", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to close session")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "session closed",
	})
}

func (s *Server) handleSessionSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s.updateSession(w, r, func(c *navigation.Controller) error {
		c.SetSearchTerm(req.Term)
		return nil
	})
}

func (s *Server) handleSessionSelectCourse(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ID == nil {
		respondError(w, http.StatusBadRequest, "validation_error", "id is required")
		return
	}

	s.updateSession(w, r, func(c *navigation.Controller) error {
		return c.SelectCourse(*req.ID)
	})
}

func (s *Server) handleSessionSelectModule(w http.ResponseWriter, r *http.Request) {
	index, ok := decodeIndex(w, r)
	if !ok {
		return
	}
	s.updateSession(w, r, func(c *navigation.Controller) error {
		return c.SelectModule(index)
	})
}

func (s *Server) handleSessionSelectLesson(w http.ResponseWriter, r *http.Request) {
	index, ok := decodeIndex(w, r)
	if !ok {
		return
	}
	s.updateSession(w, r, func(c *navigation.Controller) error {
		return c.SelectLesson(index)
	})
}

func (s *Server) handleSessionBack(w http.ResponseWriter, r *http.Request) {
	var req backRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	back, ok := backTransition(req.To)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "to must be one of courses, modules, lessons")
		return
	}
	s.updateSession(w, r, back)
}

func decodeIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return 0, false
	}
	if req.Index == nil {
		respondError(w, http.StatusBadRequest, "validation_error", "index is required")
		return 0, false
	}
	return *req.Index, true
}

// backTransition resolves a back target name to its transition
func backTransition(to string) (func(*navigation.Controller) error, bool) {
	switch to {
	case "courses":
		return func(c *navigation.Controller) error {
			c.BackToCourses()
			return nil
		}, true
	case "modules":
		return (*navigation.Controller).BackToModules, true
	case "lessons":
		return (*navigation.Controller).BackToLessons, true
	}
	return nil, false
}
