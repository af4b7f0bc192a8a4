package api

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/catalogue-browser/internal/navigation"
	"github.com/terra-clan/catalogue-browser/internal/render"
)

//go:embed web/page.html
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/page.html"))

type pageData struct {
	View    navigation.View
	Widgets []template.HTML
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := SessionIDFromContext(r.Context())

	fn := func(*navigation.Controller) error { return nil }
	if r.URL.Query().Has("q") {
		term := r.URL.Query().Get("q")
		fn = func(c *navigation.Controller) error {
			c.SetSearchTerm(term)
			return nil
		}
	}

	view, err := s.sessions.Update(r.Context(), id, fn)
	if err != nil {
		status, _ := navigationStatus(err)
		slog.Error("failed to load session view", "error", err, "session_id", id)
		http.Error(w, http.StatusText(status), status)
		return
	}

	data := pageData{View: view}
	if view.Lesson != nil {
		for _, widget := range render.RenderAll(view.Lesson.Content) {
			html, err := widget.HTML()
			if err != nil {
				slog.Warn("failed to render widget", "player", widget.Player, "error", err)
				continue
			}
			data.Widgets = append(data.Widgets, html)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// pageTransition applies fn to the session and redirects back to the page
func (s *Server) pageTransition(w http.ResponseWriter, r *http.Request, fn func(*navigation.Controller) error) {
	_, err := s.sessions.Update(r.Context(), SessionIDFromContext(r.Context()), fn)
	if err != nil {
		status, _ := navigationStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to update session", "error", err)
			http.Error(w, http.StatusText(status), status)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePageSelectCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "course id must be an integer", http.StatusBadRequest)
		return
	}
	s.pageTransition(w, r, func(c *navigation.Controller) error { return c.SelectCourse(id) })
}

func (s *Server) handlePageSelectModule(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "module index must be an integer", http.StatusBadRequest)
		return
	}
	s.pageTransition(w, r, func(c *navigation.Controller) error { return c.SelectModule(index) })
}

func (s *Server) handlePageSelectLesson(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "lesson index must be an integer", http.StatusBadRequest)
		return
	}
	s.pageTransition(w, r, func(c *navigation.Controller) error { return c.SelectLesson(index) })
}

func (s *Server) handlePageBack(w http.ResponseWriter, r *http.Request) {
	back, ok := backTransition(chi.URLParam(r, "level"))
	if !ok {
		http.Error(w, "unknown back target", http.StatusNotFound)
		return
	}
	s.pageTransition(w, r, back)
}
