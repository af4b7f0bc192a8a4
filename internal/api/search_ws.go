package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/catalogue-browser/internal/models"
	"github.com/terra-clan/catalogue-browser/internal/navigation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// SearchMessage is exchanged over the live search socket.
// Clients send type "search"; the server answers with "results" or "error".
type SearchMessage struct {
	Type    string                 `json:"type"`
	Term    string                 `json:"term"`
	Level   navigation.Level       `json:"level,omitempty"`
	Courses []models.CourseSummary `json:"courses"`
	Error   string                 `json:"error,omitempty"`
}

// handleSearchWS updates the session search term on every message and
// replies with the filtered course list
func (s *Server) handleSearchWS(w http.ResponseWriter, r *http.Request) {
	id := SessionIDFromContext(r.Context())

	// Upgrade writes only the headers passed here, so carry over the
	// session cookie set by the middleware
	header := http.Header{"Set-Cookie": w.Header().Values("Set-Cookie")}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	// the hijacked connection keeps the HTTP server's deadlines otherwise
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	slog.Debug("search websocket connected", "session_id", id)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			break
		}

		var msg SearchMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Debug("invalid message format", "error", err)
			if err := s.sendSearchMessage(conn, SearchMessage{Type: "error", Error: "invalid message format"}); err != nil {
				break
			}
			continue
		}
		if msg.Type != "search" {
			continue
		}

		view, err := s.sessions.Update(r.Context(), id, func(c *navigation.Controller) error {
			c.SetSearchTerm(msg.Term)
			return nil
		})
		if err != nil {
			slog.Error("failed to update search term", "error", err, "session_id", id)
			if err := s.sendSearchMessage(conn, SearchMessage{Type: "error", Error: "session unavailable"}); err != nil {
				break
			}
			continue
		}

		reply := SearchMessage{
			Type:    "results",
			Term:    view.SearchTerm,
			Level:   view.Level,
			Courses: view.Courses,
		}
		if reply.Courses == nil {
			reply.Courses = []models.CourseSummary{}
		}
		if err := s.sendSearchMessage(conn, reply); err != nil {
			break
		}
	}

	slog.Debug("search websocket disconnected", "session_id", id)
}

func (s *Server) sendSearchMessage(conn *websocket.Conn, msg SearchMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal search message", "error", err)
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send search message", "error", err)
		return err
	}
	return nil
}
