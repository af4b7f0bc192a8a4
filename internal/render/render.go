// Package render turns lesson content items into playback widgets.
//
// Dispatch is closed over models.ContentKind. Items of any other kind are
// skipped by RenderAll and reported with a warning log, so a bad record
// degrades the lesson instead of failing it.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/terra-clan/catalogue-browser/internal/models"
)

// ErrUnknownKind is returned by Render for content kinds it has no player for
var ErrUnknownKind = errors.New("unknown content kind")

// Player names the playback capability a widget needs
type Player string

const (
	PlayerText  Player = "text"
	PlayerVideo Player = "video"
	PlayerAudio Player = "audio"
	PlayerEmbed Player = "embed"
)

const (
	EmbedWidth  = 560
	EmbedHeight = 315
	EmbedAllow  = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
	EmbedTitle  = "YouTube video player"
)

// Widget is a rendered content item
type Widget struct {
	Player          Player `json:"player"`
	Text            string `json:"text,omitempty"`
	Src             string `json:"src,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	Allow           string `json:"allow,omitempty"`
	AllowFullScreen bool   `json:"allowFullScreen,omitempty"`
}

var widgetTemplates = template.Must(template.New("widgets").Parse(`
{{define "text"}}<p class="text-content">{{.Text}}</p>{{end}}
{{define "video"}}<video src="{{.Src}}" controls></video>{{end}}
{{define "audio"}}<audio src="{{.Src}}" controls></audio>{{end}}
{{define "embed"}}<div class="youtube-container"><iframe width="{{.Width}}" height="{{.Height}}" src="{{.Src}}" title="` + EmbedTitle + `" frameborder="0" allow="{{.Allow}}"{{if .AllowFullScreen}} allowfullscreen{{end}}></iframe></div>{{end}}
`))

// HTML renders the widget as an HTML fragment
func (w Widget) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := widgetTemplates.ExecuteTemplate(&buf, string(w.Player), w); err != nil {
		return "", fmt.Errorf("failed to render %s widget: %w", w.Player, err)
	}
	return template.HTML(buf.String()), nil
}

// Render produces the widget for a single content item
func Render(item models.ContentItem) (Widget, error) {
	switch item.Kind {
	case models.KindText:
		return Widget{Player: PlayerText, Text: item.Payload}, nil
	case models.KindVideo:
		return Widget{Player: PlayerVideo, Src: item.Payload}, nil
	case models.KindAudio, models.KindPodcast:
		return Widget{Player: PlayerAudio, Src: item.Payload}, nil
	case models.KindYouTube, models.KindYouTubeEmbed:
		return Widget{
			Player:          PlayerEmbed,
			Src:             EmbedURL(item.Payload),
			Width:           EmbedWidth,
			Height:          EmbedHeight,
			Allow:           EmbedAllow,
			AllowFullScreen: true,
		}, nil
	default:
		return Widget{}, fmt.Errorf("%w: %q", ErrUnknownKind, item.Kind)
	}
}

// RenderAll renders items in order, skipping unknown kinds
func RenderAll(items []models.ContentItem) []Widget {
	widgets := make([]Widget, 0, len(items))
	for i, item := range items {
		w, err := Render(item)
		if err != nil {
			slog.Warn("skipping content item", "index", i, "kind", item.Kind, "error", err)
			continue
		}
		widgets = append(widgets, w)
	}
	return widgets
}

// EmbedURL rewrites a YouTube watch URL into its embeddable-player form.
// Only the first "watch?v=" is replaced; URLs without one pass through.
func EmbedURL(watchURL string) string {
	return strings.Replace(watchURL, "watch?v=", "embed/", 1)
}
