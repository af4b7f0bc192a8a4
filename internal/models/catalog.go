package models

// ContentKind discriminates how a lesson content item is played back
type ContentKind string

const (
	KindText    ContentKind = "text"
	KindVideo   ContentKind = "video"
	KindAudio   ContentKind = "audio"
	KindPodcast ContentKind = "podcast"
	KindYouTube ContentKind = "youtube"

	// KindYouTubeEmbed is an alternate spelling of KindYouTube
	KindYouTubeEmbed ContentKind = "youtube-embed"
)

// IsKnown returns true if the kind is one the renderer can play
func (k ContentKind) IsKnown() bool {
	switch k {
	case KindText, KindVideo, KindAudio, KindPodcast, KindYouTube, KindYouTubeEmbed:
		return true
	}
	return false
}

// Course is a top-level catalogue entry
type Course struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Modules     []Module `json:"modules" yaml:"modules"`
}

// Module is identified only by its position within the parent course
type Module struct {
	Title   string   `json:"title" yaml:"title"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

// Lesson is the deepest navigable level; its content is rendered in order
type Lesson struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Topics      []string      `json:"topics" yaml:"topics"`
	Content     []ContentItem `json:"content" yaml:"content"`
}

// ContentItem is a single piece of lesson content.
// Payload is literal text for KindText and a media locator for every other kind.
type ContentItem struct {
	Kind    ContentKind `json:"type" yaml:"type"`
	Payload string      `json:"data" yaml:"data"`
}

// CourseSummary is the list-level view of a course
type CourseSummary struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ModulesCount int    `json:"modulesCount"`
}

// Summary returns the list-level view of the course
func (c Course) Summary() CourseSummary {
	return CourseSummary{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		ModulesCount: len(c.Modules),
	}
}
