package navigation

import "github.com/terra-clan/catalogue-browser/internal/models"

// Entry is a selectable title at the module or lesson level
type Entry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// LessonDetail is everything shown for the selected lesson
type LessonDetail struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Topics      []string             `json:"topics"`
	Content     []models.ContentItem `json:"content"`
}

// View is what should currently be displayed, derived from the controller state
type View struct {
	Level      Level                  `json:"level"`
	SearchTerm string                 `json:"searchTerm"`
	Courses    []models.CourseSummary `json:"courses"`
	Course     *models.CourseSummary  `json:"course,omitempty"`
	Modules    []Entry                `json:"modules,omitempty"`
	Module     *Entry                 `json:"module,omitempty"`
	Lessons    []Entry                `json:"lessons,omitempty"`
	Lesson     *LessonDetail          `json:"lesson,omitempty"`
}

// View derives the current display. In Root the course list is
// re-filtered against the catalogue on every call.
func (c *Controller) View() View {
	v := View{Level: c.state.Level(), SearchTerm: c.term}

	switch s := c.state.(type) {
	case Root:
		courses := c.catalog.Search(c.term)
		v.Courses = make([]models.CourseSummary, 0, len(courses))
		for _, course := range courses {
			v.Courses = append(v.Courses, course.Summary())
		}

	case CourseView:
		v.Course = summaryPtr(s.Course)
		v.Modules = moduleEntries(s.Course.Modules)

	case ModuleView:
		module := s.Module()
		v.Course = summaryPtr(s.Course)
		v.Module = &Entry{Index: s.ModuleIndex, Title: module.Title}
		v.Lessons = lessonEntries(module.Lessons)

	case LessonView:
		lesson := s.Lesson()
		v.Course = summaryPtr(s.Course)
		v.Module = &Entry{Index: s.ModuleIndex, Title: s.Module().Title}
		v.Lesson = &LessonDetail{
			Title:       lesson.Title,
			Description: lesson.Description,
			Topics:      lesson.Topics,
			Content:     lesson.Content,
		}
	}

	return v
}

func summaryPtr(c models.Course) *models.CourseSummary {
	s := c.Summary()
	return &s
}

func moduleEntries(modules []models.Module) []Entry {
	entries := make([]Entry, 0, len(modules))
	for i, m := range modules {
		entries = append(entries, Entry{Index: i, Title: m.Title})
	}
	return entries
}

func lessonEntries(lessons []models.Lesson) []Entry {
	entries := make([]Entry, 0, len(lessons))
	for i, l := range lessons {
		entries = append(entries, Entry{Index: i, Title: l.Title})
	}
	return entries
}
