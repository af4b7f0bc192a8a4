package navigation

import "github.com/terra-clan/catalogue-browser/internal/models"

// Level names how deep the user has drilled into the catalogue
type Level string

const (
	LevelRoot   Level = "root"
	LevelCourse Level = "course"
	LevelModule Level = "module"
	LevelLesson Level = "lesson"
)

// State is the drill-down position. Exactly one of Root, CourseView,
// ModuleView or LessonView is active, and each carries only the
// selections valid at its depth.
type State interface {
	Level() Level
	isState()
}

// Root has nothing selected; the filtered course list is shown
type Root struct{}

// CourseView has a course selected
type CourseView struct {
	Course models.Course
}

// ModuleView has a course and one of its modules selected
type ModuleView struct {
	Course      models.Course
	ModuleIndex int
}

// LessonView has a course, module and lesson selected
type LessonView struct {
	Course      models.Course
	ModuleIndex int
	LessonIndex int
}

func (Root) Level() Level       { return LevelRoot }
func (CourseView) Level() Level { return LevelCourse }
func (ModuleView) Level() Level { return LevelModule }
func (LessonView) Level() Level { return LevelLesson }

func (Root) isState()       {}
func (CourseView) isState() {}
func (ModuleView) isState() {}
func (LessonView) isState() {}

// Module returns the selected module
func (v ModuleView) Module() models.Module {
	return v.Course.Modules[v.ModuleIndex]
}

// Module returns the selected module
func (v LessonView) Module() models.Module {
	return v.Course.Modules[v.ModuleIndex]
}

// Lesson returns the selected lesson
func (v LessonView) Lesson() models.Lesson {
	return v.Module().Lessons[v.LessonIndex]
}
