package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/catalogue-browser/internal/catalog"
	"github.com/terra-clan/catalogue-browser/internal/models"
)

func testCatalog() *catalog.Store {
	return catalog.New([]models.Course{
		{
			ID:          1,
			Title:       "Intro to Rust",
			Description: "systems basics",
			Modules: []models.Module{
				{
					Title: "Ownership",
					Lessons: []models.Lesson{
						{Title: "Moves", Topics: []string{"move"}},
						{Title: "Borrowing", Description: "references", Content: []models.ContentItem{
							{Kind: models.KindText, Payload: "hello"},
						}},
					},
				},
				{Title: "Traits"},
			},
		},
		{ID: 2, Title: "Cooking 101", Description: "knives and heat"},
	})
}

func TestInitialState(t *testing.T) {
	c := New(testCatalog())

	assert.Equal(t, Root{}, c.State())
	assert.Equal(t, "", c.SearchTerm())

	v := c.View()
	assert.Equal(t, LevelRoot, v.Level)
	require.Len(t, v.Courses, 2)
	assert.Nil(t, v.Course)
}

func TestSelectCourseThenBack(t *testing.T) {
	c := New(testCatalog())
	c.SetSearchTerm("rust")

	require.NoError(t, c.SelectCourse(1))
	assert.Equal(t, LevelCourse, c.State().Level())

	c.BackToCourses()
	assert.Equal(t, Root{}, c.State())
	assert.Equal(t, "rust", c.SearchTerm())
	assert.Nil(t, c.Snapshot().Module)
	assert.Nil(t, c.Snapshot().Lesson)
}

func TestFullDrillDownAndBackToLessons(t *testing.T) {
	c := New(testCatalog())

	require.NoError(t, c.SelectCourse(1))
	require.NoError(t, c.SelectModule(0))
	require.NoError(t, c.SelectLesson(1))

	lv, ok := c.State().(LessonView)
	require.True(t, ok)
	assert.Equal(t, "Borrowing", lv.Lesson().Title)

	require.NoError(t, c.BackToLessons())
	mv, ok := c.State().(ModuleView)
	require.True(t, ok)
	assert.Equal(t, 1, mv.Course.ID)
	assert.Equal(t, 0, mv.ModuleIndex)
}

func TestBackToModules(t *testing.T) {
	for _, depth := range []Level{LevelModule, LevelLesson} {
		t.Run(string(depth), func(t *testing.T) {
			c := New(testCatalog())
			require.NoError(t, c.SelectCourse(1))
			require.NoError(t, c.SelectModule(0))
			if depth == LevelLesson {
				require.NoError(t, c.SelectLesson(0))
			}

			require.NoError(t, c.BackToModules())
			cv, ok := c.State().(CourseView)
			require.True(t, ok)
			assert.Equal(t, 1, cv.Course.ID)
		})
	}
}

func TestBackToCoursesFromLesson(t *testing.T) {
	c := New(testCatalog())
	require.NoError(t, c.SelectCourse(1))
	require.NoError(t, c.SelectModule(0))
	require.NoError(t, c.SelectLesson(0))

	c.BackToCourses()
	assert.Equal(t, Root{}, c.State())
	assert.Equal(t, Snapshot{Term: ""}, c.Snapshot())
}

func TestInvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
		op    func(c *Controller) error
	}{
		{"select module from root", func(c *Controller) {}, func(c *Controller) error { return c.SelectModule(0) }},
		{"select lesson from root", func(c *Controller) {}, func(c *Controller) error { return c.SelectLesson(0) }},
		{"back to modules from root", func(c *Controller) {}, func(c *Controller) error { return c.BackToModules() }},
		{"back to lessons from root", func(c *Controller) {}, func(c *Controller) error { return c.BackToLessons() }},
		{"select course from course", func(c *Controller) { _ = c.SelectCourse(1) }, func(c *Controller) error { return c.SelectCourse(2) }},
		{"select lesson from course", func(c *Controller) { _ = c.SelectCourse(1) }, func(c *Controller) error { return c.SelectLesson(0) }},
		{"back to modules from course", func(c *Controller) { _ = c.SelectCourse(1) }, func(c *Controller) error { return c.BackToModules() }},
		{"back to lessons from module", func(c *Controller) {
			_ = c.SelectCourse(1)
			_ = c.SelectModule(0)
		}, func(c *Controller) error { return c.BackToLessons() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(testCatalog())
			tt.setup(c)
			before := c.Snapshot()

			err := tt.op(c)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, before, c.Snapshot())
		})
	}
}

func TestInvalidSelections(t *testing.T) {
	c := New(testCatalog())

	assert.ErrorIs(t, c.SelectCourse(99), ErrInvalidSelection)
	assert.Equal(t, Root{}, c.State())

	require.NoError(t, c.SelectCourse(1))
	assert.ErrorIs(t, c.SelectModule(5), ErrInvalidSelection)
	assert.ErrorIs(t, c.SelectModule(-1), ErrInvalidSelection)
	assert.Equal(t, LevelCourse, c.State().Level())

	require.NoError(t, c.SelectModule(1))
	// the Traits module has no lessons
	assert.ErrorIs(t, c.SelectLesson(0), ErrInvalidSelection)
	assert.Equal(t, LevelModule, c.State().Level())
}

func TestSetSearchTermKeepsPosition(t *testing.T) {
	c := New(testCatalog())
	require.NoError(t, c.SelectCourse(1))
	require.NoError(t, c.SelectModule(0))

	c.SetSearchTerm("cooking")
	assert.Equal(t, LevelModule, c.State().Level())

	c.BackToCourses()
	v := c.View()
	require.Len(t, v.Courses, 1)
	assert.Equal(t, 2, v.Courses[0].ID)
}

func TestViewPerLevel(t *testing.T) {
	c := New(testCatalog())
	require.NoError(t, c.SelectCourse(1))

	v := c.View()
	assert.Equal(t, LevelCourse, v.Level)
	assert.Equal(t, "Intro to Rust", v.Course.Title)
	assert.Equal(t, []Entry{{0, "Ownership"}, {1, "Traits"}}, v.Modules)
	assert.Empty(t, v.Courses)

	require.NoError(t, c.SelectModule(0))
	v = c.View()
	assert.Equal(t, LevelModule, v.Level)
	assert.Equal(t, &Entry{Index: 0, Title: "Ownership"}, v.Module)
	assert.Equal(t, []Entry{{0, "Moves"}, {1, "Borrowing"}}, v.Lessons)

	require.NoError(t, c.SelectLesson(1))
	v = c.View()
	assert.Equal(t, LevelLesson, v.Level)
	require.NotNil(t, v.Lesson)
	assert.Equal(t, "Borrowing", v.Lesson.Title)
	assert.Equal(t, "references", v.Lesson.Description)
	assert.Empty(t, v.Lesson.Topics)
	assert.Len(t, v.Lesson.Content, 1)
}
