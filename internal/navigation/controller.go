package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a transition is not allowed from the current level
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidSelection is returned when the selected item does not belong to the current selection
	ErrInvalidSelection = errors.New("invalid selection")
)

// Controller tracks one session's drill-down position and search term.
// It is not safe for concurrent use; callers serialise access per session.
type Controller struct {
	catalog Catalog
	state   State
	term    string
}

// New creates a controller in Root with an empty search term
func New(catalog Catalog) *Controller {
	return &Controller{
		catalog: catalog,
		state:   Root{},
	}
}

// State returns the current drill-down position
func (c *Controller) State() State {
	return c.state
}

// SearchTerm returns the current search term
func (c *Controller) SearchTerm() string {
	return c.term
}

// SetSearchTerm updates the search term without touching the drill-down position.
// The term only affects what Root displays.
func (c *Controller) SetSearchTerm(term string) {
	c.term = term
}

// SelectCourse moves from Root to CourseView
func (c *Controller) SelectCourse(id int) error {
	if _, ok := c.state.(Root); !ok {
		return transitionError("select course", c.state)
	}

	course, ok := c.catalog.Get(id)
	if !ok {
		return fmt.Errorf("%w: course %d not in catalogue", ErrInvalidSelection, id)
	}

	c.state = CourseView{Course: course}
	return nil
}

// SelectModule moves from CourseView to ModuleView.
// index addresses the selected course's modules.
func (c *Controller) SelectModule(index int) error {
	view, ok := c.state.(CourseView)
	if !ok {
		return transitionError("select module", c.state)
	}

	if index < 0 || index >= len(view.Course.Modules) {
		return fmt.Errorf("%w: module %d not in course %d", ErrInvalidSelection, index, view.Course.ID)
	}

	c.state = ModuleView{Course: view.Course, ModuleIndex: index}
	return nil
}

// SelectLesson moves from ModuleView to LessonView.
// index addresses the selected module's lessons.
func (c *Controller) SelectLesson(index int) error {
	view, ok := c.state.(ModuleView)
	if !ok {
		return transitionError("select lesson", c.state)
	}

	if index < 0 || index >= len(view.Module().Lessons) {
		return fmt.Errorf("%w: lesson %d not in module %d of course %d",
			ErrInvalidSelection, index, view.ModuleIndex, view.Course.ID)
	}

	c.state = LessonView{Course: view.Course, ModuleIndex: view.ModuleIndex, LessonIndex: index}
	return nil
}

// BackToCourses returns to Root from any level, clearing every selection
func (c *Controller) BackToCourses() {
	c.state = Root{}
}

// BackToModules returns to CourseView from ModuleView or LessonView
func (c *Controller) BackToModules() error {
	switch s := c.state.(type) {
	case ModuleView:
		c.state = CourseView{Course: s.Course}
	case LessonView:
		c.state = CourseView{Course: s.Course}
	default:
		return transitionError("back to modules", c.state)
	}
	return nil
}

// BackToLessons returns to ModuleView from LessonView
func (c *Controller) BackToLessons() error {
	s, ok := c.state.(LessonView)
	if !ok {
		return transitionError("back to lessons", c.state)
	}
	c.state = ModuleView{Course: s.Course, ModuleIndex: s.ModuleIndex}
	return nil
}

func transitionError(op string, from State) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, from.Level())
}
