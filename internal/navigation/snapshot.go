package navigation

import "fmt"

// Snapshot is the serialisable form of a controller.
// Module and Lesson are positions, since modules and lessons have no IDs.
type Snapshot struct {
	Term     string `json:"term"`
	CourseID *int   `json:"course_id,omitempty"`
	Module   *int   `json:"module,omitempty"`
	Lesson   *int   `json:"lesson,omitempty"`
}

// Snapshot captures the controller state
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{Term: c.term}

	switch s := c.state.(type) {
	case CourseView:
		snap.CourseID = intPtr(s.Course.ID)
	case ModuleView:
		snap.CourseID = intPtr(s.Course.ID)
		snap.Module = intPtr(s.ModuleIndex)
	case LessonView:
		snap.CourseID = intPtr(s.Course.ID)
		snap.Module = intPtr(s.ModuleIndex)
		snap.Lesson = intPtr(s.LessonIndex)
	}

	return snap
}

// Restore rebuilds a controller from a snapshot by replaying the selections
// against catalog. A snapshot that no longer resolves is rejected.
func Restore(catalog Catalog, snap Snapshot) (*Controller, error) {
	c := New(catalog)
	c.term = snap.Term

	if snap.CourseID == nil {
		if snap.Module != nil || snap.Lesson != nil {
			return nil, fmt.Errorf("%w: module or lesson without course", ErrInvalidSelection)
		}
		return c, nil
	}
	if err := c.SelectCourse(*snap.CourseID); err != nil {
		return nil, err
	}

	if snap.Module == nil {
		if snap.Lesson != nil {
			return nil, fmt.Errorf("%w: lesson without module", ErrInvalidSelection)
		}
		return c, nil
	}
	if err := c.SelectModule(*snap.Module); err != nil {
		return nil, err
	}

	if snap.Lesson == nil {
		return c, nil
	}
	if err := c.SelectLesson(*snap.Lesson); err != nil {
		return nil, err
	}

	return c, nil
}

func intPtr(v int) *int {
	return &v
}
