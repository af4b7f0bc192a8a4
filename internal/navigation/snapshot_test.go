package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	cat := testCatalog()

	steps := []func(c *Controller) error{
		func(c *Controller) error { return nil },
		func(c *Controller) error { return c.SelectCourse(1) },
		func(c *Controller) error { return c.SelectModule(0) },
		func(c *Controller) error { return c.SelectLesson(1) },
	}

	c := New(cat)
	c.SetSearchTerm("basics")
	for i, step := range steps {
		require.NoError(t, step(c), "step %d", i)

		restored, err := Restore(cat, c.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, c.State(), restored.State())
		assert.Equal(t, "basics", restored.SearchTerm())
	}
}

func TestRestoreRejectsStaleSnapshots(t *testing.T) {
	cat := testCatalog()
	missing, one, zero, nine := 42, 1, 0, 9

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"unknown course", Snapshot{CourseID: &missing}},
		{"module out of range", Snapshot{CourseID: &one, Module: &nine}},
		{"lesson out of range", Snapshot{CourseID: &one, Module: &zero, Lesson: &nine}},
		{"module without course", Snapshot{Module: &zero}},
		{"lesson without module", Snapshot{CourseID: &one, Lesson: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(cat, tt.snap)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}
