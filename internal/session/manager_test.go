package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/catalogue-browser/internal/catalog"
	"github.com/terra-clan/catalogue-browser/internal/models"
	"github.com/terra-clan/catalogue-browser/internal/navigation"
)

func testCatalog() *catalog.Store {
	return catalog.New([]models.Course{
		{ID: 1, Title: "Intro to Rust", Description: "systems basics", Modules: []models.Module{
			{Title: "Ownership", Lessons: []models.Lesson{{Title: "Borrowing"}}},
		}},
		{ID: 2, Title: "Cooking 101", Description: "knives and heat"},
	})
}

func TestManagerOpen(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(time.Hour), testCatalog())

	id, err := m.Open(ctx, "")
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	again, err := m.Open(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	fresh, err := m.Open(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.NotEqual(t, id, fresh)

	unknown, err := m.Open(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotEqual(t, id, unknown)
}

func TestManagerUpdatePersists(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(time.Hour), testCatalog())
	id, err := m.Open(ctx, "")
	require.NoError(t, err)

	_, err = m.Update(ctx, id, func(c *navigation.Controller) error {
		c.SetSearchTerm("rust")
		return c.SelectCourse(1)
	})
	require.NoError(t, err)

	view, err := m.Update(ctx, id, func(c *navigation.Controller) error { return c.SelectModule(0) })
	require.NoError(t, err)
	assert.Equal(t, navigation.LevelModule, view.Level)
	assert.Equal(t, "rust", view.SearchTerm)
}

func TestManagerUpdateFailureDoesNotSave(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(time.Hour), testCatalog())
	id, err := m.Open(ctx, "")
	require.NoError(t, err)

	view, err := m.Update(ctx, id, func(c *navigation.Controller) error {
		c.SetSearchTerm("lost")
		return c.SelectModule(0)
	})
	assert.ErrorIs(t, err, navigation.ErrInvalidTransition)
	assert.Equal(t, navigation.LevelRoot, view.Level)

	view, err = m.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", view.SearchTerm)
}

func TestManagerResetsStaleSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	m := NewManager(store, testCatalog())

	gone := 77
	require.NoError(t, store.Save(ctx, "s", navigation.Snapshot{Term: "x", CourseID: &gone}))

	view, err := m.View(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, navigation.LevelRoot, view.Level)
	assert.Equal(t, "x", view.SearchTerm)
}

func TestManagerUnknownSession(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour), testCatalog())
	_, err := m.View(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
