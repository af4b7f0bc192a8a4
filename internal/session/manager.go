package session

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/terra-clan/catalogue-browser/internal/navigation"
)

const lockStripes = 64

// Manager binds session IDs to navigation controllers.
// Each operation loads the snapshot, replays it into a controller,
// applies the change and saves the result. Operations on the same
// session are serialised.
type Manager struct {
	store   Store
	catalog navigation.Catalog
	locks   [lockStripes]sync.Mutex
}

// NewManager creates a session manager
func NewManager(store Store, catalog navigation.Catalog) *Manager {
	return &Manager{store: store, catalog: catalog}
}

// Store returns the underlying session store
func (m *Manager) Store() Store {
	return m.store
}

// Open returns the ID of a live session, creating a fresh one when id is
// empty, malformed, unknown or expired.
func (m *Manager) Open(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err == nil {
		_, err := m.store.Get(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", err
		}
	}

	newID := uuid.NewString()
	if err := m.store.Save(ctx, newID, navigation.New(m.catalog).Snapshot()); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	slog.Debug("session created", "session_id", newID)
	return newID, nil
}

// View returns the current display of a session
func (m *Manager) View(ctx context.Context, id string) (navigation.View, error) {
	return m.Update(ctx, id, func(*navigation.Controller) error { return nil })
}

// Update applies fn to the session's controller and saves the result.
// When fn fails nothing is saved and the error is returned unchanged.
func (m *Manager) Update(ctx context.Context, id string, fn func(*navigation.Controller) error) (navigation.View, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	snap, err := m.store.Get(ctx, id)
	if err != nil {
		return navigation.View{}, err
	}

	ctrl, err := navigation.Restore(m.catalog, snap)
	if err != nil {
		// the catalogue no longer has what the session pointed at
		slog.Warn("resetting stale session", "session_id", id, "error", err)
		ctrl = navigation.New(m.catalog)
		ctrl.SetSearchTerm(snap.Term)
	}

	if err := fn(ctrl); err != nil {
		return ctrl.View(), err
	}

	if err := m.store.Save(ctx, id, ctrl.Snapshot()); err != nil {
		return navigation.View{}, err
	}
	return ctrl.View(), nil
}

// Close ends a session
func (m *Manager) Close(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &m.locks[h.Sum32()%lockStripes]
}
