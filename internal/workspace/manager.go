package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager owns every live workspace. Workspaces live in memory only and are
// swept once idle.
type Manager struct {
	notifier Notifier
	logger   zerolog.Logger

	mu         sync.RWMutex
	workspaces map[uuid.UUID]*Workspace
}

func NewManager(notifier Notifier, logger zerolog.Logger) *Manager {
	return &Manager{
		notifier:   notifier,
		logger:     logger.With().Str("component", "workspace").Logger(),
		workspaces: make(map[uuid.UUID]*Workspace),
	}
}

func (m *Manager) Create(owner, name string) *Workspace {
	w := New(owner, name, m.notifier)

	m.mu.Lock()
	m.workspaces[w.ID] = w
	m.mu.Unlock()

	m.logger.Info().Str("workspace_id", w.ID.String()).Str("owner", owner).Msg("workspace created")
	return w
}

// Get returns the workspace if it exists and belongs to owner. Another
// owner's workspace is reported as missing.
func (m *Manager) Get(id uuid.UUID, owner string) (*Workspace, error) {
	m.mu.RLock()
	w, ok := m.workspaces[id]
	m.mu.RUnlock()

	if !ok || w.Owner != owner {
		return nil, ErrNotFound
	}
	return w, nil
}

func (m *Manager) Delete(id uuid.UUID, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workspaces[id]
	if !ok || w.Owner != owner {
		return ErrNotFound
	}
	if w.busy() {
		return ErrBusy
	}
	delete(m.workspaces, id)
	m.logger.Info().Str("workspace_id", id.String()).Msg("workspace deleted")
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}

// Sweep removes workspaces idle for longer than maxIdle and returns their IDs.
func (m *Manager) Sweep(maxIdle time.Duration) []uuid.UUID {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []uuid.UUID
	for id, w := range m.workspaces {
		if w.idle(now, maxIdle) {
			delete(m.workspaces, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		m.logger.Info().Int("count", len(removed)).Msg("swept idle workspaces")
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled. onRemove, when set, is
// called for each swept workspace.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration, onRemove func(uuid.UUID)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range m.Sweep(maxIdle) {
				if onRemove != nil {
					onRemove(id)
				}
			}
		}
	}
}
