package adapter

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
)

// MemoryRemoteProvider keeps remote copies in a map. It assigns versions the
// same way the sync server does and can be switched offline, which makes it
// the provider of choice for tests and local demos.
type MemoryRemoteProvider struct {
	mu     sync.RWMutex
	states map[models.StateID]models.RemoteState

	available atomic.Bool
}

// NewMemoryRemoteProvider returns an empty, available provider.
func NewMemoryRemoteProvider() *MemoryRemoteProvider {
	m := &MemoryRemoteProvider{states: make(map[models.StateID]models.RemoteState)}
	m.available.Store(true)
	return m
}

// SetAvailable switches the provider on or off. While off, IsAvailable
// reports false and every other call fails with ErrUnavailable.
func (m *MemoryRemoteProvider) SetAvailable(available bool) {
	m.available.Store(available)
}

// Name implements [RemoteProvider].
func (m *MemoryRemoteProvider) Name() string {
	return "memory"
}

// IsAvailable implements [RemoteProvider].
func (m *MemoryRemoteProvider) IsAvailable(context.Context) bool {
	return m.available.Load()
}

// Fetch implements [RemoteProvider].
func (m *MemoryRemoteProvider) Fetch(_ context.Context, id models.StateID) (*models.RemoteState, error) {
	if !m.available.Load() {
		return nil, ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[id]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// Push implements [RemoteProvider]. The first push of an id creates version
// 1 and every later push increments it.
func (m *MemoryRemoteProvider) Push(_ context.Context, id models.StateID, state models.StoredState) (uint64, error) {
	if !m.available.Load() {
		return 0, ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	version := m.states[id].Version + 1
	m.states[id] = models.RemoteState{
		Data:        state.Data,
		Version:     version,
		ModifiedAt:  time.Now().UTC(),
		ContentHash: utils.ContentHash(state.Data),
	}
	return version, nil
}

// Delete implements [RemoteProvider].
func (m *MemoryRemoteProvider) Delete(_ context.Context, id models.StateID) (bool, error) {
	if !m.available.Load() {
		return false, ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.states[id]
	delete(m.states, id)
	return ok, nil
}

// List implements [RemoteProvider]. Ids are sorted.
func (m *MemoryRemoteProvider) List(context.Context) ([]models.StateID, error) {
	if !m.available.Load() {
		return nil, ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]models.StateID, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// GetVersion implements [RemoteProvider].
func (m *MemoryRemoteProvider) GetVersion(_ context.Context, id models.StateID) (uint64, bool, error) {
	if !m.available.Load() {
		return 0, false, ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[id]
	return state.Version, ok, nil
}
