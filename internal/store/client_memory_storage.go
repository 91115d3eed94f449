package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/go-state-sync/models"
)

// memoryStorage is a volatile [ClientStore]. Nothing survives the process.
type memoryStorage struct {
	mu       sync.RWMutex
	states   map[models.StateID]models.StoredState
	metadata map[models.StateID]models.SyncMetadata
}

// NewMemoryStorage returns an empty in-memory [ClientStore].
func NewMemoryStorage() ClientStore {
	return &memoryStorage{
		states:   make(map[models.StateID]models.StoredState),
		metadata: make(map[models.StateID]models.SyncMetadata),
	}
}

func (m *memoryStorage) Name() string {
	return "memory"
}

func (m *memoryStorage) Save(_ context.Context, state models.StoredState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[state.Metadata.ID] = cloneStoredState(state)
	return nil
}

func (m *memoryStorage) Load(_ context.Context, id models.StateID) (*models.StoredState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[id]
	if !ok {
		return nil, nil
	}
	state = cloneStoredState(state)
	return &state, nil
}

func (m *memoryStorage) Delete(_ context.Context, id models.StateID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.states[id]
	delete(m.states, id)
	return ok, nil
}

func (m *memoryStorage) Exists(_ context.Context, id models.StateID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.states[id]
	return ok, nil
}

func (m *memoryStorage) List(_ context.Context) ([]models.StateID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]models.StateID, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states = make(map[models.StateID]models.StoredState)
	return nil
}

func (m *memoryStorage) LoadAllMetadata(_ context.Context) (map[models.StateID]models.SyncMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[models.StateID]models.SyncMetadata, len(m.metadata))
	for id, meta := range m.metadata {
		out[id] = meta.Clone()
	}
	return out, nil
}

func (m *memoryStorage) SaveMetadata(_ context.Context, id models.StateID, meta models.SyncMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metadata[id] = meta.Clone()
	return nil
}

func (m *memoryStorage) DeleteMetadata(_ context.Context, id models.StateID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.metadata, id)
	return nil
}

func cloneStoredState(s models.StoredState) models.StoredState {
	if s.Metadata.Custom != nil {
		custom := make(map[string]string, len(s.Metadata.Custom))
		for k, v := range s.Metadata.Custom {
			custom[k] = v
		}
		s.Metadata.Custom = custom
	}
	return s
}
