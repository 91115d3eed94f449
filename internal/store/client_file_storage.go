package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MKhiriev/go-state-sync/models"
)

// fileStorage is a [ClientStore] kept in a single JSON document. The whole
// document is rewritten on every change, so it suits small state sets and
// environments without cgo.
type fileStorage struct {
	path string

	mu       sync.RWMutex
	states   map[models.StateID]models.StoredState
	metadata map[models.StateID]models.SyncMetadata
}

type filePersistedState struct {
	States   map[models.StateID]models.StoredState  `json:"states"`
	Metadata map[models.StateID]models.SyncMetadata `json:"metadata,omitempty"`
}

// NewFileStorage opens the JSON document at path, starting empty when the
// file does not exist yet.
func NewFileStorage(path string) (ClientStore, error) {
	s := &fileStorage{
		path:     path,
		states:   make(map[models.StateID]models.StoredState),
		metadata: make(map[models.StateID]models.SyncMetadata),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStorage) Name() string {
	return "file"
}

func (s *fileStorage) Save(_ context.Context, state models.StoredState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.states[state.Metadata.ID]
	s.states[state.Metadata.ID] = state
	if err := s.persist(); err != nil {
		if existed {
			s.states[state.Metadata.ID] = prev
		} else {
			delete(s.states, state.Metadata.ID)
		}
		return err
	}
	return nil
}

func (s *fileStorage) Load(_ context.Context, id models.StateID) (*models.StoredState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[id]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *fileStorage) Delete(_ context.Context, id models.StateID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.states[id]
	if !ok {
		return false, nil
	}
	delete(s.states, id)
	if err := s.persist(); err != nil {
		s.states[id] = prev
		return false, err
	}
	return true, nil
}

func (s *fileStorage) Exists(_ context.Context, id models.StateID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.states[id]
	return ok, nil
}

func (s *fileStorage) List(_ context.Context) ([]models.StateID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]models.StateID, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fileStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.states
	s.states = make(map[models.StateID]models.StoredState)
	if err := s.persist(); err != nil {
		s.states = prev
		return err
	}
	return nil
}

func (s *fileStorage) LoadAllMetadata(_ context.Context) (map[models.StateID]models.SyncMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.StateID]models.SyncMetadata, len(s.metadata))
	for id, meta := range s.metadata {
		out[id] = meta.Clone()
	}
	return out, nil
}

func (s *fileStorage) SaveMetadata(_ context.Context, id models.StateID, meta models.SyncMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metadata[id] = meta.Clone()
	return s.persist()
}

func (s *fileStorage) DeleteMetadata(_ context.Context, id models.StateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.metadata[id]; !ok {
		return nil
	}
	delete(s.metadata, id)
	return s.persist()
}

func (s *fileStorage) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode local storage file: %w", ErrInvalidStoredState, err)
	}

	if st.States != nil {
		s.states = st.States
	}
	if st.Metadata != nil {
		s.metadata = st.Metadata
	}

	return nil
}

// persist writes the document through a temporary file and a rename so a
// crash never leaves a half-written file behind. Callers hold s.mu.
func (s *fileStorage) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(filePersistedState{States: s.states, Metadata: s.metadata}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}
