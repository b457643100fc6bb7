package scenario

import (
	"context"
	"sort"
	"sync"
)

type memoryEntry struct {
	snap    Snapshot
	history []TransitionRecord
	ids     map[string]int
}

// MemoryStore is a process-local Store guarded by one mutex.
// It is used by tests and by the "memory" backend.
type MemoryStore struct {
	mu        sync.Mutex
	scenarios map[string]*memoryEntry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenarios: make(map[string]*memoryEntry)}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, name string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.scenarios[name]
	if !ok {
		return Snapshot{}, ErrScenarioNotFound
	}
	return e.snap, nil
}

// CompareAndSwap implements Store.
func (m *MemoryStore) CompareAndSwap(ctx context.Context, expectedVersion int64, from State, rec TransitionRecord) (CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return CommitResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.scenarios[rec.Scenario]
	actual := Snapshot{Name: rec.Scenario, State: StateIdle}
	if ok {
		actual = e.snap
	}
	if actual.Version != expectedVersion || actual.State != from {
		return Conflict(actual.State, actual.Version), nil
	}
	if ok {
		if _, dup := e.ids[rec.TransitionID]; dup {
			return CommitResult{}, ErrDuplicateTransition
		}
	} else {
		e = &memoryEntry{ids: make(map[string]int)}
		m.scenarios[rec.Scenario] = e
	}

	rec.From = from
	rec.Version = expectedVersion + 1
	e.ids[rec.TransitionID] = len(e.history)
	e.history = append(e.history, rec)
	e.snap = Snapshot{
		Name:      rec.Scenario,
		State:     rec.To,
		Version:   rec.Version,
		UpdatedAt: rec.Timestamp,
	}
	return Committed(rec.Version, rec.To), nil
}

// History implements Store.
func (m *MemoryStore) History(ctx context.Context, name string, limit int) ([]TransitionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.scenarios[name]
	if !ok {
		return []TransitionRecord{}, nil
	}
	out := tail(e.history, limit)
	return append([]TransitionRecord(nil), out...), nil
}

// FindTransition implements Store.
func (m *MemoryStore) FindTransition(ctx context.Context, name, transitionID string) (TransitionRecord, error) {
	if err := ctx.Err(); err != nil {
		return TransitionRecord{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.scenarios[name]
	if !ok {
		return TransitionRecord{}, ErrTransitionNotFound
	}
	idx, ok := e.ids[transitionID]
	if !ok {
		return TransitionRecord{}, ErrTransitionNotFound
	}
	return e.history[idx], nil
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Snapshot, 0, len(m.scenarios))
	for _, e := range m.scenarios {
		if filter.Matches(e.snap) {
			out = append(out, e.snap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
