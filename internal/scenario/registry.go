package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry and Coordinator.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is the authoritative view of scenario state. It wraps a Store
// with a cache of snapshots hydrated on first access.
//
// The cache lock covers map access only. It is never held across a store
// call, so commits for different scenarios proceed in parallel and the
// store's conditional write decides every race.
//
// All public methods are thread-safe.
type Registry struct {
	store   Store
	cache   map[string]Snapshot // Cached snapshots by name
	cacheMu sync.RWMutex        // Protects cache
	logger  Logger
}

// NewRegistry creates a registry over store.
func NewRegistry(store Store) *Registry {
	return &Registry{
		store:  store,
		cache:  make(map[string]Snapshot),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Get returns the current state and version of name. A scenario with no
// commits is (idle, 0); reading it does not create a store entry.
func (r *Registry) Get(ctx context.Context, name string) (State, int64, error) {
	snap, err := r.Snapshot(ctx, name)
	if err != nil {
		return "", 0, err
	}
	return snap.State, snap.Version, nil
}

// Snapshot is Get with the last commit time included.
func (r *Registry) Snapshot(ctx context.Context, name string) (Snapshot, error) {
	r.cacheMu.RLock()
	snap, ok := r.cache[name]
	r.cacheMu.RUnlock()
	if ok {
		return snap, nil
	}
	return r.Reload(ctx, name)
}

// Reload reads name from the store, bypassing and then refreshing the cache.
func (r *Registry) Reload(ctx context.Context, name string) (Snapshot, error) {
	snap, err := r.store.Load(ctx, name)
	if errors.Is(err, ErrScenarioNotFound) {
		snap = Snapshot{Name: name, State: StateIdle}
	} else if err != nil {
		return Snapshot{}, err
	}
	return r.remember(snap), nil
}

// remember caches snap unless the cache already holds a newer version, and
// returns whichever is newest.
func (r *Registry) remember(snap Snapshot) Snapshot {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	if cur, ok := r.cache[snap.Name]; ok && cur.Version > snap.Version {
		return cur
	}
	r.cache[snap.Name] = snap
	return snap
}

// Invalidate drops name from the cache.
func (r *Registry) Invalidate(name string) {
	r.cacheMu.Lock()
	delete(r.cache, name)
	r.cacheMu.Unlock()
}

// TryCommit performs one conditional write of rec as the transition
// from -> to at expectedVersion. It never retries.
//
// On a conflict the result carries the actual stored state and version, and
// the cache is updated to them.
func (r *Registry) TryCommit(ctx context.Context, name string, expectedVersion int64, from, to State, rec TransitionRecord) (CommitResult, error) {
	rec.Scenario = name
	rec.From = from
	rec.To = to

	res, err := r.store.CompareAndSwap(ctx, expectedVersion, from, rec)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			r.Invalidate(name)
		}
		return CommitResult{}, err
	}

	if res.Committed {
		r.remember(Snapshot{Name: name, State: res.State, Version: res.Version, UpdatedAt: rec.Timestamp})
		r.logger.Debug("transition committed",
			"scenario", name,
			"transition_id", rec.TransitionID,
			"from", from,
			"to", to,
			"version", res.Version,
		)
		return res, nil
	}

	// The conflict does not carry updated_at, so fetch the full row.
	if _, err := r.Reload(ctx, name); err != nil {
		r.Invalidate(name)
		r.logger.Warn("refreshing cache after conflict failed", "scenario", name, "error", err)
	}
	r.logger.Debug("commit conflict",
		"scenario", name,
		"expected_version", expectedVersion,
		"actual_state", res.State,
		"actual_version", res.Version,
	)
	return res, nil
}

// Scenario returns the snapshot and full history of name, read from the store.
// It returns ErrScenarioNotFound for a scenario with no commits.
func (r *Registry) Scenario(ctx context.Context, name string) (*Scenario, error) {
	snap, err := r.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	history, err := r.store.History(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	r.remember(snap)
	return &Scenario{Snapshot: snap, History: history}, nil
}

// History returns the committed records of name. A positive limit keeps
// the most recent entries.
func (r *Registry) History(ctx context.Context, name string, limit int) ([]TransitionRecord, error) {
	return r.store.History(ctx, name, limit)
}

// FindTransition looks up one committed record by id.
func (r *Registry) FindTransition(ctx context.Context, name, transitionID string) (TransitionRecord, error) {
	return r.store.FindTransition(ctx, name, transitionID)
}

// List returns stored scenarios matching filter, sorted by name.
func (r *Registry) List(ctx context.Context, filter ListFilter) ([]Snapshot, error) {
	return r.store.List(ctx, filter)
}

// RefreshCache reloads every stored scenario into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	snaps, err := r.store.List(ctx, ListFilter{})
	if err != nil {
		return fmt.Errorf("loading scenarios: %w", err)
	}

	r.cacheMu.Lock()
	r.cache = make(map[string]Snapshot, len(snaps))
	for _, s := range snaps {
		r.cache[s.Name] = s
	}
	r.cacheMu.Unlock()

	r.logger.Info("scenario cache refreshed", "count", len(snaps))
	return nil
}

// CachedCount returns the number of cached snapshots.
func (r *Registry) CachedCount() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}
