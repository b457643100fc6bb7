package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps scenarios in Redis under
//
//	{prefix}/scenario/{name}/state
//	{prefix}/scenario/{name}/version
//	{prefix}/scenario/{name}/updated_at
//	{prefix}/scenario/{name}/history/{transition_id}   JSON record
//	{prefix}/scenario/{name}/history                  ZSET of ids, score = version
//	{prefix}/scenarios                                SET of names
//
// Commits use WATCH on the state and version keys with a MULTI/EXEC body.
type RedisStore struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces every key. The default is no prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) scenarioKey(name, suffix string) string {
	return s.prefix + "/scenario/" + name + "/" + suffix
}

func (s *RedisStore) stateKey(name string) string     { return s.scenarioKey(name, "state") }
func (s *RedisStore) versionKey(name string) string   { return s.scenarioKey(name, "version") }
func (s *RedisStore) updatedKey(name string) string   { return s.scenarioKey(name, "updated_at") }
func (s *RedisStore) historyIndex(name string) string { return s.scenarioKey(name, "history") }
func (s *RedisStore) namesKey() string                { return s.prefix + "/scenarios" }

func (s *RedisStore) recordKey(name, id string) string {
	return s.scenarioKey(name, "history/"+id)
}

type mgetter interface {
	MGet(ctx context.Context, keys ...string) *backend.SliceCmd
}

// readSnapshot fetches state, version and updated_at in one round trip.
// A missing scenario is reported as idle at version 0 with found=false.
func (s *RedisStore) readSnapshot(ctx context.Context, c mgetter, name string) (snap Snapshot, found bool, err error) {
	vals, err := c.MGet(ctx, s.stateKey(name), s.versionKey(name), s.updatedKey(name)).Result()
	if err != nil {
		return Snapshot{}, false, err
	}
	snap = Snapshot{Name: name, State: StateIdle}
	if vals[0] == nil {
		return snap, false, nil
	}

	state, _ := vals[0].(string)
	snap.State = State(state)
	if v, ok := vals[1].(string); ok {
		snap.Version, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("parsing version %q: %w", v, err)
		}
	}
	if v, ok := vals[2].(string); ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("parsing updated_at %q: %w", v, err)
		}
		snap.UpdatedAt = time.UnixMilli(ms).UTC()
	}
	return snap, true, nil
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, name string) (Snapshot, error) {
	snap, found, err := s.readSnapshot(ctx, s.client, name)
	if err != nil {
		return Snapshot{}, storeError("loading scenario", err)
	}
	if !found {
		return Snapshot{}, ErrScenarioNotFound
	}
	return snap, nil
}

// CompareAndSwap implements Store.
func (s *RedisStore) CompareAndSwap(ctx context.Context, expectedVersion int64, from State, rec TransitionRecord) (CommitResult, error) {
	name := rec.Scenario
	rec.From = from
	rec.Version = expectedVersion + 1
	payload, err := json.Marshal(rec)
	if err != nil {
		return CommitResult{}, fmt.Errorf("encoding transition: %w", err)
	}

	var result CommitResult
	txf := func(tx *backend.Tx) error {
		cur, _, err := s.readSnapshot(ctx, tx, name)
		if err != nil {
			return err
		}
		if cur.Version != expectedVersion || cur.State != from {
			result = Conflict(cur.State, cur.Version)
			return nil
		}

		exists, err := tx.Exists(ctx, s.recordKey(name, rec.TransitionID)).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateTransition, rec.TransitionID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, s.stateKey(name), string(rec.To), 0)
			pipe.Set(ctx, s.versionKey(name), rec.Version, 0)
			pipe.Set(ctx, s.updatedKey(name), rec.Timestamp.UnixMilli(), 0)
			pipe.Set(ctx, s.recordKey(name, rec.TransitionID), payload, 0)
			pipe.ZAdd(ctx, s.historyIndex(name), backend.Z{
				Score:  float64(rec.Version),
				Member: rec.TransitionID,
			})
			pipe.SAdd(ctx, s.namesKey(), name)
			return nil
		})
		if err != nil {
			return err
		}
		result = Committed(rec.Version, rec.To)
		return nil
	}

	err = s.client.Watch(ctx, txf, s.stateKey(name), s.versionKey(name))
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, ErrDuplicateTransition):
		return CommitResult{}, err
	case errors.Is(err, backend.TxFailedErr):
		// A watched key changed between the read and EXEC.
		cur, _, rerr := s.readSnapshot(ctx, s.client, name)
		if rerr != nil {
			return CommitResult{}, storeError("reading after conflict", rerr)
		}
		return Conflict(cur.State, cur.Version), nil
	default:
		return CommitResult{}, storeError("conditional write", err)
	}
}

// History implements Store.
func (s *RedisStore) History(ctx context.Context, name string, limit int) ([]TransitionRecord, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	ids, err := s.client.ZRange(ctx, s.historyIndex(name), start, -1).Result()
	if err != nil {
		return nil, storeError("reading history index", err)
	}
	if len(ids) == 0 {
		return []TransitionRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(name, id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeError("reading history", err)
	}

	records := make([]TransitionRecord, 0, len(vals))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			return nil, storeError("reading history", fmt.Errorf("record %s missing", ids[i]))
		}
		var rec TransitionRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding transition %s: %w", ids[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// FindTransition implements Store.
func (s *RedisStore) FindTransition(ctx context.Context, name, transitionID string) (TransitionRecord, error) {
	raw, err := s.client.Get(ctx, s.recordKey(name, transitionID)).Result()
	if err == backend.Nil {
		return TransitionRecord{}, ErrTransitionNotFound
	}
	if err != nil {
		return TransitionRecord{}, storeError("finding transition", err)
	}
	var rec TransitionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return TransitionRecord{}, fmt.Errorf("decoding transition %s: %w", transitionID, err)
	}
	return rec, nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context, filter ListFilter) ([]Snapshot, error) {
	names, err := s.client.SMembers(ctx, s.namesKey()).Result()
	if err != nil {
		return nil, storeError("listing scenarios", err)
	}
	sort.Strings(names)

	out := make([]Snapshot, 0, len(names))
	for _, name := range names {
		snap, found, err := s.readSnapshot(ctx, s.client, name)
		if err != nil {
			return nil, storeError("loading scenario", err)
		}
		if found && filter.Matches(snap) {
			out = append(out, snap)
		}
	}
	return out, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeError("ping", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
