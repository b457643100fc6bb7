package scenario

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/scenario-state-core/internal/infrastructure/database"
)

// timeLayout stores timestamps with millisecond precision in UTC.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// SQLiteStore persists scenarios in the scenarios and scenario_transitions tables.
type SQLiteStore struct {
	db *database.DB
}

// NewSQLiteStore creates a store over a migrated database.
func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, name string) (Snapshot, error) {
	return loadSnapshot(ctx, s.db, name)
}

func loadSnapshot(ctx context.Context, q queryer, name string) (Snapshot, error) {
	row := q.QueryRowContext(ctx,
		`SELECT name, state, version, updated_at FROM scenarios WHERE name = ?`, name)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrScenarioNotFound
	}
	if err != nil {
		return Snapshot{}, storeError("loading scenario", err)
	}
	return snap, nil
}

// CompareAndSwap implements Store.
//
// Version 0 means "never committed" and is claimed with an insert that does
// nothing on conflict; later versions use a conditional update. Either way a
// zero row count means another writer got there first.
func (s *SQLiteStore) CompareAndSwap(ctx context.Context, expectedVersion int64, from State, rec TransitionRecord) (CommitResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CommitResult{}, storeError("begin", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	now := formatTime(rec.Timestamp)
	newVersion := expectedVersion + 1

	var res sql.Result
	if expectedVersion == 0 {
		if from != StateIdle {
			return s.conflict(ctx, tx, rec.Scenario)
		}
		res, err = tx.ExecContext(ctx, `
			INSERT INTO scenarios (name, state, version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(name) DO NOTHING`,
			rec.Scenario, string(rec.To), newVersion, now, now)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE scenarios SET state = ?, version = ?, updated_at = ?
			WHERE name = ? AND version = ? AND state = ?`,
			string(rec.To), newVersion, now, rec.Scenario, expectedVersion, string(from))
	}
	if err != nil {
		return CommitResult{}, storeError("conditional write", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return CommitResult{}, storeError("conditional write", err)
	}
	if n == 0 {
		return s.conflict(ctx, tx, rec.Scenario)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scenario_transitions
			(scenario, transition_id, source_component, from_state, to_state, reason, timestamp_ms, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Scenario, rec.TransitionID, rec.SourceComponent, string(from), string(rec.To),
		rec.Reason, rec.Timestamp.UnixMilli(), newVersion)
	if err != nil {
		if isUniqueConstraintError(err) {
			return CommitResult{}, fmt.Errorf("%w: %s", ErrDuplicateTransition, rec.TransitionID)
		}
		return CommitResult{}, storeError("appending history", err)
	}

	if err := tx.Commit(); err != nil {
		return CommitResult{}, storeError("commit", err)
	}
	return Committed(newVersion, rec.To), nil
}

// conflict reads the actual snapshot inside tx so the caller sees the value
// that beat it.
func (s *SQLiteStore) conflict(ctx context.Context, tx *sql.Tx, name string) (CommitResult, error) {
	snap, err := loadSnapshot(ctx, tx, name)
	if errors.Is(err, ErrScenarioNotFound) {
		return Conflict(StateIdle, 0), nil
	}
	if err != nil {
		return CommitResult{}, err
	}
	return Conflict(snap.State, snap.Version), nil
}

// History implements Store.
func (s *SQLiteStore) History(ctx context.Context, name string, limit int) ([]TransitionRecord, error) {
	query := `
		SELECT scenario, transition_id, source_component, from_state, to_state, reason, timestamp_ms, version
		FROM scenario_transitions WHERE scenario = ? ORDER BY version ASC`
	args := []any{name}
	if limit > 0 {
		// Most recent limit rows, still returned oldest first.
		query = `SELECT * FROM (
			SELECT scenario, transition_id, source_component, from_state, to_state, reason, timestamp_ms, version
			FROM scenario_transitions WHERE scenario = ? ORDER BY version DESC LIMIT ?
		) ORDER BY version ASC`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("querying history", err)
	}
	defer rows.Close()

	records := []TransitionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, storeError("scanning history", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterating history", err)
	}
	return records, nil
}

// FindTransition implements Store.
func (s *SQLiteStore) FindTransition(ctx context.Context, name, transitionID string) (TransitionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT scenario, transition_id, source_component, from_state, to_state, reason, timestamp_ms, version
		FROM scenario_transitions WHERE scenario = ? AND transition_id = ?`, name, transitionID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TransitionRecord{}, ErrTransitionNotFound
	}
	if err != nil {
		return TransitionRecord{}, storeError("finding transition", err)
	}
	return rec, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]Snapshot, error) {
	query := `SELECT name, state, version, updated_at FROM scenarios`
	var args []any
	if filter.State != "" {
		query += ` WHERE state = ?`
		args = append(args, string(filter.State))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("listing scenarios", err)
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, storeError("scanning scenario", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterating scenarios", err)
	}
	return out, nil
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		snap    Snapshot
		state   string
		updated string
	)
	if err := row.Scan(&snap.Name, &state, &snap.Version, &updated); err != nil {
		return Snapshot{}, err
	}
	snap.State = State(state)
	t, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing updated_at %q: %w", updated, err)
	}
	snap.UpdatedAt = t.UTC()
	return snap, nil
}

func scanRecord(row rowScanner) (TransitionRecord, error) {
	var (
		rec      TransitionRecord
		from, to string
		tsMillis int64
	)
	err := row.Scan(&rec.Scenario, &rec.TransitionID, &rec.SourceComponent,
		&from, &to, &rec.Reason, &tsMillis, &rec.Version)
	if err != nil {
		return TransitionRecord{}, err
	}
	rec.From = State(from)
	rec.To = State(to)
	rec.Timestamp = time.UnixMilli(tsMillis).UTC()
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// isUniqueConstraintError reports a primary key or unique violation.
func isUniqueConstraintError(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		se.ExtendedCode == sqlite3.ErrConstraintUnique
}
