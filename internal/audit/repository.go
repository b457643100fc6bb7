// Package audit keeps the operational trail of a state core: proposals
// that were rejected for a reason worth investigating, and stage triggers
// that failed after every retry.
//
// Committed transitions are not audit events. They are the scenario
// history and live with the scenario store.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Page size bounds for Query.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Event is one row of the audit trail.
type Event struct {
	ID           string         `json:"id"`
	Action       string         `json:"action"`
	Scenario     string         `json:"scenario"`
	Component    string         `json:"component"`
	TransitionID string         `json:"transition_id,omitempty"`
	Kind         string         `json:"kind,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Filter selects events. Zero fields match everything.
type Filter struct {
	Action    string
	Scenario  string
	Component string
	Since     time.Time // inclusive
	Until     time.Time // exclusive
	Limit     int
	Offset    int
}

// Page is one window of a Query, newest first.
type Page struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// Repository stores audit events.
type Repository interface {
	Append(ctx context.Context, e *Event) error
	Query(ctx context.Context, f Filter) (*Page, error)
}

// SQLiteRepository stores events in the audit_events table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository over a migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append inserts e, filling ID and CreatedAt when they are empty.
func (r *SQLiteRepository) Append(ctx context.Context, e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Millisecond)

	var details sql.NullString
	if len(e.Details) > 0 {
		b, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("encoding audit details: %w", err)
		}
		details = sql.NullString{String: string(b), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_events
			(id, action, scenario, component, transition_id, kind, details, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action, e.Scenario, e.Component,
		nullString(e.TransitionID), nullString(e.Kind), details,
		e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event %s: %w", e.Action, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// where accumulates AND-ed conditions with their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (f Filter) where() *where {
	w := &where{}
	if f.Action != "" {
		w.add("action = ?", f.Action)
	}
	if f.Scenario != "" {
		w.add("scenario = ?", f.Scenario)
	}
	if f.Component != "" {
		w.add("component = ?", f.Component)
	}
	if !f.Since.IsZero() {
		w.add("created_at_ms >= ?", f.Since.UnixMilli())
	}
	if !f.Until.IsZero() {
		w.add("created_at_ms < ?", f.Until.UnixMilli())
	}
	return w
}

// clamp applies the page size bounds.
func (f Filter) clamp() Filter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Query returns the events matching f, newest first, with the total match
// count for paging.
func (r *SQLiteRepository) Query(ctx context.Context, f Filter) (*Page, error) {
	f = f.clamp()
	w := f.where()

	page := &Page{Events: []Event{}, Limit: f.Limit, Offset: f.Offset}
	//nolint:gosec // conditions are fixed strings; values are bound parameters
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_events"+w.String(), w.args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("counting audit events: %w", err)
	}
	if page.Total <= f.Offset {
		return page, nil
	}

	//nolint:gosec // conditions are fixed strings; values are bound parameters
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, scenario, component, transition_id, kind, details, created_at_ms
		FROM audit_events`+w.String()+`
		ORDER BY created_at_ms DESC, rowid DESC
		LIMIT ? OFFSET ?`,
		append(w.args, f.Limit, f.Offset)...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		page.Events = append(page.Events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}
	return page, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		e                           Event
		transitionID, kind, details sql.NullString
		createdMs                   int64
	)
	if err := rows.Scan(&e.ID, &e.Action, &e.Scenario, &e.Component,
		&transitionID, &kind, &details, &createdMs); err != nil {
		return Event{}, fmt.Errorf("scanning audit event: %w", err)
	}
	e.TransitionID = transitionID.String
	e.Kind = kind.String
	e.CreatedAt = time.UnixMilli(createdMs).UTC()
	if details.Valid {
		if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
			return Event{}, fmt.Errorf("decoding details of audit event %s: %w", e.ID, err)
		}
	}
	return e, nil
}
