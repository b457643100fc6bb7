package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nerrad567/scenario-state-core/internal/audit"
)

// handleListAuditEvents returns one page of the audit trail, newest first.
//
// Query parameters:
//   - action: proposal_rejected or downstream_trigger_failed
//   - scenario: scenario name
//   - component: proposing or triggered component
//   - since, until: RFC 3339 bounds on created_at (since inclusive)
//   - limit: page size (default 50, max 200)
//   - offset: events to skip
func (s *Server) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "audit trail not configured")
		return
	}

	filter, err := auditFilterFrom(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	page, err := s.audit.Query(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to query audit events", "error", err)
		writeInternalError(w, "failed to query audit events")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func auditFilterFrom(q url.Values) (audit.Filter, error) {
	f := audit.Filter{
		Action:    q.Get("action"),
		Scenario:  q.Get("scenario"),
		Component: q.Get("component"),
	}

	for _, p := range []struct {
		key string
		dst *time.Time
	}{{"since", &f.Since}, {"until", &f.Until}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return audit.Filter{}, fmt.Errorf("%s must be an RFC 3339 timestamp", p.key)
		}
		*p.dst = t
	}

	for _, p := range []struct {
		key string
		dst *int
	}{{"limit", &f.Limit}, {"offset", &f.Offset}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return audit.Filter{}, fmt.Errorf("%s must be a non-negative integer", p.key)
		}
		*p.dst = n
	}
	return f, nil
}
