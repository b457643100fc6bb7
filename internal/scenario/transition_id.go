package scenario

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// idWindow is how many seconds of generated bases the generator remembers.
// Timestamps are taken per attempt, so concurrent proposals may arrive
// slightly out of order.
const idWindow = 5

type idEntry struct {
	count  int
	second int64
}

// IDGenerator produces transition ids of the form
// {source_component}-{target_state}-{unix_seconds}. A base that was already
// issued within the window gets a monotonic -N suffix.
type IDGenerator struct {
	mu     sync.Mutex
	newest int64
	issued map[string]idEntry
}

// NewIDGenerator creates an empty generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{issued: make(map[string]idEntry)}
}

// Next returns a fresh id for a transition to target proposed by source at at.
func (g *IDGenerator) Next(source string, target State, at time.Time) string {
	sec := at.Unix()
	base := fmt.Sprintf("%s-%s-%d", normaliseComponent(source), target, sec)

	g.mu.Lock()
	defer g.mu.Unlock()

	if sec > g.newest {
		g.newest = sec
		g.prune()
	}

	e := g.issued[base]
	n := e.count
	g.issued[base] = idEntry{count: n + 1, second: sec}
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

func (g *IDGenerator) prune() {
	for base, e := range g.issued {
		if e.second < g.newest-idWindow {
			delete(g.issued, base)
		}
	}
}

// normaliseComponent lowercases a component name and replaces characters
// that cannot appear in a store key.
func normaliseComponent(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', ' ', '\t', '\n', '+', '#':
			return '-'
		}
		return r
	}, s)
}
