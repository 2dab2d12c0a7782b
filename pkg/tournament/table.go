// Package tournament runs many independent battles across a worker pool
// and tallies the outcomes, the MARS-domain analog of the teacher's
// pkg/search worker pool and pkg/result rule table.
package tournament

import (
	"sort"
	"sync"
)

// Outcome is one pairing's result from one warrior's point of view.
type Outcome int

const (
	Loss Outcome = iota
	Tie
	Win
)

// Record accumulates one warrior's wins, losses and ties across a
// round-robin.
type Record struct {
	Name  string
	Wins  int
	Ties  int
	Losses int
}

// Score is pMARS-standard tournament scoring: 3 points for a win, 1 for
// a tie, 0 for a loss.
func (r Record) Score() int { return r.Wins*3 + r.Ties }

// Table stores per-warrior records, protected for concurrent updates
// from the worker pool, mirroring pkg/result.Table's locking shape.
type Table struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewTable creates an empty table seeded with the given warrior names.
func NewTable(names []string) *Table {
	t := &Table{records: make(map[string]*Record, len(names))}
	for _, n := range names {
		t.records[n] = &Record{Name: n}
	}
	return t
}

// Add records one pairing's outcome for both sides.
func (t *Table) Add(a, b string, aOutcome Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apply(a, aOutcome)
	t.apply(b, invert(aOutcome))
}

func invert(o Outcome) Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return Tie
	}
}

func (t *Table) apply(name string, o Outcome) {
	r, ok := t.records[name]
	if !ok {
		r = &Record{Name: name}
		t.records[name] = r
	}
	switch o {
	case Win:
		r.Wins++
	case Loss:
		r.Losses++
	case Tie:
		r.Ties++
	}
}

// Standings returns every warrior's record, sorted by score descending.
func (t *Table) Standings() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score() != out[j].Score() {
			return out[i].Score() > out[j].Score()
		}
		return out[i].Name < out[j].Name
	})
	return out
}
