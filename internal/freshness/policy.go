// Package freshness decides whether a cached snapshot can be served and launches the
// out-of-band refresh when it cannot be trusted for long.
package freshness

import (
	"time"

	"github.com/eknkc/pinsearch/internal/snapshot"
)

// DefaultThreshold is the age after which a snapshot is refreshed in the background.
const DefaultThreshold = 10 * time.Minute

// State is the outcome of evaluating a snapshot.
type State int

const (
	// Absent means there is nothing usable: sync synchronously before searching.
	Absent State = iota
	// Fresh means search the snapshot as-is.
	Fresh
	// Stale means search the snapshot now and refresh it in the background.
	Stale
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Policy classifies snapshots by age.
type Policy struct {
	Threshold time.Duration
	Now       func() time.Time
}

// NewPolicy returns a Policy; a non-positive threshold falls back to DefaultThreshold.
func NewPolicy(threshold time.Duration, now func() time.Time) Policy {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if now == nil {
		now = time.Now
	}
	return Policy{Threshold: threshold, Now: now}
}

// Evaluate returns the state of s. force treats any snapshot as Absent.
func (p Policy) Evaluate(s *snapshot.Snapshot, force bool) State {
	if force || s == nil || s.Entries == nil {
		return Absent
	}
	if s.Age(p.Now()) < p.Threshold {
		return Fresh
	}
	return Stale
}
