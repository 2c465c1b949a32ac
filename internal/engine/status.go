package engine

import (
	"time"

	"github.com/eknkc/pinsearch/internal/config"
	"github.com/eknkc/pinsearch/internal/freshness"
)

// Status describes local state without touching the network.
type Status struct {
	Paths       config.Paths
	TokenSource string
	Entries     int
	Unread      int
	FetchedAt   time.Time
	Age         time.Duration
	State       freshness.State
}

// Status reports what a search would find on disk right now.
func (e *Engine) Status() (Status, error) {
	st := Status{Paths: e.cfg.Paths}
	_, st.TokenSource = e.Token()

	s, err := e.Snapshot()
	if err != nil {
		return st, err
	}
	st.State = e.policy.Evaluate(s, false)
	if s == nil {
		return st, nil
	}
	st.Entries = len(s.Entries)
	for _, en := range s.Entries {
		if en.Unread() {
			st.Unread++
		}
	}
	st.FetchedAt = s.FetchedAt
	st.Age = s.Age(e.now())
	return st, nil
}
