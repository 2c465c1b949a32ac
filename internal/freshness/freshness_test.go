package freshness

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/eknkc/pinsearch/internal/snapshot"
)

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewPolicy(10*time.Minute, fixedNow(now))
	at := func(d time.Duration) *snapshot.Snapshot {
		return &snapshot.Snapshot{Entries: []snapshot.Entry{{Href: "http://a"}}, FetchedAt: now.Add(-d)}
	}

	cases := []struct {
		name  string
		snap  *snapshot.Snapshot
		force bool
		want  State
	}{
		{"never fetched", nil, false, Absent},
		{"no entries key", &snapshot.Snapshot{FetchedAt: now}, false, Absent},
		{"nine minutes", at(9 * time.Minute), false, Fresh},
		{"exactly threshold", at(10 * time.Minute), false, Stale},
		{"eleven minutes", at(11 * time.Minute), false, Stale},
		{"forced fresh", at(time.Minute), true, Absent},
		{"empty account is present", &snapshot.Snapshot{Entries: []snapshot.Entry{}, FetchedAt: now}, false, Fresh},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := p.Evaluate(c.snap, c.force); got != c.want {
				t.Fatalf("Evaluate=%v want %v", got, c.want)
			}
		})
	}
}

func TestNewPolicy_Defaults(t *testing.T) {
	p := NewPolicy(0, nil)
	if p.Threshold != DefaultThreshold || p.Now == nil {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

type countingSpawner struct {
	n   int
	err error
}

func (c *countingSpawner) Spawn() error {
	c.n++
	return c.err
}

func TestTrigger_FiresOnce(t *testing.T) {
	s := &countingSpawner{}
	tr := NewTrigger(s)
	if s.n != 0 {
		t.Fatal("NewTrigger spawned eagerly")
	}
	spawned, err := tr.Fire()
	if err != nil || !spawned {
		t.Fatalf("first Fire: spawned=%v err=%v", spawned, err)
	}
	spawned, err = tr.Fire()
	if err != nil || spawned {
		t.Fatalf("second Fire: spawned=%v err=%v", spawned, err)
	}
	if s.n != 1 {
		t.Fatalf("expected 1 spawn, got %d", s.n)
	}
}

func TestTrigger_ErrorStillCountsAsFired(t *testing.T) {
	s := &countingSpawner{err: errors.New("boom")}
	tr := NewTrigger(s)
	if _, err := tr.Fire(); err == nil {
		t.Fatal("expected error")
	}
	if _, err := tr.Fire(); err != nil {
		t.Fatalf("second Fire should be a no-op, got %v", err)
	}
	if s.n != 1 {
		t.Fatalf("expected 1 spawn attempt, got %d", s.n)
	}
}

func TestProcessSpawner_Detached(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	out := filepath.Join(t.TempDir(), "done")
	sp := &ProcessSpawner{Path: "/bin/sh", Args: []string{"-c", "echo ok > " + out}}
	if err := sp.Spawn(); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if b, err := os.ReadFile(out); err == nil && len(b) > 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("detached process never ran")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestLock_Exclusive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "refresh.lock")
	a := NewLock(p)
	ok, err := a.TryLock()
	if err != nil || !ok {
		t.Fatalf("first TryLock: ok=%v err=%v", ok, err)
	}

	b := NewLock(p)
	ok, err = b.TryLock()
	if err != nil {
		t.Fatalf("second TryLock: %v", err)
	}
	if ok {
		t.Fatal("second lock acquired while first is held")
	}

	if err := a.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	ok, err = b.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock after unlock: ok=%v err=%v", ok, err)
	}
	_ = b.Unlock()
}
