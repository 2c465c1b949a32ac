package freshness

import (
	"fmt"
	"os"
	"os/exec"
)

// Spawner starts a refresh that outlives the caller.
type Spawner interface {
	Spawn() error
}

// Trigger fires its Spawner at most once.
type Trigger struct {
	spawner Spawner
	fired   bool
}

// NewTrigger wraps s.
func NewTrigger(s Spawner) *Trigger {
	return &Trigger{spawner: s}
}

// Fire spawns the refresh unless it already has. It reports whether this call spawned.
func (t *Trigger) Fire() (bool, error) {
	if t.fired {
		return false, nil
	}
	t.fired = true
	if err := t.spawner.Spawn(); err != nil {
		return false, err
	}
	return true, nil
}

// ProcessSpawner re-executes a binary as a detached process: its own session (or
// process group on Windows), no stdio, and no handle kept by the parent.
type ProcessSpawner struct {
	Path string
	Args []string
}

// SelfSpawner returns a ProcessSpawner that runs the current executable with args.
func SelfSpawner(args ...string) (*ProcessSpawner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("cannot determine current executable path: %w", err)
	}
	return &ProcessSpawner{Path: exe, Args: args}, nil
}

func (p *ProcessSpawner) Spawn() error {
	c := exec.Command(p.Path, p.Args...)
	c.Stdin = nil
	c.Stdout = nil
	c.Stderr = nil
	c.SysProcAttr = detachedAttr()
	if err := c.Start(); err != nil {
		return fmt.Errorf("cannot start background refresh: %w", err)
	}
	return c.Process.Release()
}
