package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eknkc/pinsearch/internal/config"
)

// newLogger returns the foreground logger. It writes text to w, which is stderr in
// normal use so Alfred's debugger shows it while stdout carries only items.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Settings.Level()}))
}

// openRefreshLog returns a JSON logger appending to the background refresh log.
func openRefreshLog(cfg *config.Config) (*slog.Logger, func() error, error) {
	path := cfg.Paths.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open refresh log: %w", err)
	}
	// Info and above are always recorded.
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: min(cfg.Settings.Level(), slog.LevelInfo)})
	return slog.New(h).With("pid", os.Getpid()), f.Close, nil
}
