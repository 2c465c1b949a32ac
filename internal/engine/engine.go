// Package engine runs one pinsearch invocation: it loads local state, decides whether the
// snapshot can be served, searches it and persists whatever changed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/eknkc/pinsearch/internal/config"
	"github.com/eknkc/pinsearch/internal/freshness"
	"github.com/eknkc/pinsearch/internal/keyword"
	"github.com/eknkc/pinsearch/internal/pinboard"
	"github.com/eknkc/pinsearch/internal/search"
	"github.com/eknkc/pinsearch/internal/snapshot"
	"github.com/eknkc/pinsearch/internal/syncer"
)

// Remote is the subset of the bookmark API the engine calls.
type Remote interface {
	syncer.Fetcher
	MarkRead(ctx context.Context, p pinboard.Post) error
	Delete(ctx context.Context, href string) error
}

// Options configures an Engine. Only Config is required.
type Options struct {
	Config  *config.Config
	Indexer *keyword.Indexer
	// NewRemote builds the API client for a token. Defaults to a pinboard.Client using
	// the configured base URL and timeout.
	NewRemote func(token string) Remote
	// Spawner launches the background refresh. Nil disables it.
	Spawner freshness.Spawner
	// UserAgent is sent with API requests made by the default remote.
	UserAgent string
	Now       func() time.Time
	Logger    *slog.Logger
}

// Engine holds the state of a single invocation. It is not safe for concurrent use.
type Engine struct {
	cfg       *config.Config
	indexer   *keyword.Indexer
	newRemote func(token string) Remote
	policy    freshness.Policy
	trigger   *freshness.Trigger
	now       func() time.Time
	log       *slog.Logger

	creds    *config.Credentials
	override string
	store    *snapshot.Store
	snap     *snapshot.Snapshot
	loaded   bool
	schedule bool
}

// New loads credentials and prepares an Engine. The snapshot is read lazily.
func New(opts Options) (*Engine, error) {
	if opts.Config == nil {
		return nil, errors.New("engine: nil config")
	}
	cfg := opts.Config

	ix := opts.Indexer
	if ix == nil {
		var err error
		if ix, err = keyword.New(); err != nil {
			return nil, err
		}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	newRemote := opts.NewRemote
	if newRemote == nil {
		newRemote = func(token string) Remote {
			return pinboard.New(pinboard.Options{
				BaseURL:   cfg.Settings.APIBaseURL,
				Token:     token,
				Timeout:   cfg.Settings.HTTPTimeout,
				UserAgent: opts.UserAgent,
			})
		}
	}

	creds, err := config.LoadCredentials(cfg.Paths.CredentialsFile())
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		indexer:   ix,
		newRemote: newRemote,
		policy:    freshness.NewPolicy(cfg.Settings.Staleness, now),
		now:       now,
		log:       logger,
		creds:     creds,
		override:  cfg.TokenOverride,
		store:     snapshot.NewStore(cfg.Paths.CacheFile()),
	}
	if opts.Spawner != nil {
		e.trigger = freshness.NewTrigger(opts.Spawner)
	}
	return e, nil
}

// Token returns the token in effect and where it came from ("env" or "config").
func (e *Engine) Token() (token, source string) {
	if e.override != "" {
		return e.override, "env"
	}
	if e.creds.Token != "" {
		return e.creds.Token, "config"
	}
	return "", ""
}

func (e *Engine) remote() (Remote, error) {
	tok, _ := e.Token()
	if tok == "" {
		return nil, pinboard.ErrUnauthorized
	}
	return e.newRemote(tok), nil
}

// Snapshot returns the current snapshot, loading it from disk on first use.
func (e *Engine) Snapshot() (*snapshot.Snapshot, error) {
	if e.loaded {
		return e.snap, nil
	}
	s, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load bookmark cache: %w", err)
	}
	e.snap = s
	e.loaded = true
	return s, nil
}

// Sync replaces the snapshot with a fresh copy of the remote bookmark set.
func (e *Engine) Sync(ctx context.Context) (*snapshot.Snapshot, error) {
	r, err := e.remote()
	if err != nil {
		return nil, err
	}
	start := e.now()
	s, err := syncer.New(r, e.indexer, e.now).Sync(ctx)
	if err != nil {
		return nil, err
	}
	e.log.Info("snapshot rebuilt", "entries", len(s.Entries), "elapsed", e.now().Sub(start))
	e.snap = s
	e.loaded = true
	return s, nil
}

// SetToken validates and stores tok and drops the cached snapshot so the next search
// downloads the account behind the new token.
func (e *Engine) SetToken(tok string) error {
	if err := e.creds.SetToken(tok); err != nil {
		return err
	}
	e.override = ""
	return e.invalidate()
}

func (e *Engine) invalidate() error {
	if err := e.store.Invalidate(); err != nil {
		return fmt.Errorf("cannot invalidate bookmark cache: %w", err)
	}
	e.snap = nil
	e.loaded = true
	return nil
}

// Search answers q, syncing first when there is no usable snapshot and scheduling a
// background refresh when the snapshot is stale.
func (e *Engine) Search(ctx context.Context, q Query) (Outcome, error) {
	out := Outcome{UnreadOnly: q.UnreadOnly}
	force := q.ForceReindex

	if q.SetToken != "" {
		if err := e.SetToken(q.SetToken); err != nil {
			return out, err
		}
		out.TokenSaved = true
		force = true
	}
	if tok, _ := e.Token(); tok == "" {
		return out, pinboard.ErrUnauthorized
	}

	s, err := e.Snapshot()
	if err != nil {
		return out, err
	}

	out.State = e.policy.Evaluate(s, force)
	switch out.State {
	case freshness.Absent:
		e.log.Debug("no usable snapshot, syncing", "forced", force)
		if s, err = e.Sync(ctx); err != nil {
			return out, err
		}
	case freshness.Stale:
		if e.trigger == nil {
			e.log.Debug("snapshot stale, no background refresh available", "age", s.Age(e.now()))
			break
		}
		e.log.Debug("snapshot stale, scheduling refresh", "age", s.Age(e.now()))
		// Claims the refresh for this staleness window once persisted.
		s.Touch(e.now())
		e.schedule = true
		out.Refreshing = true
	}

	entries := s.Entries
	if q.UnreadOnly {
		entries = search.Unread(entries)
	}
	out.Results = e.rank(entries, q)
	return out, nil
}

func (e *Engine) rank(entries []snapshot.Entry, q Query) []search.Result {
	limit := e.cfg.Settings.ResultLimit
	if q.UnreadOnly && strings.TrimSpace(q.Text) == "" {
		out := make([]search.Result, 0, min(len(entries), limit))
		for _, en := range entries {
			if len(out) == limit {
				break
			}
			out = append(out, search.Result{Entry: en, Score: 1})
		}
		return out
	}
	return search.Rank(entries, e.indexer.Tokenize(q.Text), limit)
}

// Delete removes the bookmark for url remotely and drops the local cache.
func (e *Engine) Delete(ctx context.Context, url string) error {
	entry, err := e.lookup(url)
	if err != nil {
		return err
	}
	r, err := e.remote()
	if err != nil {
		return err
	}
	if err := r.Delete(ctx, entry.Href); err != nil {
		return fmt.Errorf("cannot delete bookmark: %w", err)
	}
	e.log.Info("bookmark deleted", "url", entry.Href)
	return e.invalidate()
}

// MarkRead flags the bookmark for url as read remotely and drops the local cache.
func (e *Engine) MarkRead(ctx context.Context, url string) error {
	entry, err := e.lookup(url)
	if err != nil {
		return err
	}
	r, err := e.remote()
	if err != nil {
		return err
	}
	if err := r.MarkRead(ctx, syncer.ToPost(entry)); err != nil {
		return fmt.Errorf("cannot mark bookmark as read: %w", err)
	}
	e.log.Info("bookmark marked as read", "url", entry.Href)
	return e.invalidate()
}

func (e *Engine) lookup(url string) (snapshot.Entry, error) {
	if tok, _ := e.Token(); tok == "" {
		return snapshot.Entry{}, pinboard.ErrUnauthorized
	}
	s, err := e.Snapshot()
	if err != nil {
		return snapshot.Entry{}, err
	}
	return s.Find(url)
}

// Finish persists dirty credentials and snapshot, then launches the background refresh
// if one was scheduled. It is meant to run once, after the invocation's work, whether or
// not that work succeeded.
func (e *Engine) Finish() error {
	var errs []error
	if e.creds.Dirty {
		if err := config.SaveCredentials(e.cfg.Paths.CredentialsFile(), e.creds); err != nil {
			errs = append(errs, fmt.Errorf("cannot save credentials: %w", err))
		}
	}
	if e.snap != nil && e.snap.Dirty {
		if err := e.store.Save(e.snap); err != nil {
			errs = append(errs, fmt.Errorf("cannot save bookmark cache: %w", err))
		}
	}
	if e.schedule && e.trigger != nil {
		if spawned, err := e.trigger.Fire(); err != nil {
			errs = append(errs, err)
		} else if spawned {
			e.log.Debug("background refresh started")
		}
	}
	return errors.Join(errs...)
}
