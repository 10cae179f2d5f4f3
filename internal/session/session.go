// Package session owns the live board snapshot: it serializes command
// application, persists best-effort after each successful command, and runs
// the periodic overdue-recurring sweep.
package session

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/state"
)

// Store persists whole-tree snapshots. Load of a missing snapshot returns an
// empty state and no error.
type Store interface {
	Load(ctx context.Context) (state.State, error)
	Save(ctx context.Context, s state.State) error
}

// Notifier receives fire-and-forget notices after successful mutations.
type Notifier interface {
	Notify(kind, message string)
}

// Session is safe for one logical writer and any number of readers taking
// snapshots between commands.
type Session struct {
	mu       sync.Mutex
	proc     *state.Processor
	current  state.State
	store    Store
	notifier Notifier
	logger   *log.Logger
}

func New(proc *state.Processor, store Store, notifier Notifier, logger *log.Logger) *Session {
	if proc == nil {
		proc = state.NewProcessor(nil, nil)
	}
	if logger == nil {
		logger = log.New()
	}
	return &Session{
		proc:     proc,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Bootstrap loads the persisted snapshot. A load failure is treated as "no
// persisted state": logged, never fatal.
func (s *Session) Bootstrap(ctx context.Context) {
	if s.store == nil {
		return
	}
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("snapshot load failed, starting empty")
		return
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
}

// Dispatch applies one command and returns the resulting snapshot. On
// success the snapshot is persisted best-effort and a notification is sent
// for mutating commands. On error the held state is unchanged.
func (s *Session) Dispatch(ctx context.Context, cmd state.Command) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.proc.Apply(s.current, cmd)
	if err != nil {
		return s.current.Clone(), err
	}
	s.current = next

	s.persist(ctx)
	if s.notifier != nil {
		if kind, msg, ok := describe(cmd); ok {
			s.notifier.Notify(kind, msg)
		}
	}
	return s.current.Clone(), nil
}

// Snapshot returns an independent copy of the held state.
func (s *Session) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// RunSweeper relocates overdue recurring tasks on a fixed interval until the
// context is cancelled. The sweep is idempotent, so overlapping schedules
// are harmless.
func (s *Session) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Dispatch(ctx, state.CheckOverdueRecurringTasks{}); err != nil {
				s.logger.WithError(err).Warn("overdue sweep failed")
			}
		}
	}
}

// persist writes the held snapshot; failures are logged and the in-memory
// state stands.
func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.current); err != nil {
		s.logger.WithError(err).Warn("snapshot save failed")
	}
}
