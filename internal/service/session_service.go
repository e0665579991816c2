package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/model"
	"github.com/stemsi/exstem-survey/internal/survey"
)

// Domain Errors
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionSubmitted = errors.New("session already submitted")
)

// CatalogProvider supplies the catalog snapshot a new session is bound to.
type CatalogProvider interface {
	Catalog(ctx context.Context) (survey.Catalog, error)
}

type sessionEntry struct {
	mu        sync.Mutex
	session   *survey.Session
	lastSeen  time.Time
	submitted bool
}

// SessionService keeps in-progress survey sessions in memory.
// Mutations of one session are serialized by that session's lock;
// different sessions never contend beyond the registry lookup.
type SessionService struct {
	catalog CatalogProvider
	order   survey.SubmissionOrder
	idleTTL time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

// NewSessionService creates a new SessionService.
func NewSessionService(catalog CatalogProvider, order survey.SubmissionOrder, idleTTL time.Duration, log zerolog.Logger) *SessionService {
	return &SessionService{
		catalog:  catalog,
		order:    order,
		idleTTL:  idleTTL,
		log:      log.With().Str("component", "session_service").Logger(),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*sessionEntry),
	}
}

// Start opens a session for userName bound to the current catalog snapshot.
func (s *SessionService) Start(ctx context.Context, userName string) (model.SessionView, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return model.SessionView{}, fmt.Errorf("get catalog: %w", err)
	}

	id := uuid.New()
	sess, err := survey.NewSession(id.String(), userName, catalog)
	if err != nil {
		return model.SessionView{}, err
	}

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: sess, lastSeen: s.now()}
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", id.String()).
		Int("questions", len(catalog)).
		Msg("Session started")

	return model.NewSessionView(sess), nil
}

// Get returns the current view of a session.
func (s *SessionService) Get(id uuid.UUID) (model.SessionView, error) {
	return s.mutate(id, func(*survey.Session) error { return nil })
}

// Apply runs one interaction event. On error the session is unchanged and
// the returned view reflects its state.
func (s *SessionService) Apply(id uuid.UUID, ev survey.Event) (model.SessionView, error) {
	return s.mutate(id, func(sess *survey.Session) error { return sess.Apply(ev) })
}

// Next advances the session one step.
func (s *SessionService) Next(id uuid.UUID) (model.SessionView, error) {
	return s.mutate(id, func(sess *survey.Session) error {
		sess.Next()
		return nil
	})
}

// Previous moves the session back one step.
func (s *SessionService) Previous(id uuid.UUID) (model.SessionView, error) {
	return s.mutate(id, func(sess *survey.Session) error {
		sess.Previous()
		return nil
	})
}

// Submit validates and assembles the session's answers and passes the
// submission to accept while the session is still locked. When accept
// succeeds the session is closed; when it fails the session stays open so the
// respondent can retry.
func (s *SessionService) Submit(id uuid.UUID, accept func(survey.Submission) error) (survey.Submission, survey.Report, error) {
	entry, err := s.entry(id)
	if err != nil {
		return survey.Submission{}, survey.Report{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.submitted {
		return survey.Submission{}, survey.Report{}, ErrSessionSubmitted
	}
	entry.lastSeen = s.now()

	sub, report, err := entry.session.Submit(s.order)
	if err != nil {
		return sub, report, err
	}
	if err := accept(sub); err != nil {
		return sub, report, err
	}

	entry.submitted = true
	s.remove(id, entry)

	s.log.Info().
		Str("session_id", id.String()).
		Int("answers", len(sub.Answers)).
		Msg("Session submitted")
	return sub, report, nil
}

// End discards a session without submitting it.
func (s *SessionService) End(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run evicts idle sessions until ctx is done. Call in a goroutine.
func (s *SessionService) Run(ctx context.Context) {
	interval := s.idleTTL / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().Dur("idle_ttl", s.idleTTL).Msg("Session janitor started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				s.log.Info().Int("count", n).Msg("Evicted idle sessions")
			}
		}
	}
}

// EvictIdle drops sessions untouched for longer than the idle TTL and
// returns how many were removed.
func (s *SessionService) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		// A locked entry is in use and therefore not idle.
		if !entry.mu.TryLock() {
			continue
		}
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
		entry.mu.Unlock()
	}
	return evicted
}

func (s *SessionService) entry(id uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// remove deletes id only if it still maps to entry.
func (s *SessionService) remove(id uuid.UUID, entry *sessionEntry) {
	s.mu.Lock()
	if s.sessions[id] == entry {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

func (s *SessionService) mutate(id uuid.UUID, fn func(*survey.Session) error) (model.SessionView, error) {
	entry, err := s.entry(id)
	if err != nil {
		return model.SessionView{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.submitted {
		return model.SessionView{}, ErrSessionSubmitted
	}
	entry.lastSeen = s.now()

	err = fn(entry.session)
	return model.NewSessionView(entry.session), err
}
