package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/shipwise/shipwise/internal/domain/session"
	ierr "github.com/shipwise/shipwise/internal/errors"
)

// InMemorySessionStore implements session.Repository
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]*session.Session),
	}
}

func (s *InMemorySessionStore) Create(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ierr.NewError("session cannot be nil").
			WithHint("Session is required").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return ierr.NewErrorf("session %s already exists", sess.ID).
			WithHint("Session already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	s.sessions[sess.ID] = sess.Copy()
	return nil
}

func (s *InMemorySessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, exists := s.sessions[id]; exists {
		return sess.Copy(), nil
	}
	return nil, ierr.NewErrorf("session %s not found", id).
		WithHint("Session not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemorySessionStore) List(ctx context.Context) ([]*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, sess.Copy())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *InMemorySessionStore) Update(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ierr.NewError("session cannot be nil").
			WithHint("Session is required").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; !exists {
		return ierr.NewErrorf("session %s not found", sess.ID).
			WithHint("Session not found").
			Mark(ierr.ErrNotFound)
	}

	s.sessions[sess.ID] = sess.Copy()
	return nil
}

func (s *InMemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ierr.NewErrorf("session %s not found", id).
			WithHint("Session not found").
			Mark(ierr.ErrNotFound)
	}

	delete(s.sessions, id)
	return nil
}

// Clear removes all sessions from the store
func (s *InMemorySessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*session.Session)
}
