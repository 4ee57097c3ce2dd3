package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixstiven/wog-agent/internal/domain"
)

// createAttempts bounds id generation retries on collision.
const createAttempts = 5

// entry pairs a session with its own lock so that turns on one session
// serialize without blocking unrelated sessions.
type entry struct {
	mu   sync.Mutex
	sess domain.Session
}

// SessionStore is an in-memory implementation of domain.SessionStore.
// Sessions live for the process lifetime; there is no expiry.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*entry
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*entry),
		now:      time.Now,
	}
}

func (s *SessionStore) Create() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < createAttempts; i++ {
		id := domain.SessionID(uuid.NewString())
		if _, exists := s.sessions[id]; exists {
			continue
		}

		now := s.now()
		e := &entry{
			sess: domain.Session{
				ID:           id,
				CreatedAt:    now,
				LastActiveAt: now,
			},
		}
		s.sessions[id] = e

		snap := copySession(&e.sess)
		return &snap, nil
	}

	return nil, fmt.Errorf("could not generate a unique session id")
}

func (s *SessionStore) Get(id domain.SessionID) (*domain.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snap := copySession(&e.sess)
	return &snap, nil
}

func (s *SessionStore) Append(id domain.SessionID, msg domain.Message) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sess.History = append(e.sess.History, msg)
	e.sess.MessageCount++
	e.sess.LastActiveAt = s.now()
	return nil
}

func (s *SessionStore) Clear(id domain.SessionID) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sess.History = nil
	e.sess.MessageCount = 0
	e.sess.LastActiveAt = s.now()
	return nil
}

func (s *SessionStore) Delete(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) List() []domain.SessionStats {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]domain.SessionStats, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, domain.SessionStats{
			SessionID:    e.sess.ID,
			MessageCount: e.sess.MessageCount,
			CreatedAt:    e.sess.CreatedAt,
			LastActiveAt: e.sess.LastActiveAt,
		})
		e.mu.Unlock()
	}
	return out
}

// entry looks up the lockable entry for id under the map lock only.
func (s *SessionStore) entry(id domain.SessionID) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}

// copySession returns a snapshot whose history the caller may keep without
// holding any store lock.
func copySession(sess *domain.Session) domain.Session {
	snap := *sess
	snap.History = make([]domain.Message, len(sess.History))
	copy(snap.History, sess.History)
	return snap
}
