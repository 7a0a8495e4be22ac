package session

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// Key is the fixed name the session record is persisted under.
const Key = "current_user"

// Repository persists the raw session record.
type Repository interface {
	// GetRecord returns nil, nil when nothing is stored under key.
	GetRecord(key string) ([]byte, error)
	PutRecord(key string, value []byte) error
	DeleteRecord(key string) error
}

// Store is the single owner of the current session.
// Every mutation is persisted before it returns; there is no flush step.
type Store struct {
	repo Repository

	mu      sync.RWMutex
	current *Session
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load reads the persisted session. A missing, unreadable or malformed record
// yields no session; a malformed record is also removed.
func (s *Store) Load() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	blob, err := s.repo.GetRecord(Key)
	if err != nil || len(blob) == 0 {
		return nil
	}
	var sess Session
	if err = json.Unmarshal(blob, &sess); err != nil || !sess.valid() {
		_ = s.repo.DeleteRecord(Key)
		return nil
	}
	s.current = &sess
	return s.copyCurrent()
}

// Save replaces the persisted session; nil clears it.
// When clearing, the in-memory session is dropped even if persisting fails.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess == nil {
		s.current = nil
		return errors.Wrap(s.repo.DeleteRecord(Key), "deleting session record")
	}
	blob, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err = s.repo.PutRecord(Key, blob); err != nil {
		return errors.Wrap(err, "saving session record")
	}
	cp := *sess
	s.current = &cp
	return nil
}

func (s *Store) Clear() error {
	return s.Save(nil)
}

// Current returns a copy of the in-memory session, or nil.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyCurrent()
}

func (s *Store) copyCurrent() *Session {
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}
