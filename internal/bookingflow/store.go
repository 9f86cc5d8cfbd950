package bookingflow

import (
	"sync"
	"time"

	"transfers/internal/domain"

	"github.com/google/uuid"
)

const (
	sessionTTL      = 45 * time.Minute
	janitorInterval = 5 * time.Minute
)

type session struct {
	state    *BookingState
	lastSeen time.Time
}

// Store keeps in-progress booking sessions in memory, keyed by a uuid
// handed to the browser. Sessions expire after inactivity; a lost
// session simply restarts the wizard.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewStore() *Store {
	s := &Store{
		sessions: make(map[string]*session),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create starts a fresh wizard session and returns its id.
func (s *Store) Create() (string, *BookingState) {
	id := uuid.NewString()
	state := NewState()

	s.mu.Lock()
	s.sessions[id] = &session{state: state, lastSeen: s.now()}
	s.mu.Unlock()

	return id, state
}

// Get returns a copy of the session state.
func (s *Store) Get(id string) (BookingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		delete(s.sessions, id)
		return BookingState{}, domain.NotFoundError{Resource: "booking session"}
	}
	sess.lastSeen = s.now()
	return *sess.state, nil
}

// Update mutates the session state under the store lock and returns the
// resulting copy.
func (s *Store) Update(id string, fn func(*BookingState) error) (BookingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		delete(s.sessions, id)
		return BookingState{}, domain.NotFoundError{Resource: "booking session"}
	}
	if err := fn(sess.state); err != nil {
		return BookingState{}, err
	}
	sess.lastSeen = s.now()
	return *sess.state, nil
}

// Delete drops a session, e.g. once checkout succeeded.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Close stops the janitor goroutine.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) expired(sess *session) bool {
	return s.now().Sub(sess.lastSeen) > sessionTTL
}

func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				if s.expired(sess) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
