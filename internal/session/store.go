package session

import "sync"

// Store is the process-wide keyed session map. The map access is guarded;
// the sessions themselves are not, because the transport delivers messages
// for one chat strictly in order.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, creating a dead one on first contact.
func (s *Store) Get(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = New(chatID)
	s.sessions[chatID] = sess
	return sess
}

// Peek returns the session without creating one.
func (s *Store) Peek(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Remove deletes the session of a chat.
func (s *Store) Remove(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
