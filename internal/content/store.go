package content

import "sync"

// Store holds the live content and fans out replacements to subscribers.
type Store struct {
	mu      sync.RWMutex
	current *Content
	subs    map[int]chan *Content
	nextID  int
}

// NewStore creates a store serving c.
func NewStore(c *Content) *Store {
	return &Store{
		current: c,
		subs:    make(map[int]chan *Content),
	}
}

// Current returns the content in effect.
func (s *Store) Current() *Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the content and notifies every subscriber. A subscriber that
// has not consumed the previous update only sees the latest one.
func (s *Store) Set(c *Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- c
	}
}

// Subscribe returns a channel of replacements and a function that ends the
// subscription and closes the channel.
func (s *Store) Subscribe() (<-chan *Content, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan *Content, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns how many subscriptions are open.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
