package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrCartNotFound = errors.New("cart not found")

// Store owns the session carts, keyed by an opaque session ID handed
// to the client. Idle carts are pruned lazily on access.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		carts: make(map[string]*Cart),
		ttl:   ttl,
	}
}

// Create registers a new empty cart and returns its session ID.
func (s *Store) Create() (string, *Cart) {
	id := uuid.NewString()
	c := NewCart()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.carts[id] = c
	return id, c
}

// Get returns the cart for a session ID.
func (s *Store) Get(id string) (*Cart, error) {
	s.mu.RLock()
	c, ok := s.carts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// Drop removes a session cart, e.g. when the checkout view closes.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// pruneLocked is called with the write lock held
func (s *Store) pruneLocked() {
	if s.ttl <= 0 {
		return
	}
	now := time.Now()
	for id, c := range s.carts {
		if c.idleSince(now) > s.ttl {
			delete(s.carts, id)
		}
	}
}
