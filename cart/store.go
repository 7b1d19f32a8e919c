package cart

import (
	"sync"

	"toyvault/models"
)

// Store is the sole authority on the contents of one cart. Items are kept in
// insertion order for stable rendering; merging happens on the identity key.
type Store struct {
	mu    sync.Mutex
	items []models.LineItem
}

func NewStore(items []models.LineItem) *Store {
	s := &Store{}
	for _, it := range items {
		if it.Quantity > 0 {
			s.items = append(s.items, it)
		}
	}
	return s
}

// AddItem merges into an existing line when the identity key matches,
// otherwise appends. Always succeeds.
func (s *Store) AddItem(item models.LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == item.Key {
			s.items[i].Quantity += item.Quantity
			return
		}
	}
	s.items = append(s.items, item)
}

// UpdateQuantity sets the quantity for key. A quantity <= 0 removes the line
// entirely; a missing key is a no-op.
func (s *Store) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(key)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line for key if present.
func (s *Store) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called exactly once per successful order.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Total recomputes the cart total from current contents on every call.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, it := range s.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
