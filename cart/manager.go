package cart

import (
	"context"
	"log"
	"sync"

	"toyvault/models"
)

// Manager owns the live Store per cart ID and writes every mutation through
// to the Persister. A failed persistence write is logged and the in-memory
// state stays authoritative until the next mutation retries it.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
}

func NewManager(p Persister) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		persister: p,
	}
}

// Get returns the Store for cartID, loading persisted contents on first use.
func (m *Manager) Get(ctx context.Context, cartID string) *Store {
	m.mu.Lock()
	if s, ok := m.stores[cartID]; ok {
		m.mu.Unlock()
		return s
	}
	m.mu.Unlock()

	items, err := m.persister.Load(ctx, cartID)
	if err != nil {
		log.Println("cart load error for", cartID, ":", err)
		items = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have loaded it meanwhile.
	if s, ok := m.stores[cartID]; ok {
		return s
	}
	s := NewStore(items)
	m.stores[cartID] = s
	return s
}

func (m *Manager) persist(ctx context.Context, cartID string, s *Store) {
	if err := m.persister.Save(ctx, cartID, s.Items()); err != nil {
		log.Println("cart save error for", cartID, ":", err)
	}
}

func (m *Manager) AddItem(ctx context.Context, cartID string, item models.LineItem) *Store {
	s := m.Get(ctx, cartID)
	s.AddItem(item)
	m.persist(ctx, cartID, s)
	return s
}

func (m *Manager) UpdateQuantity(ctx context.Context, cartID, key string, quantity int) *Store {
	s := m.Get(ctx, cartID)
	s.UpdateQuantity(key, quantity)
	m.persist(ctx, cartID, s)
	return s
}

func (m *Manager) RemoveItem(ctx context.Context, cartID, key string) *Store {
	s := m.Get(ctx, cartID)
	s.RemoveItem(key)
	m.persist(ctx, cartID, s)
	return s
}

func (m *Manager) Clear(ctx context.Context, cartID string) *Store {
	s := m.Get(ctx, cartID)
	s.Clear()
	m.persist(ctx, cartID, s)
	return s
}
