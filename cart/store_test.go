package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"toyvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(key string, price float64, qty int) models.LineItem {
	return models.LineItem{Key: key, ProductID: key, Title: "toy " + key, Price: price, Quantity: qty}
}

func TestAddItemMergesOnIdentityKey(t *testing.T) {
	s := NewStore(nil)

	s.AddItem(line("p1", 19.99, 2))
	s.AddItem(line("p1", 19.99, 3))
	s.AddItem(line("p1", 19.99, 1))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	s := NewStore(nil)

	s.AddItem(line("b", 5, 1))
	s.AddItem(line("a", 5, 1))
	s.AddItem(line("c", 5, 1))
	s.AddItem(line("a", 5, 2))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].Key)
	assert.Equal(t, "a", items[1].Key)
	assert.Equal(t, "c", items[2].Key)
	assert.Equal(t, 3, items[1].Quantity)
}

func TestVariantsOfSameProductStaySeparate(t *testing.T) {
	s := NewStore(nil)

	red := models.LineItem{Key: "v-red", ProductID: "p1", Title: "blocks", Price: 9.99, Quantity: 1,
		Options: []models.SelectedOption{{Name: "color", Value: "red"}}}
	blue := models.LineItem{Key: "v-blue", ProductID: "p1", Title: "blocks", Price: 9.99, Quantity: 1,
		Options: []models.SelectedOption{{Name: "color", Value: "blue"}}}

	s.AddItem(red)
	s.AddItem(blue)

	assert.Equal(t, 2, s.Len())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line("p1", 10, 2))

	s.UpdateQuantity("p1", 0)
	assert.Equal(t, 0, s.Len())

	s.AddItem(line("p2", 10, 2))
	s.UpdateQuantity("p2", -3)
	assert.Equal(t, 0, s.Len())
}

func TestUpdateQuantityMissingKeyIsNoop(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line("p1", 10, 2))

	s.UpdateQuantity("nope", 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItemMissingKeyIsNoop(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line("p1", 10, 2))

	s.RemoveItem("nope")
	assert.Equal(t, 1, s.Len())

	s.RemoveItem("p1")
	assert.Equal(t, 0, s.Len())
}

func TestTotalRecomputedAfterEveryMutation(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, 0.0, s.Total())

	s.AddItem(line("p1", 19.99, 2))
	assert.InDelta(t, 39.98, s.Total(), 1e-9)

	s.AddItem(line("p2", 5.00, 1))
	assert.InDelta(t, 44.98, s.Total(), 1e-9)

	s.UpdateQuantity("p1", 1)
	assert.InDelta(t, 24.99, s.Total(), 1e-9)

	s.RemoveItem("p2")
	assert.InDelta(t, 19.99, s.Total(), 1e-9)

	s.Clear()
	assert.Equal(t, 0.0, s.Total())
}

func TestNewStoreDropsNonPositiveQuantities(t *testing.T) {
	s := NewStore([]models.LineItem{
		line("p1", 10, 2),
		line("p2", 10, 0),
		line("p3", 10, -1),
	})
	assert.Equal(t, 1, s.Len())
}

type mockPersister struct {
	mu      sync.Mutex
	saved   map[string][]models.LineItem
	loadErr error
	saveErr error
	saves   int
}

func newMockPersister() *mockPersister {
	return &mockPersister{saved: make(map[string][]models.LineItem)}
}

func (m *mockPersister) Load(_ context.Context, cartID string) ([]models.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved[cartID], nil
}

func (m *mockPersister) Save(_ context.Context, cartID string, items []models.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[cartID] = items
	return nil
}

func TestManagerWritesThroughOnEveryMutation(t *testing.T) {
	p := newMockPersister()
	m := NewManager(p)
	ctx := context.Background()

	m.AddItem(ctx, "u1", line("p1", 19.99, 2))
	m.UpdateQuantity(ctx, "u1", "p1", 5)
	m.RemoveItem(ctx, "u1", "p1")

	assert.Equal(t, 3, p.saves)
	assert.Empty(t, p.saved["u1"])
}

func TestManagerLoadsPersistedCartOnFirstUse(t *testing.T) {
	p := newMockPersister()
	p.saved["u1"] = []models.LineItem{line("p1", 19.99, 2)}
	m := NewManager(p)

	s := m.Get(context.Background(), "u1")
	require.Equal(t, 1, s.Len())
	assert.InDelta(t, 39.98, s.Total(), 1e-9)
}

func TestManagerKeepsMemoryStateWhenSaveFails(t *testing.T) {
	p := newMockPersister()
	p.saveErr = errors.New("disk on fire")
	m := NewManager(p)
	ctx := context.Background()

	s := m.AddItem(ctx, "u1", line("p1", 10, 1))
	assert.Equal(t, 1, s.Len())

	// Same store instance keeps serving until the next mutation retries.
	again := m.Get(ctx, "u1")
	assert.Equal(t, 1, again.Len())
}

func TestManagerIsolatesCartIDs(t *testing.T) {
	m := NewManager(newMockPersister())
	ctx := context.Background()

	m.AddItem(ctx, "u1", line("p1", 10, 1))
	m.AddItem(ctx, "u2", line("p2", 20, 2))

	assert.Equal(t, 1, m.Get(ctx, "u1").Len())
	assert.Equal(t, 1, m.Get(ctx, "u2").Len())
	assert.InDelta(t, 40.0, m.Get(ctx, "u2").Total(), 1e-9)
}
