package checkout

import (
	"context"
	"sync"
	"testing"

	"toyvault/cart"
	"toyvault/models"
	"toyvault/pay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu    sync.Mutex
	carts map[string][]models.LineItem
}

func newMemPersister() *memPersister {
	return &memPersister{carts: make(map[string][]models.LineItem)}
}

func (m *memPersister) Load(_ context.Context, cartID string) ([]models.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[cartID], nil
}

func (m *memPersister) Save(_ context.Context, cartID string, items []models.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = items
	return nil
}

type mockReconciler struct {
	createCalls   int
	captureCalls  int
	captureEvent  pay.Event
	orderNumber   string
	persistCalls  int
	persistedInfo models.ShippingInfo
	persistedItem []models.LineItem
}

func (m *mockReconciler) CreateProviderOrder(_ context.Context, items []models.LineItem, currency string) (pay.ProviderOrder, error) {
	if _, err := pay.BuildPaymentRequest(items, currency); err != nil {
		return pay.ProviderOrder{}, err
	}
	m.createCalls++
	return pay.ProviderOrder{ID: "5O190127TN364715T", Status: "CREATED"}, nil
}

func (m *mockReconciler) Capture(_ context.Context, _ string) pay.Event {
	m.captureCalls++
	return m.captureEvent
}

func (m *mockReconciler) PersistOrder(_ context.Context, info models.ShippingInfo, items []models.LineItem, _ string, _ pay.Event) string {
	m.persistCalls++
	m.persistedInfo = info
	m.persistedItem = items
	return m.orderNumber
}

func newTestOrchestrator(rec Reconciler) (*Orchestrator, *cart.Manager) {
	carts := cart.NewManager(newMemPersister())
	return NewOrchestrator(carts, rec, "USD"), carts
}

func seedCart(t *testing.T, carts *cart.Manager, cartID string) {
	t.Helper()
	carts.AddItem(context.Background(), cartID, models.LineItem{
		Key: "p1", ProductID: "p1", Title: "Dino Kit", Price: 19.99, Quantity: 2,
	})
}

func TestBeginRefusesEmptyCart(t *testing.T) {
	o, _ := newTestOrchestrator(&mockReconciler{})

	_, err := o.Begin(context.Background(), "shopper")
	assert.ErrorIs(t, err, pay.ErrInvalidCart)
}

func TestPaymentGatedOnShippingConfirmation(t *testing.T) {
	rec := &mockReconciler{}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")

	s, err := o.Begin(context.Background(), "shopper")
	require.NoError(t, err)
	assert.Equal(t, StateEnteringShipping, s.State())

	_, err = o.CreatePaymentSession(context.Background(), s)
	assert.ErrorIs(t, err, ErrWrongState)

	_, err = o.ConfirmPayment(context.Background(), s, "5O190127TN364715T")
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Zero(t, rec.captureCalls)
}

func TestHappyPath(t *testing.T) {
	rec := &mockReconciler{
		captureEvent: pay.Event{Succeeded: true, CaptureID: "TXN1", PayerID: "PAYER1"},
		orderNumber:  "ORD-493021",
	}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")
	ctx := context.Background()

	s, err := o.Begin(ctx, "shopper")
	require.NoError(t, err)

	fieldErrs, err := s.ConfirmShipping(validShipping())
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, StateAwaitingPayment, s.State())

	order, err := o.CreatePaymentSession(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", order.ID)

	ev, err := o.ConfirmPayment(ctx, s, order.ID)
	require.NoError(t, err)
	assert.True(t, ev.Succeeded)
	assert.Equal(t, StatePaymentSucceeded, s.State())
	assert.Equal(t, "ORD-493021", s.Snapshot().OrderNumber)

	// Order persisted from the confirmed shipping info and cart snapshot.
	require.Equal(t, 1, rec.persistCalls)
	assert.Equal(t, "jane@example.com", rec.persistedInfo.Email)
	require.Len(t, rec.persistedItem, 1)
	assert.Equal(t, 2, rec.persistedItem[0].Quantity)

	// Cart cleared exactly once, after success.
	assert.Equal(t, 0, carts.Get(ctx, "shopper").Len())
}

func TestInvalidShippingBlocksEverything(t *testing.T) {
	rec := &mockReconciler{}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")

	s, err := o.Begin(context.Background(), "shopper")
	require.NoError(t, err)

	bad := validShipping()
	bad.Email = "not-an-email"
	fieldErrs, err := s.ConfirmShipping(bad)
	require.NoError(t, err)
	require.Contains(t, fieldErrs, "email")
	assert.Equal(t, StateEnteringShipping, s.State())

	// No payment request is ever built.
	_, err = o.CreatePaymentSession(context.Background(), s)
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Zero(t, rec.createCalls)
}

func TestCancellationKeepsCartAndAllowsRetry(t *testing.T) {
	rec := &mockReconciler{}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")
	ctx := context.Background()

	s, err := o.Begin(ctx, "shopper")
	require.NoError(t, err)
	_, err = s.ConfirmShipping(validShipping())
	require.NoError(t, err)

	ev, err := o.Cancel(s)
	require.NoError(t, err)
	assert.True(t, ev.Cancelled)
	assert.Equal(t, "cancelled", ev.Reason)
	assert.Equal(t, StatePaymentFailed, s.State())

	// Cart untouched.
	assert.Equal(t, 1, carts.Get(ctx, "shopper").Len())

	// Payment can be re-attempted.
	require.NoError(t, s.RetryPayment())
	assert.Equal(t, StateAwaitingPayment, s.State())
}

func TestProviderFailureIsRetryable(t *testing.T) {
	rec := &mockReconciler{captureEvent: pay.Event{Reason: "Payment failed. Please try again."}}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")
	ctx := context.Background()

	s, err := o.Begin(ctx, "shopper")
	require.NoError(t, err)
	_, err = s.ConfirmShipping(validShipping())
	require.NoError(t, err)

	ev, err := o.ConfirmPayment(ctx, s, "5O190127TN364715T")
	require.NoError(t, err)
	assert.False(t, ev.Succeeded)
	assert.Equal(t, StatePaymentFailed, s.State())
	assert.Equal(t, 1, carts.Get(ctx, "shopper").Len())
	assert.Zero(t, rec.persistCalls)
}

func TestPersistenceFailureStillSucceedsPayment(t *testing.T) {
	rec := &mockReconciler{
		captureEvent: pay.Event{Succeeded: true, CaptureID: "TXN1"},
		orderNumber:  "", // order record could not be written
	}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")
	ctx := context.Background()

	s, err := o.Begin(ctx, "shopper")
	require.NoError(t, err)
	_, err = s.ConfirmShipping(validShipping())
	require.NoError(t, err)

	ev, err := o.ConfirmPayment(ctx, s, "5O190127TN364715T")
	require.NoError(t, err)
	assert.True(t, ev.Succeeded)
	assert.Equal(t, StatePaymentSucceeded, s.State())
	assert.Empty(t, s.Snapshot().OrderNumber)
	assert.Equal(t, 0, carts.Get(ctx, "shopper").Len())
}

func TestEditShippingBeforeSuccess(t *testing.T) {
	o, carts := newTestOrchestrator(&mockReconciler{})
	seedCart(t, carts, "shopper")

	s, err := o.Begin(context.Background(), "shopper")
	require.NoError(t, err)
	_, err = s.ConfirmShipping(validShipping())
	require.NoError(t, err)

	require.NoError(t, s.EditShipping())
	assert.Equal(t, StateEnteringShipping, s.State())
	// Entered values survive the edit.
	assert.Equal(t, "Jane Doe", s.Shipping().FullName)
}

// blockingReconciler parks inside Capture until released so a second
// confirmation can race the first one mid-flight.
type blockingReconciler struct {
	mu           sync.Mutex
	captureCalls int
	persistCalls int
	enterCapture chan struct{}
	release      chan struct{}
}

func (b *blockingReconciler) CreateProviderOrder(_ context.Context, _ []models.LineItem, _ string) (pay.ProviderOrder, error) {
	return pay.ProviderOrder{ID: "5O190127TN364715T", Status: "CREATED"}, nil
}

func (b *blockingReconciler) Capture(_ context.Context, _ string) pay.Event {
	b.mu.Lock()
	b.captureCalls++
	b.mu.Unlock()
	b.enterCapture <- struct{}{}
	<-b.release
	return pay.Event{Succeeded: true, CaptureID: "TXN1", PayerID: "PAYER1"}
}

func (b *blockingReconciler) PersistOrder(_ context.Context, _ models.ShippingInfo, _ []models.LineItem, _ string, _ pay.Event) string {
	b.mu.Lock()
	b.persistCalls++
	b.mu.Unlock()
	return "ORD-493021"
}

func TestConcurrentConfirmPersistsOrderOnce(t *testing.T) {
	rec := &blockingReconciler{
		enterCapture: make(chan struct{}, 1),
		release:      make(chan struct{}),
	}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")
	ctx := context.Background()

	s, err := o.Begin(ctx, "shopper")
	require.NoError(t, err)
	_, err = s.ConfirmShipping(validShipping())
	require.NoError(t, err)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := o.ConfirmPayment(ctx, s, "5O190127TN364715T")
			errs <- err
		}()
	}

	// First caller is parked inside the provider call; the loser must be
	// rejected without reaching the provider at all.
	<-rec.enterCapture
	assert.ErrorIs(t, <-errs, ErrWrongState)

	close(rec.release)
	require.NoError(t, <-errs)

	assert.Equal(t, 1, rec.captureCalls)
	assert.Equal(t, 1, rec.persistCalls)
	assert.Equal(t, StatePaymentSucceeded, s.State())
	assert.Equal(t, 0, carts.Get(ctx, "shopper").Len())
}

func TestNoTransitionLeavesPaymentSucceeded(t *testing.T) {
	rec := &mockReconciler{
		captureEvent: pay.Event{Succeeded: true, CaptureID: "TXN1"},
		orderNumber:  "ORD-000001",
	}
	o, carts := newTestOrchestrator(rec)
	seedCart(t, carts, "shopper")
	ctx := context.Background()

	s, err := o.Begin(ctx, "shopper")
	require.NoError(t, err)
	_, err = s.ConfirmShipping(validShipping())
	require.NoError(t, err)
	_, err = o.ConfirmPayment(ctx, s, "5O190127TN364715T")
	require.NoError(t, err)

	assert.ErrorIs(t, s.EditShipping(), ErrSessionEnded)
	assert.ErrorIs(t, s.PaymentFailed("late"), ErrWrongState)
	assert.ErrorIs(t, s.RetryPayment(), ErrWrongState)
	_, err = o.ConfirmPayment(ctx, s, "5O190127TN364715T")
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Equal(t, StatePaymentSucceeded, s.State())
}
