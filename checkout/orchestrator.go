package checkout

import (
	"context"
	"log"
	"sync"
	"time"

	"toyvault/cart"
	"toyvault/models"
	"toyvault/pay"
	"toyvault/utils"

	"github.com/google/uuid"
)

// Reconciler is what the orchestrator needs from the reconciliation adapter.
// Implemented by pay.Adapter; mocked in tests.
type Reconciler interface {
	CreateProviderOrder(ctx context.Context, items []models.LineItem, currency string) (pay.ProviderOrder, error)
	Capture(ctx context.Context, providerOrderID string) pay.Event
	PersistOrder(ctx context.Context, shipping models.ShippingInfo, items []models.LineItem, currency string, ev pay.Event) string
}

// Notifier receives a best-effort ping when an order completes. The admin
// live feed hangs off this.
type Notifier interface {
	NotifyOrder(orderNumber, total string)
}

// Idle checkout sessions are expired so an abandoned payment step cannot pin
// a session forever.
const sessionIdleTimeout = 30 * time.Minute

// Orchestrator sequences shoppers through shipping confirmation and payment.
type Orchestrator struct {
	carts      *cart.Manager
	reconciler Reconciler
	notifier   Notifier
	currency   string

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewOrchestrator(carts *cart.Manager, reconciler Reconciler, currency string) *Orchestrator {
	o := &Orchestrator{
		carts:      carts,
		reconciler: reconciler,
		currency:   currency,
		sessions:   make(map[string]*Session),
	}
	go o.expireLoop()
	return o
}

// SetNotifier attaches the optional order broadcast target.
func (o *Orchestrator) SetNotifier(n Notifier) {
	o.notifier = n
}

// Begin starts a checkout session for the cart. An empty cart refuses
// checkout entirely.
func (o *Orchestrator) Begin(ctx context.Context, cartID string) (*Session, error) {
	store := o.carts.Get(ctx, cartID)
	if store.Len() == 0 || store.Total() <= 0 {
		return nil, pay.ErrInvalidCart
	}

	s := newSession(uuid.NewString(), cartID)
	o.mu.Lock()
	o.sessions[s.ID] = s
	o.mu.Unlock()
	return s, nil
}

// Session returns the live session for id, or nil.
func (o *Orchestrator) Session(id string) *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sessions[id]
}

// CreatePaymentSession opens the provider payment session for the cart.
// Rejected unless the machine is awaiting payment.
func (o *Orchestrator) CreatePaymentSession(ctx context.Context, s *Session) (pay.ProviderOrder, error) {
	if !s.CanCapture() {
		return pay.ProviderOrder{}, ErrWrongState
	}
	items := o.carts.Get(ctx, s.CartID).Items()
	return o.reconciler.CreateProviderOrder(ctx, items, o.currency)
}

// ConfirmPayment drives the capture and applies the resulting event:
// success clears the cart exactly once and persists the order best-effort;
// failure leaves the cart intact and the session retryable.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, s *Session, providerOrderID string) (pay.Event, error) {
	// Claiming the capture step is the concurrency gate: a second confirm
	// for the same session loses here, before any provider call or order
	// write can be duplicated.
	if err := s.beginCapture(); err != nil {
		return pay.Event{}, err
	}

	ev := o.reconciler.Capture(ctx, providerOrderID)
	if !ev.Succeeded {
		if err := s.PaymentFailed(ev.Reason); err != nil {
			return ev, err
		}
		return ev, nil
	}

	store := o.carts.Get(ctx, s.CartID)
	items := store.Items()
	total := store.Total()

	orderNumber := o.reconciler.PersistOrder(ctx, s.Shipping(), items, o.currency, ev)

	if err := s.PaymentSucceeded(ev.CaptureID, ev.PayerID, orderNumber); err != nil {
		return ev, err
	}
	o.carts.Clear(ctx, s.CartID)

	if o.notifier != nil && orderNumber != "" {
		o.notifier.NotifyOrder(orderNumber, utils.FormatAmount(total))
	}
	return ev, nil
}

// Cancel records a user-initiated cancellation of the payment step.
func (o *Orchestrator) Cancel(s *Session) (pay.Event, error) {
	ev := pay.CancelledEvent()
	if err := s.PaymentFailed(ev.Reason); err != nil {
		return ev, err
	}
	return ev, nil
}

func (o *Orchestrator) expireLoop() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-sessionIdleTimeout)
		o.mu.Lock()
		for id, s := range o.sessions {
			if s.idleSince().Before(cutoff) {
				delete(o.sessions, id)
				log.Println("expired idle checkout session", id)
			}
		}
		o.mu.Unlock()
	}
}
