package checkout

import (
	"errors"
	"sync"
	"time"

	"toyvault/models"
)

// State is one step of the checkout flow. Payment is only interactive in
// StateAwaitingPayment; StatePaymentSucceeded is terminal.
type State string

const (
	StateEnteringShipping State = "entering_shipping"
	StateAwaitingPayment  State = "awaiting_payment"
	StateCapturing        State = "capturing"
	StatePaymentSucceeded State = "payment_succeeded"
	StatePaymentFailed    State = "payment_failed"
)

var (
	ErrWrongState   = errors.New("operation not allowed in current checkout state")
	ErrSessionEnded = errors.New("checkout session already completed")
)

// Session is the per-checkout state machine. Shipping confirmation strictly
// precedes payment capture; cart clearing strictly follows payment success.
type Session struct {
	mu sync.Mutex

	ID     string
	CartID string

	state       State
	shipping    models.ShippingInfo
	orderNumber string
	captureID   string
	payerID     string
	failReason  string

	createdAt time.Time
	updatedAt time.Time
}

func newSession(id, cartID string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CartID:    cartID,
		state:     StateEnteringShipping,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Shipping returns the entered address values, valid or not, so an edit can
// repopulate the form.
func (s *Session) Shipping() models.ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

// ConfirmShipping validates every field together. On success the machine
// moves straight to AwaitingPayment; any failing field keeps it in
// EnteringShipping with all messages reported.
func (s *Session) ConfirmShipping(info models.ShippingInfo) (FieldErrors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEnteringShipping {
		return nil, ErrWrongState
	}

	fieldErrs := ValidateShipping(&info)
	s.shipping = info
	s.touch()
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	// Shipping confirmation advances straight to AwaitingPayment; the
	// payment UI is interactive from here on.
	s.state = StateAwaitingPayment
	return nil, nil
}

// EditShipping returns to address entry, keeping the entered values. Allowed
// at any point before payment success.
func (s *Session) EditShipping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitingPayment, StatePaymentFailed:
		s.state = StateEnteringShipping
		s.touch()
		return nil
	case StatePaymentSucceeded:
		return ErrSessionEnded
	default:
		return ErrWrongState
	}
}

// CanCapture reports whether a payment capture may be attempted now.
func (s *Session) CanCapture() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAwaitingPayment
}

// beginCapture atomically claims the capture step. Exactly one caller wins
// per payment attempt; everyone else gets ErrWrongState before any provider
// call is made.
func (s *Session) beginCapture() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment {
		return ErrWrongState
	}
	s.state = StateCapturing
	s.touch()
	return nil
}

// PaymentSucceeded records the captured payment and the (possibly empty)
// order number. Terminal. Only the caller that won beginCapture can get here.
func (s *Session) PaymentSucceeded(captureID, payerID, orderNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCapturing {
		return ErrWrongState
	}
	s.state = StatePaymentSucceeded
	s.captureID = captureID
	s.payerID = payerID
	s.orderNumber = orderNumber
	s.failReason = ""
	s.touch()
	return nil
}

// PaymentFailed records a retryable failure (or a user cancellation, reason
// "cancelled"). The cart is untouched. Reachable from AwaitingPayment
// (cancellation before capture) and from Capturing (capture came back bad).
func (s *Session) PaymentFailed(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment && s.state != StateCapturing {
		return ErrWrongState
	}
	s.state = StatePaymentFailed
	s.failReason = reason
	s.touch()
	return nil
}

// RetryPayment re-enters AwaitingPayment after a failure.
func (s *Session) RetryPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaymentFailed {
		return ErrWrongState
	}
	s.state = StateAwaitingPayment
	s.failReason = ""
	s.touch()
	return nil
}

// Snapshot is the JSON view of a session returned to the storefront.
type Snapshot struct {
	ID          string              `json:"id"`
	State       State               `json:"state"`
	Shipping    models.ShippingInfo `json:"shipping"`
	OrderNumber string              `json:"orderNumber,omitempty"`
	FailReason  string              `json:"failReason,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		State:       s.state,
		Shipping:    s.shipping,
		OrderNumber: s.orderNumber,
		FailReason:  s.failReason,
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
