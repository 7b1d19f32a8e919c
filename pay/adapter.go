package pay

import (
	"context"
	"errors"
	"log"
	"time"

	"toyvault/models"
	"toyvault/utils"
)

const (
	// Providers cap line-item names; PayPal's limit is 127 characters.
	maxItemNameLen = 127

	categoryPhysicalGoods = "PHYSICAL_GOODS"
	statusCompleted       = "COMPLETED"
)

var (
	ErrInvalidCart = errors.New("cart is empty or total is not positive")
)

// Event is the typed outcome the orchestrator consumes. Exactly one of
// Succeeded / Cancelled / plain failure holds; Reason is human-readable.
type Event struct {
	Succeeded bool   `json:"succeeded"`
	Cancelled bool   `json:"cancelled"`
	CaptureID string `json:"captureId,omitempty"`
	PayerID   string `json:"payerId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// OrderWriter persists the durable order record.
type OrderWriter interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
}

// Adapter translates local cart state into provider requests and provider
// results back into orchestrator events. It never lets a raw provider error
// escape.
type Adapter struct {
	provider Provider
	orders   OrderWriter
}

func NewAdapter(provider Provider, orders OrderWriter) *Adapter {
	return &Adapter{provider: provider, orders: orders}
}

// BuildPaymentRequest turns the cart lines into a provider-agnostic request.
// Fails with ErrInvalidCart before any network call when there is nothing to
// charge.
func BuildPaymentRequest(items []models.LineItem, currency string) (PaymentRequest, error) {
	if len(items) == 0 {
		return PaymentRequest{}, ErrInvalidCart
	}

	var total float64
	reqItems := make([]RequestItem, 0, len(items))
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
		reqItems = append(reqItems, RequestItem{
			Name:       utils.Truncate(it.Title, maxItemNameLen),
			UnitAmount: utils.FormatAmount(it.Price),
			Quantity:   it.Quantity,
			Category:   categoryPhysicalGoods,
		})
	}
	if total <= 0 {
		return PaymentRequest{}, ErrInvalidCart
	}

	return PaymentRequest{
		Total:    utils.FormatAmount(total),
		Currency: currency,
		Items:    reqItems,
	}, nil
}

// CreateProviderOrder builds the payment request and opens a payment session
// with the provider.
func (a *Adapter) CreateProviderOrder(ctx context.Context, items []models.LineItem, currency string) (ProviderOrder, error) {
	req, err := BuildPaymentRequest(items, currency)
	if err != nil {
		return ProviderOrder{}, err
	}
	return a.provider.CreateOrder(ctx, req)
}

// Capture asks the provider to capture the approved order and maps the result
// to an Event. All provider errors are swallowed into failure events.
func (a *Adapter) Capture(ctx context.Context, providerOrderID string) Event {
	capture, err := a.provider.CaptureOrder(ctx, providerOrderID)
	return CaptureResult(capture, err)
}

// CaptureResult maps a provider response to the typed outcome. Only a
// "COMPLETED" status is success; everything else, errors included, becomes a
// retryable failure.
func CaptureResult(capture ProviderCapture, err error) Event {
	if err != nil {
		log.Println("payment capture error:", err)
		return Event{Reason: "Payment failed. Please try again."}
	}
	if capture.Status != statusCompleted {
		log.Println("payment capture not completed, status:", capture.Status)
		return Event{Reason: "Payment was not completed. Please try again."}
	}
	return Event{
		Succeeded: true,
		CaptureID: capture.CaptureID,
		PayerID:   capture.PayerID,
	}
}

// CancelledEvent is the typed outcome for a user-initiated cancellation.
func CancelledEvent() Event {
	return Event{Cancelled: true, Reason: "cancelled"}
}

// PersistOrder writes the order record after a successful capture and returns
// the generated order number. Persistence is best-effort bookkeeping: the
// money has already moved, so a failure here is logged and an empty order
// number returned, never surfaced as a payment failure.
func (a *Adapter) PersistOrder(ctx context.Context, shipping models.ShippingInfo, items []models.LineItem, currency string, ev Event) string {
	snapshot := make([]models.OrderItem, 0, len(items))
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
		snapshot = append(snapshot, models.OrderItem{
			ID:       it.Key,
			Title:    it.Title,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	order := models.Order{
		Email:         shipping.Email,
		FullName:      shipping.FullName,
		Address:       shipping.Address,
		City:          shipping.City,
		State:         shipping.State,
		Zip:           shipping.Zip,
		Country:       shipping.Country,
		Items:         snapshot,
		TotalAmount:   utils.FormatAmount(total),
		Currency:      currency,
		PayPalOrderID: ev.CaptureID,
		PayPalPayerID: ev.PayerID,
		Status:        "completed",
		CreatedAt:     time.Now(),
	}

	created, err := a.orders.Create(ctx, order)
	if err != nil {
		log.Println("order persistence failed after successful payment:", err)
		return ""
	}
	return created.OrderNumber
}
