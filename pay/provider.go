package pay

import "context"

// PaymentRequest is the provider-agnostic description of a transaction.
type PaymentRequest struct {
	Total    string        `json:"total"`
	Currency string        `json:"currency"`
	Items    []RequestItem `json:"items"`
}

// RequestItem is one purchase-unit line sent to the provider.
type RequestItem struct {
	Name       string `json:"name"`
	UnitAmount string `json:"unitAmount"`
	Quantity   int    `json:"quantity"`
	Category   string `json:"category"`
}

// ProviderOrder is the provider's handle for an authorized-but-uncaptured
// payment session.
type ProviderOrder struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ApproveURL string `json:"approveUrl,omitempty"`
}

// ProviderCapture is the provider's answer to a capture attempt. Only the
// "COMPLETED" status counts as money moved.
type ProviderCapture struct {
	OrderID   string `json:"orderId"`
	CaptureID string `json:"captureId"`
	PayerID   string `json:"payerId"`
	Status    string `json:"status"`
}

// Provider is the payment processor boundary. The adapter is the only code
// allowed to call it.
type Provider interface {
	CreateOrder(ctx context.Context, req PaymentRequest) (ProviderOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (ProviderCapture, error)
}
