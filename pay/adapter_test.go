package pay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"toyvault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaymentRequestHappyPath(t *testing.T) {
	items := []models.LineItem{
		{Key: "p1", Title: "Dino Kit", Price: 19.99, Quantity: 2},
		{Key: "p2", Title: "Blocks", Price: 5.00, Quantity: 1},
	}

	req, err := BuildPaymentRequest(items, "USD")
	require.NoError(t, err)

	assert.Equal(t, "44.98", req.Total)
	assert.Equal(t, "USD", req.Currency)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "19.99", req.Items[0].UnitAmount)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "PHYSICAL_GOODS", req.Items[0].Category)
}

func TestBuildPaymentRequestEmptyCart(t *testing.T) {
	_, err := BuildPaymentRequest(nil, "USD")
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestBuildPaymentRequestNonPositiveTotal(t *testing.T) {
	items := []models.LineItem{{Key: "p1", Title: "Freebie", Price: 0, Quantity: 3}}
	_, err := BuildPaymentRequest(items, "USD")
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestBuildPaymentRequestTruncatesLongNames(t *testing.T) {
	items := []models.LineItem{
		{Key: "p1", Title: strings.Repeat("x", 300), Price: 1.50, Quantity: 1},
	}

	req, err := BuildPaymentRequest(items, "USD")
	require.NoError(t, err)
	assert.Len(t, req.Items[0].Name, 127)
}

func TestBuildPaymentRequestTruncationKeepsValidUTF8(t *testing.T) {
	items := []models.LineItem{
		{Key: "p1", Title: strings.Repeat("é", 100), Price: 1.50, Quantity: 1},
	}

	req, err := BuildPaymentRequest(items, "USD")
	require.NoError(t, err)

	name := req.Items[0].Name
	assert.True(t, utf8.ValidString(name))
	assert.LessOrEqual(t, len(name), 127)
	// 127 bytes lands mid-rune for a two-byte rune; the cut backs up to 126.
	assert.Len(t, name, 126)
}

func TestCaptureResultCompleted(t *testing.T) {
	ev := CaptureResult(ProviderCapture{
		OrderID:   "5O190127TN364715T",
		CaptureID: "TXN1",
		PayerID:   "PAYER1",
		Status:    "COMPLETED",
	}, nil)

	assert.True(t, ev.Succeeded)
	assert.False(t, ev.Cancelled)
	assert.Equal(t, "TXN1", ev.CaptureID)
	assert.Equal(t, "PAYER1", ev.PayerID)
}

func TestCaptureResultNonCompletedStatus(t *testing.T) {
	ev := CaptureResult(ProviderCapture{Status: "DECLINED"}, nil)
	assert.False(t, ev.Succeeded)
	assert.NotEmpty(t, ev.Reason)
}

func TestCaptureResultProviderErrorNeverEscapes(t *testing.T) {
	ev := CaptureResult(ProviderCapture{}, errors.New("connection reset"))
	assert.False(t, ev.Succeeded)
	assert.False(t, ev.Cancelled)
	assert.NotEmpty(t, ev.Reason)
	assert.NotContains(t, ev.Reason, "connection reset")
}

func TestCancelledEvent(t *testing.T) {
	ev := CancelledEvent()
	assert.True(t, ev.Cancelled)
	assert.False(t, ev.Succeeded)
	assert.Equal(t, "cancelled", ev.Reason)
}

type mockProvider struct {
	order      ProviderOrder
	capture    ProviderCapture
	createErr  error
	captureErr error
	captured   []string
}

func (m *mockProvider) CreateOrder(_ context.Context, _ PaymentRequest) (ProviderOrder, error) {
	return m.order, m.createErr
}

func (m *mockProvider) CaptureOrder(_ context.Context, orderID string) (ProviderCapture, error) {
	m.captured = append(m.captured, orderID)
	return m.capture, m.captureErr
}

type mockOrderWriter struct {
	created []models.Order
	err     error
}

func (m *mockOrderWriter) Create(_ context.Context, order models.Order) (models.Order, error) {
	if m.err != nil {
		return models.Order{}, m.err
	}
	order.OrderNumber = "ORD-000042"
	m.created = append(m.created, order)
	return order, nil
}

func TestAdapterCreateProviderOrderValidatesFirst(t *testing.T) {
	provider := &mockProvider{}
	a := NewAdapter(provider, &mockOrderWriter{})

	_, err := a.CreateProviderOrder(context.Background(), nil, "USD")
	assert.ErrorIs(t, err, ErrInvalidCart)
	assert.Empty(t, provider.captured)
}

func TestAdapterCaptureMapsProviderError(t *testing.T) {
	provider := &mockProvider{captureErr: errors.New("gateway timeout")}
	a := NewAdapter(provider, &mockOrderWriter{})

	ev := a.Capture(context.Background(), "5O190127TN364715T")
	assert.False(t, ev.Succeeded)
	assert.NotEmpty(t, ev.Reason)
}

func shipping() models.ShippingInfo {
	return models.ShippingInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Address:  "123 Main St",
		City:     "Springfield",
		State:    "IL",
		Zip:      "62704",
		Country:  "USA",
	}
}

func TestPersistOrderSnapshotsItems(t *testing.T) {
	writer := &mockOrderWriter{}
	a := NewAdapter(&mockProvider{}, writer)

	items := []models.LineItem{{Key: "p1", Title: "Dino Kit", Price: 19.99, Quantity: 2}}
	ev := Event{Succeeded: true, CaptureID: "TXN1", PayerID: "PAYER1"}

	num := a.PersistOrder(context.Background(), shipping(), items, "USD", ev)
	assert.Equal(t, "ORD-000042", num)

	require.Len(t, writer.created, 1)
	order := writer.created[0]
	assert.Equal(t, "39.98", order.TotalAmount)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "TXN1", order.PayPalOrderID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Dino Kit", order.Items[0].Title)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestPersistOrderFailureIsSilent(t *testing.T) {
	writer := &mockOrderWriter{err: errors.New("db unavailable")}
	a := NewAdapter(&mockProvider{}, writer)

	items := []models.LineItem{{Key: "p1", Title: "Dino Kit", Price: 19.99, Quantity: 1}}
	num := a.PersistOrder(context.Background(), shipping(), items, "USD", Event{Succeeded: true})

	assert.Equal(t, "", num)
}
