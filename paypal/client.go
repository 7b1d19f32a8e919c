package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"toyvault/pay"
)

// Client talks to the PayPal Orders v2 REST API and satisfies pay.Provider.
type Client struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient() *Client {
	base := os.Getenv("PAYPAL_API_BASE")
	if base == "" {
		base = "https://api-m.sandbox.paypal.com"
	}
	return &Client{
		baseURL:  base,
		clientID: os.Getenv("PAYPAL_CLIENT_ID"),
		secret:   os.Getenv("PAYPAL_CLIENT_SECRET"),
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed: %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	c.accessToken = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}

type amount struct {
	CurrencyCode string     `json:"currency_code"`
	Value        string     `json:"value"`
	Breakdown    *breakdown `json:"breakdown,omitempty"`
}

type breakdown struct {
	ItemTotal money `json:"item_total"`
}

type money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseItem struct {
	Name       string `json:"name"`
	UnitAmount money  `json:"unit_amount"`
	Quantity   string `json:"quantity"`
	Category   string `json:"category"`
}

type purchaseUnit struct {
	Amount amount         `json:"amount"`
	Items  []purchaseItem `json:"items"`
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	Payer struct {
		PayerID string `json:"payer_id"`
	} `json:"payer"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID string `json:"id"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CreateOrder opens a capture-intent order with PayPal.
func (c *Client) CreateOrder(ctx context.Context, req pay.PaymentRequest) (pay.ProviderOrder, error) {
	items := make([]purchaseItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, purchaseItem{
			Name:       it.Name,
			UnitAmount: money{CurrencyCode: req.Currency, Value: it.UnitAmount},
			Quantity:   fmt.Sprintf("%d", it.Quantity),
			Category:   it.Category,
		})
	}

	payload := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount: amount{
				CurrencyCode: req.Currency,
				Value:        req.Total,
				Breakdown: &breakdown{
					ItemTotal: money{CurrencyCode: req.Currency, Value: req.Total},
				},
			},
			Items: items,
		}},
	}

	var resp orderResponse
	if err := c.post(ctx, "/v2/checkout/orders", payload, &resp); err != nil {
		return pay.ProviderOrder{}, err
	}

	order := pay.ProviderOrder{ID: resp.ID, Status: resp.Status}
	for _, link := range resp.Links {
		if link.Rel == "approve" {
			order.ApproveURL = link.Href
		}
	}
	return order, nil
}

// CaptureOrder captures an approved order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (pay.ProviderCapture, error) {
	var resp orderResponse
	if err := c.post(ctx, "/v2/checkout/orders/"+orderID+"/capture", struct{}{}, &resp); err != nil {
		return pay.ProviderCapture{}, err
	}

	capture := pay.ProviderCapture{
		OrderID: resp.ID,
		PayerID: resp.Payer.PayerID,
		Status:  resp.Status,
	}
	if len(resp.PurchaseUnits) > 0 && len(resp.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.CaptureID = resp.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return capture, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("paypal %s returned %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
