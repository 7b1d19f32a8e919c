package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const apiVersion = "2024-01"

// Client relays product writes to the Shopify Admin API so the storefront
// catalog and the Shopify backend stay in sync.
type Client struct {
	domain string
	token  string
	http   *http.Client
}

func NewClient() *Client {
	return &Client{
		domain: os.Getenv("SHOPIFY_STORE_DOMAIN"),
		token:  os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether relay credentials are configured. Admin writes
// skip the relay when they are not.
func (c *Client) Enabled() bool {
	return c.domain != "" && c.token != ""
}

// ProductPayload is the subset of the Shopify product resource we manage.
type ProductPayload struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	BodyHTML    string `json:"body_html,omitempty"`
	Handle      string `json:"handle,omitempty"`
	ProductType string `json:"product_type,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ImagePayload attaches an image by URL or base64 attachment.
type ImagePayload struct {
	Src        string `json:"src,omitempty"`
	Attachment string `json:"attachment,omitempty"`
	Alt        string `json:"alt,omitempty"`
	Position   int    `json:"position,omitempty"`
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("https://%s/admin/api/%s%s", c.domain, apiVersion, path)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(blob)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		blob, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("shopify %s %s: status %d: %s", method, path, resp.StatusCode, blob)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateProduct creates the product and returns its Shopify ID.
func (c *Client) CreateProduct(ctx context.Context, p ProductPayload) (int64, error) {
	var result struct {
		Product ProductPayload `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/products.json", map[string]interface{}{"product": p}, &result); err != nil {
		return 0, err
	}
	return result.Product.ID, nil
}

// UpdateProduct pushes changed fields for an existing product.
func (c *Client) UpdateProduct(ctx context.Context, p ProductPayload) error {
	path := fmt.Sprintf("/products/%d.json", p.ID)
	return c.do(ctx, http.MethodPut, path, map[string]interface{}{"product": p}, nil)
}

// DeleteProduct removes the product from Shopify.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d.json", id), nil, nil)
}

// GetProduct fetches the current Shopify copy of the product.
func (c *Client) GetProduct(ctx context.Context, id int64) (ProductPayload, error) {
	var result struct {
		Product ProductPayload `json:"product"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d.json", id), nil, &result)
	return result.Product, err
}

// UploadImage attaches an image to the product.
func (c *Client) UploadImage(ctx context.Context, productID int64, img ImagePayload) error {
	path := fmt.Sprintf("/products/%d/images.json", productID)
	return c.do(ctx, http.MethodPost, path, map[string]interface{}{"image": img}, nil)
}

// DeleteImage removes one product image.
func (c *Client) DeleteImage(ctx context.Context, productID, imageID int64) error {
	path := fmt.Sprintf("/products/%d/images/%d.json", productID, imageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
