package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/shopspring/decimal"
)

// APIError is a non-2xx response from the order API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Catalog is the GET /catalog response.
type Catalog struct {
	Categories []catalog.Option           `json:"categories"`
	Sizes      []catalog.Option           `json:"sizes"`
	Extras     []catalog.Option           `json:"extras"`
	Statuses   []catalog.Option           `json:"statuses"`
	BasePrices map[string]decimal.Decimal `json:"basePrices"`
	ExtraFees  map[string]decimal.Decimal `json:"extraFees"`
}

// Client talks to the order API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL. token, when set, is sent
// as a bearer token so status changes are attributed to the staff member.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListOrders fetches every order.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to status. updatedBy may be empty.
func (c *Client) UpdateStatus(ctx context.Context, id, status, updatedBy string) (Order, error) {
	body := map[string]string{"id": id, "status": status}
	if updatedBy != "" {
		body["updatedBy"] = updatedBy
	}
	var resp struct {
		Message string `json:"message"`
		Order   Order  `json:"order"`
	}
	if err := c.do(ctx, http.MethodPut, "/orders", body, &resp); err != nil {
		return Order{}, fmt.Errorf("update status: %w", err)
	}
	return resp.Order, nil
}

// Catalog fetches the enumerations and price tables.
func (c *Client) Catalog(ctx context.Context) (Catalog, error) {
	var cat Catalog
	if err := c.do(ctx, http.MethodGet, "/catalog", nil, &cat); err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
