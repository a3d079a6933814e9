package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client talks to the catalog/order API. Every failure — transport error,
// non-200 status, malformed body — is absorbed into an empty result so
// callers can apply their fallback policy instead of handling errors.
// Each call is a single best-effort GET, no retries.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the catalog API at baseURL. The timeout
// bounds every request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// FetchUserOrders returns the user's order history, or an empty slice if
// the catalog API is unreachable or returns anything unexpected.
func (c *Client) FetchUserOrders(ctx context.Context, userID string) []Order {
	endpoint := fmt.Sprintf("%s/api/orders/user/%s", c.baseURL, url.PathEscape(userID))

	var orders []Order
	if err := c.getJSON(ctx, endpoint, &orders); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("catalog: failed to fetch user orders")
		return nil
	}
	return orders
}

// FetchProducts returns products, filtered by category when category is
// non-empty. Empty slice on any failure.
func (c *Client) FetchProducts(ctx context.Context, category string) []Product {
	endpoint := c.baseURL + "/api/products"
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	var products []Product
	if err := c.getJSON(ctx, endpoint, &products); err != nil {
		log.Warn().Err(err).Str("category", category).Msg("catalog: failed to fetch products")
		return nil
	}
	return products
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	// One connection per call, no pooling guarantee needed.
	req.Close = true

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
