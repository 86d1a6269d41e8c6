// Package storefront retrieves orders, transactions and products from the
// Shopwire API. Retrieval is strictly sequential: pages are walked one at a
// time and rate-limit responses pause the walk. The client never fails a
// whole retrieval over one bad page; it returns whatever it collected.
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/smallbiznis/storewatch/internal/metrics"
	"go.uber.org/zap"
)

const (
	perPage        = 50
	rateLimitPause = 3 * time.Second
)

// Date bounds a retrieval period, inclusive.
type Date struct {
	From time.Time
	To   time.Time
}

type Client struct {
	baseURL   string
	storeID   string
	token     string
	userAgent string

	http    *http.Client
	log     *zap.Logger
	metrics *metrics.Metrics

	// sleep is swapped in tests to avoid real rate-limit pauses.
	sleep func(ctx context.Context, d time.Duration)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSleep(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

func NewClient(baseURL, storeID, token, userAgent string, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		storeID:   storeID,
		token:     token,
		userAgent: userAgent,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log.Named("storefront.client"),
		metrics:   m,
		sleep:     sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Orders walks the paid, paid+archived and paid+closed filter combinations
// for the period, deduplicating across passes by order id.
func (c *Client) Orders(ctx context.Context, period Date) ([]RawOrder, error) {
	filters := []url.Values{
		{"payment_status": {"paid"}},
		{"payment_status": {"paid"}, "status": {"archived"}},
		{"payment_status": {"paid"}, "status": {"closed"}},
	}

	seen := make(map[string]struct{})
	var all []RawOrder
	for _, filter := range filters {
		pages, err := c.paginate(ctx, "orders", withPeriod(filter, period))
		if err != nil {
			return all, err
		}
		for _, page := range pages {
			var orders []RawOrder
			if err := json.Unmarshal(page, &orders); err != nil {
				c.log.Warn("undecodable orders page skipped", zap.Error(err))
				continue
			}
			for _, o := range orders {
				id := o.ID.String()
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				all = append(all, o)
			}
		}
	}
	return all, nil
}

// Transactions retrieves the processor settlement feed for the period.
func (c *Client) Transactions(ctx context.Context, period Date) ([]RawTransaction, error) {
	pages, err := c.paginate(ctx, "transactions", withPeriod(url.Values{}, period))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var all []RawTransaction
	for _, page := range pages {
		var txs []RawTransaction
		if err := json.Unmarshal(page, &txs); err != nil {
			c.log.Warn("undecodable transactions page skipped", zap.Error(err))
			continue
		}
		for _, tx := range txs {
			id := tx.ID.String()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			all = append(all, tx)
		}
	}
	return all, nil
}

// Products retrieves the full product catalog with variant stock.
func (c *Client) Products(ctx context.Context) ([]RawProduct, error) {
	pages, err := c.paginate(ctx, "products", url.Values{})
	if err != nil {
		return nil, err
	}

	var all []RawProduct
	for _, page := range pages {
		var products []RawProduct
		if err := json.Unmarshal(page, &products); err != nil {
			c.log.Warn("undecodable products page skipped", zap.Error(err))
			continue
		}
		all = append(all, products...)
	}
	return all, nil
}

// paginate walks one resource page by page. Rate limiting pauses and
// retries the same page; 404/422 end the walk quietly; any other
// non-success status ends the walk with a warning. The pages collected so
// far are always returned.
func (c *Client) paginate(ctx context.Context, resource string, params url.Values) ([]json.RawMessage, error) {
	var pages []json.RawMessage
	for page := 1; ; {
		body, status, err := c.get(ctx, resource, params, page)
		if err != nil {
			return pages, err
		}
		if c.metrics != nil {
			c.metrics.ObserveUpstream(resource, status)
		}

		switch {
		case status == http.StatusTooManyRequests:
			c.log.Warn("rate limited, pausing", zap.String("resource", resource), zap.Int("page", page))
			if c.metrics != nil {
				c.metrics.ObserveRetry()
			}
			c.sleep(ctx, rateLimitPause)
			if ctx.Err() != nil {
				return pages, ctx.Err()
			}
			continue
		case status == http.StatusNotFound || status == http.StatusUnprocessableEntity:
			return pages, nil
		case status != http.StatusOK:
			c.log.Warn("unexpected upstream status",
				zap.String("resource", resource),
				zap.Int("status", status),
			)
			return pages, nil
		}

		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			c.log.Warn("malformed upstream page", zap.String("resource", resource), zap.Error(err))
			return pages, nil
		}
		if len(items) == 0 {
			return pages, nil
		}

		pages = append(pages, json.RawMessage(body))
		if len(items) < perPage {
			return pages, nil
		}
		page++
	}
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, page int) ([]byte, int, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("per_page", fmt.Sprint(perPage))
	query.Set("page", fmt.Sprint(page))

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.storeID, resource, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authentication", "bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func withPeriod(params url.Values, period Date) url.Values {
	out := url.Values{}
	for key, values := range params {
		out[key] = values
	}
	out.Set("created_at_min", period.From.Format("2006-01-02")+"T00:00:00-03:00")
	out.Set("created_at_max", period.To.Format("2006-01-02")+"T23:59:59-03:00")
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
