package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func noSleep(ctx context.Context, d time.Duration) {}

func testPeriod() Date {
	return Date{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "123", "token", "test-agent", zap.NewNop(), nil,
		WithHTTPClient(srv.Client()),
		WithSleep(noSleep),
	)
	return c, srv
}

func ordersPage(ids ...int) string {
	items := make([]string, 0, len(ids))
	for _, id := range ids {
		items = append(items, fmt.Sprintf(`{"id": %d, "total": "100"}`, id))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func fullPage(startID int) string {
	ids := make([]int, perPage)
	for i := range ids {
		ids[i] = startID + i
	}
	return ordersPage(ids...)
}

func TestOrders_PaginatesUntilShortPage(t *testing.T) {
	var pagesServed []int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bearer token", r.Header.Get("Authentication"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, strconv.Itoa(perPage), r.URL.Query().Get("per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		// Only the bare paid filter returns anything.
		if r.URL.Query().Get("status") != "" {
			fmt.Fprint(w, "[]")
			return
		}
		pagesServed = append(pagesServed, page)
		switch page {
		case 1:
			fmt.Fprint(w, fullPage(1))
		case 2:
			fmt.Fprint(w, ordersPage(1000, 1001))
		default:
			fmt.Fprint(w, "[]")
		}
	})

	orders, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.Len(t, orders, perPage+2)
	assert.Equal(t, []int{1, 2}, pagesServed)
}

func TestOrders_DeduplicatesAcrossFilterPasses(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Every filter combination returns the same two orders plus one
		// unique to the archived pass.
		if r.URL.Query().Get("status") == "archived" {
			fmt.Fprint(w, ordersPage(1, 2, 3))
			return
		}
		fmt.Fprint(w, ordersPage(1, 2))
	})

	orders, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestPaginate_RateLimitRetriesSamePage(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "" {
			fmt.Fprint(w, "[]")
			return
		}
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, ordersPage(7))
	})

	orders, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "7", orders[0].ID.String())
}

func TestPaginate_NotFoundEndsWalkQuietly(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	orders, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPaginate_ServerErrorReturnsPartial(t *testing.T) {
	var page1Served bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" && !page1Served {
			page1Served = true
			fmt.Fprint(w, fullPage(1))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	orders, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	// The first full page survives even though page two failed.
	assert.Len(t, orders, perPage)
}

func TestTransactions_DedupeAndDecode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/123/transactions")
		fmt.Fprint(w, `[
			{"id": 1, "status": "paid", "order_id": 10},
			{"id": 1, "status": "paid", "order_id": 10},
			{"id": 2, "status": "pending", "order_id": 11}
		]`)
	})

	txs, err := client.Transactions(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestProducts_CollectsAllPages(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/123/products")
		fmt.Fprint(w, `[{"name": "Remera", "variants": [{"sku": "R-1", "stock": 4}]}]`)
	})

	products, err := client.Products(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Len(t, products[0].Variants, 1)
}

func TestPaginate_PeriodBoundsInQuery(t *testing.T) {
	var sawBounds bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("created_at_min") == "2026-08-01T00:00:00-03:00" &&
			r.URL.Query().Get("created_at_max") == "2026-08-31T23:59:59-03:00" {
			sawBounds = true
		}
		fmt.Fprint(w, "[]")
	})

	_, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.True(t, sawBounds)
}

func TestPaginate_MalformedPageReturnsCollected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not": "a list"}`)
	})

	orders, err := client.Orders(context.Background(), testPeriod())
	assert.NoError(t, err)
	assert.Empty(t, orders)
}
