// Package export renders reports as flat delimited text with fixed,
// documented column orders, and parses them back. Values round-trip
// exactly; currency display formatting is the presentation layer's job.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	inventorydomain "github.com/smallbiznis/storewatch/internal/inventory/domain"
	recdomain "github.com/smallbiznis/storewatch/internal/reconciliation/domain"
	reportdomain "github.com/smallbiznis/storewatch/internal/report/domain"
	velocitydomain "github.com/smallbiznis/storewatch/internal/velocity/domain"
)

// Table is a rendered report: a header row and data rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Write emits the table as CSV.
func (t Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Parse reads a table back from CSV. The first row is the header.
func Parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	return Table{Columns: records[0], Rows: records[1:]}, nil
}

var ordersColumns = []string{
	"order", "date", "customer", "method", "installments", "gross",
	"discount", "shipping_cost", "commission", "fee_pct", "net",
	"product_cost", "margin", "margin_pct", "shipping_status", "products",
	"quantity", "channel", "status",
}

func Orders(orders []feesdomain.AnnotatedOrder) Table {
	t := Table{Columns: ordersColumns, Rows: make([][]string, 0, len(orders))}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{
			o.Number,
			o.Date,
			o.Customer,
			o.Method,
			strconv.Itoa(o.Installments),
			num(o.Gross),
			num(o.Discount),
			num(o.ShippingCost),
			num(o.Fees.Commission),
			num(o.Fees.Rate * 100),
			num(o.Fees.Net),
			num(o.ProductCost()),
			num(o.Fees.Margin),
			num(o.Fees.MarginPct),
			o.ShippingStatus,
			strings.Join(productNames(o), " / "),
			strconv.Itoa(o.Quantity()),
			o.Channel,
			o.Status,
		})
	}
	return t
}

var methodsColumns = []string{"method", "orders", "gross", "commission", "net", "cost_pct"}

func Methods(summaries []reportdomain.MethodSummary) Table {
	t := Table{Columns: methodsColumns, Rows: make([][]string, 0, len(summaries))}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			s.Method,
			strconv.Itoa(s.Orders),
			num(s.Gross),
			num(s.Commission),
			num(s.Net),
			num(s.CostPct),
		})
	}
	return t
}

var reconciliationColumns = []string{
	"order", "date", "customer", "method", "total", "state",
	"status_detail", "transaction_id",
}

func Reconciliation(records []recdomain.Record) Table {
	t := Table{Columns: reconciliationColumns, Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.OrderNumber,
			r.Date,
			r.Customer,
			r.Method,
			num(r.Total),
			string(r.State),
			r.StatusDetail,
			r.TransactionID,
		})
	}
	return t
}

var orphansColumns = []string{
	"transaction_id", "date", "status", "method", "installments", "amount", "order_ref",
}

func Orphans(txs []recdomain.Transaction) Table {
	t := Table{Columns: orphansColumns, Rows: make([][]string, 0, len(txs))}
	for _, tx := range txs {
		t.Rows = append(t.Rows, []string{
			tx.ID,
			tx.Date,
			tx.Status,
			tx.Method,
			strconv.Itoa(tx.Installments),
			num(tx.Amount),
			tx.OrderRef,
		})
	}
	return t
}

var velocityColumns = []string{
	"product", "units_sold", "per_day", "per_week", "per_month", "stock",
	"days_remaining", "stockout_date", "needs_restock", "suggested_qty", "urgency",
}

// Undefined marks projection fields that have no value (unknown stock or
// zero velocity).
const Undefined = "—"

func Velocity(records []velocitydomain.Record) Table {
	t := Table{Columns: velocityColumns, Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		stock := Undefined
		if r.StockKnown {
			stock = num(r.Stock)
		}
		days, stockout := Undefined, Undefined
		if r.DaysKnown {
			days = strconv.Itoa(r.DaysRemaining)
			stockout = r.StockoutDate
		}
		t.Rows = append(t.Rows, []string{
			r.Product,
			strconv.Itoa(r.UnitsSold),
			num(r.PerDay),
			num(r.PerWeek),
			num(r.PerMonth),
			stock,
			days,
			stockout,
			strconv.FormatBool(r.NeedsRestock),
			num(r.SuggestedQty),
			strconv.Itoa(r.Urgency),
		})
	}
	return t
}

var stockColumns = []string{"product", "variant", "sku", "stock", "unlimited", "price"}

func Stock(rows []inventorydomain.Row) Table {
	t := Table{Columns: stockColumns, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		stock := num(r.Stock)
		if r.Unlimited {
			stock = Undefined
		}
		t.Rows = append(t.Rows, []string{
			r.Product,
			r.Variant,
			r.SKU,
			stock,
			strconv.FormatBool(r.Unlimited),
			num(r.Price),
		})
	}
	return t
}

func productNames(o feesdomain.AnnotatedOrder) []string {
	names := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		names = append(names, l.Name)
	}
	return names
}

// num formats floats with the shortest representation that re-parses to the
// same value, which is what makes export/parse a true round trip.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
