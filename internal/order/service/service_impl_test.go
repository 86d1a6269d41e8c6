package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/smallbiznis/storewatch/internal/storefront"
)

func newTestService() *Service {
	return NewService(zap.NewNop(), "es").(*Service)
}

func TestNormalize_StructuredCreditPayment(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID:          json.Number("12345"),
		Number:      json.Number("1001"),
		CreatedAt:   "2026-08-12T14:03:22+00:00",
		ContactName: "  Maria Lopez ",
		Total:       storefront.NumberOf(500000),
		Gateway:     "Pago Shopwire",
		PaymentDetails: json.RawMessage(`{
			"method": "credit_card",
			"installments": 6,
			"credit_card_company": "visa",
			"commission_cost": 20727,
			"financing_cost": 97776
		}`),
		Products: []storefront.RawLine{
			{Name: json.RawMessage(`{"es":"Campera","en":"Jacket"}`), Quantity: storefront.NumberOf(2), Cost: storefront.NumberOf(30000)},
		},
	}

	o := svc.Normalize(raw)
	assert.Equal(t, "12345", o.ID)
	assert.Equal(t, "1001", o.Number)
	assert.Equal(t, "2026-08-12", o.Date)
	assert.Equal(t, "Maria Lopez", o.Customer)
	assert.Equal(t, "Credito Visa 6c", o.Method)
	assert.Equal(t, 6, o.Installments)
	assert.Equal(t, 500000.0, o.Gross)
	assert.Equal(t, 20727.0, o.ReportedCosts.Commission)
	assert.Equal(t, 97776.0, o.ReportedCosts.Financing)
	assert.Len(t, o.Lines, 1)
	assert.Equal(t, "Campera", o.Lines[0].Name)
	assert.Equal(t, 2, o.Lines[0].Quantity)
	assert.Equal(t, 30000.0, o.Lines[0].UnitCost)
}

func TestNormalize_SplitPaymentSumsCosts(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID: json.Number("7"),
		PaymentDetails: json.RawMessage(`[
			{"method": "credit_card", "installments": 3, "credit_card_company": "mastercard", "commission_cost": 100, "financing_cost": 50},
			{"method": "debit_card", "commission_cost": 40, "other_cost": 10}
		]`),
	}

	o := svc.Normalize(raw)
	// First entry decides the label; costs sum across entries.
	assert.Equal(t, "Credito Mastercard 3c", o.Method)
	assert.Equal(t, 3, o.Installments)
	assert.Equal(t, 140.0, o.ReportedCosts.Commission)
	assert.Equal(t, 50.0, o.ReportedCosts.Financing)
	assert.Equal(t, 10.0, o.ReportedCosts.Other)
}

func TestNormalize_MalformedPaymentDetailsFallsBackToGateway(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID:             json.Number("8"),
		Gateway:        "Efectivo",
		GatewayCost:    storefront.NumberOf(321.5),
		PaymentDetails: json.RawMessage(`"oops"`),
	}

	o := svc.Normalize(raw)
	assert.Equal(t, "Efectivo", o.Method)
	assert.Equal(t, 1, o.Installments)
	// No structured breakdown: aggregate gateway cost stands in.
	assert.Equal(t, 321.5, o.ReportedCosts.Commission)
}

func TestNormalize_DebitLabelCarriesNoInstallments(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID:             json.Number("9"),
		PaymentDetails: json.RawMessage(`{"method":"debit_card","credit_card_company":"MAESTRO"}`),
	}

	o := svc.Normalize(raw)
	assert.Equal(t, "Debito Maestro", o.Method)
	assert.Equal(t, 1, o.Installments)
}

func TestNormalize_UnknownMethodIsTitleCased(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID:             json.Number("10"),
		PaymentDetails: json.RawMessage(`{"method":"bank_transfer"}`),
	}

	o := svc.Normalize(raw)
	assert.Equal(t, "Bank Transfer", o.Method)
}

func TestNormalize_Defaults(t *testing.T) {
	svc := newTestService()

	o := svc.Normalize(storefront.RawOrder{ID: json.Number("11")})
	assert.Equal(t, "11", o.ID)
	// Number falls back to the id so exports always have a reference.
	assert.Equal(t, "11", o.Number)
	assert.Equal(t, "", o.Date)
	assert.Equal(t, DefaultChannel, o.Channel)
	assert.Zero(t, o.Gross)
}

func TestNormalize_DateLayouts(t *testing.T) {
	svc := newTestService()

	for raw, want := range map[string]string{
		"2026-08-12T14:03:22+00:00": "2026-08-12",
		"2026-08-12T14:03:22-0300":  "2026-08-12",
		"2026-08-12 14:03:22":       "2026-08-12",
		"2026-08-12":                "2026-08-12",
		"12/08/2026":                "",
		"not a date":                "",
	} {
		o := svc.Normalize(storefront.RawOrder{ID: json.Number("1"), CreatedAt: raw})
		assert.Equal(t, want, o.Date, "input %q", raw)
	}
}

func TestNormalize_QuantityFloor(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID: json.Number("12"),
		Products: []storefront.RawLine{
			{Name: json.RawMessage(`"A"`), Quantity: storefront.NumberOf(0)},
			{Name: json.RawMessage(`"B"`), Quantity: storefront.NumberOf(-2)},
			{Name: json.RawMessage(`"C"`)},
			{Name: json.RawMessage(`"D"`), Quantity: storefront.NumberOf(3)},
		},
	}

	o := svc.Normalize(raw)
	assert.Equal(t, []int{1, 1, 1, 3}, []int{
		o.Lines[0].Quantity, o.Lines[1].Quantity, o.Lines[2].Quantity, o.Lines[3].Quantity,
	})
}

func TestNormalize_LocalizedNamePrefersDefaultLocale(t *testing.T) {
	svc := newTestService()

	raw := storefront.RawOrder{
		ID: json.Number("13"),
		Products: []storefront.RawLine{
			{Name: json.RawMessage(`{"en":"Mug","es":"Taza"}`)},
			{Name: json.RawMessage(`"Plain"`)},
		},
	}

	o := svc.Normalize(raw)
	assert.Equal(t, "Taza", o.Lines[0].Name)
	assert.Equal(t, "Plain", o.Lines[1].Name)
}

func TestNormalize_ChannelFromAppID(t *testing.T) {
	svc := newTestService()

	o := svc.Normalize(storefront.RawOrder{ID: json.Number("14"), AppID: json.Number("8842")})
	assert.Equal(t, "8842", o.Channel)
}

func TestNormalizeAll_KeepsOrderAndNeverPanics(t *testing.T) {
	svc := newTestService()

	orders := svc.NormalizeAll([]storefront.RawOrder{
		{ID: json.Number("1")},
		{ID: json.Number("2"), PaymentDetails: json.RawMessage(`[{},{}`)},
		{ID: json.Number("3"), Products: []storefront.RawLine{{Name: json.RawMessage(`123`)}}},
	})
	assert.Len(t, orders, 3)
	assert.Equal(t, "1", orders[0].ID)
	assert.Equal(t, "3", orders[2].ID)
}
