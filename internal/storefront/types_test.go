package storefront

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePaymentDetails_Object(t *testing.T) {
	b := DecodePaymentDetails(json.RawMessage(`{
		"method": "credit_card",
		"installments": 6,
		"credit_card_company": "visa",
		"commission_cost": "20727.5",
		"financing_cost": 97776
	}`), "Pago Shopwire")

	assert.Equal(t, "credit_card", b.Method)
	assert.Equal(t, 6, b.Installments)
	assert.Equal(t, "visa", b.CardBrand)
	assert.Equal(t, 20727.5, b.Commission)
	assert.Equal(t, 97776.0, b.FinancingCost)
}

func TestDecodePaymentDetails_ListSumsCosts(t *testing.T) {
	b := DecodePaymentDetails(json.RawMessage(`[
		{"method": "credit_card", "installments": 3, "commission_cost": 100},
		{"gateway": "debit_card", "commission_cost": 50, "other_cost": 5}
	]`), "gw")

	// First entry decides method and installments.
	assert.Equal(t, "credit_card", b.Method)
	assert.Equal(t, 3, b.Installments)
	assert.Equal(t, 150.0, b.Commission)
	assert.Equal(t, 5.0, b.OtherCost)
}

func TestDecodePaymentDetails_FallsBackToGateway(t *testing.T) {
	for _, raw := range []string{``, `null`, `"text"`, `42`, `[`} {
		b := DecodePaymentDetails(json.RawMessage(raw), " Efectivo ")
		assert.Equal(t, "efectivo", b.Method, "input %q", raw)
		assert.Equal(t, 1, b.Installments)
		assert.Zero(t, b.Commission)
	}
}

func TestDecodePaymentDetails_EntryGatewayFallback(t *testing.T) {
	b := DecodePaymentDetails(json.RawMessage(`{"gateway": "Offus", "installments": 0}`), "outer")
	assert.Equal(t, "offus", b.Method)
	// Non-positive installments floor at one.
	assert.Equal(t, 1, b.Installments)
}

func TestResolveLocalized(t *testing.T) {
	assert.Equal(t, "Taza", ResolveLocalized(json.RawMessage(`{"es":"Taza","en":"Mug"}`), "es"))
	assert.Equal(t, "Mug", ResolveLocalized(json.RawMessage(`{"en":"Mug"}`), "es"))
	assert.Equal(t, "Plain", ResolveLocalized(json.RawMessage(`"Plain"`), "es"))
	assert.Equal(t, "", ResolveLocalized(json.RawMessage(`123`), "es"))
	assert.Equal(t, "", ResolveLocalized(nil, "es"))
}

func TestNumber_TolerantDecoding(t *testing.T) {
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{
		"a": 12.5,
		"b": "99.9",
		"c": "not a number",
		"d": null,
		"e": ""
	}`), &payload)
	assert.NoError(t, err)

	assert.Equal(t, 12.5, payload.A.Or(0))
	assert.True(t, payload.A.Valid())
	assert.Equal(t, 99.9, payload.B.Or(0))
	assert.False(t, payload.C.Valid())
	assert.Equal(t, -1.0, payload.C.Or(-1))
	assert.False(t, payload.D.Valid())
	assert.False(t, payload.E.Valid())
}
