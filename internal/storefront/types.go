package storefront

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Raw feed payloads as delivered by the Shopwire API. Fields that arrive in
// more than one shape across feed versions are kept as json.RawMessage and
// decoded through the tolerant helpers below; nothing in this package errors
// on malformed input, it degrades to zero values.

type RawOrder struct {
	ID              json.Number     `json:"id"`
	Number          json.Number     `json:"number"`
	CreatedAt       string          `json:"created_at"`
	ContactName     string          `json:"contact_name"`
	ContactPhone    string          `json:"contact_phone"`
	Total           Number          `json:"total"`
	Discount        Number          `json:"discount"`
	ShippingCost    Number          `json:"shipping_cost_customer"`
	ShippingOwner   Number          `json:"shipping_cost_owner"`
	ShippingStatus  string          `json:"shipping_status"`
	AppID           json.Number     `json:"app_id"`
	Status          string          `json:"status"`
	Gateway         string          `json:"gateway"`
	GatewayCost     Number          `json:"gateway_cost"`
	PaymentDetails  json.RawMessage `json:"payment_details"`
	Products        []RawLine       `json:"products"`
}

type RawLine struct {
	Name     json.RawMessage `json:"name"`
	Quantity Number          `json:"quantity"`
	Cost     Number          `json:"cost"`
	Price    Number          `json:"price"`
}

type RawTransaction struct {
	ID            json.Number `json:"id"`
	CreatedAt     string      `json:"created_at"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	Installments  Number      `json:"installments"`
	Amount        Number      `json:"amount"`
	OrderID       json.Number `json:"order_id"`
}

type RawProduct struct {
	Name     json.RawMessage `json:"name"`
	Variants []RawVariant    `json:"variants"`
}

type RawVariant struct {
	SKU    string            `json:"sku"`
	Stock  *float64          `json:"stock"`
	Price  Number            `json:"price"`
	Values []json.RawMessage `json:"values"`
}

// PaymentBreakdown is the canonical shape of an order's payment detail,
// regardless of whether the feed sent a single gateway breakdown or a list
// of them (split payment). Cost fields are summed across entries.
type PaymentBreakdown struct {
	Method        string
	Installments  int
	CardBrand     string
	Commission    float64
	FinancingCost float64
	OtherCost     float64
}

type rawBreakdown struct {
	Method        string `json:"method"`
	Gateway       string `json:"gateway"`
	Installments  Number `json:"installments"`
	CardBrand     string `json:"credit_card_company"`
	Commission    Number `json:"commission_cost"`
	FinancingCost Number `json:"financing_cost"`
	OtherCost     Number `json:"other_cost"`
}

// DecodePaymentDetails normalizes the polymorphic payment_details field.
// A mapping decodes as one entry, a sequence as several; anything else
// yields an empty breakdown carrying the order-level gateway code.
func DecodePaymentDetails(raw json.RawMessage, gateway string) PaymentBreakdown {
	out := PaymentBreakdown{Method: strings.ToLower(strings.TrimSpace(gateway)), Installments: 1}

	entries := decodeBreakdowns(raw)
	if len(entries) == 0 {
		return out
	}

	for i, e := range entries {
		method := strings.ToLower(strings.TrimSpace(e.Method))
		if method == "" {
			method = strings.ToLower(strings.TrimSpace(e.Gateway))
		}
		if i == 0 {
			if method != "" {
				out.Method = method
			}
			if n := int(e.Installments.Or(0)); n >= 1 {
				out.Installments = n
			}
			out.CardBrand = strings.TrimSpace(e.CardBrand)
		}
		out.Commission += e.Commission.Or(0)
		out.FinancingCost += e.FinancingCost.Or(0)
		out.OtherCost += e.OtherCost.Or(0)
	}
	return out
}

func decodeBreakdowns(raw json.RawMessage) []rawBreakdown {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '{':
		var one rawBreakdown
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil
		}
		return []rawBreakdown{one}
	case '[':
		var many []rawBreakdown
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return nil
		}
		return many
	default:
		return nil
	}
}

// ResolveLocalized resolves a product or variant name that may be either a
// plain string or a locale→string mapping. The default locale wins; when it
// is absent the first entry of the mapping is used. Map iteration order in
// Go is randomized, so that fallback is not deterministic across runs; the
// upstream feed behaves the same way and stakeholders have been flagged.
func ResolveLocalized(raw json.RawMessage, defaultLocale string) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	}
	var byLocale map[string]string
	if err := json.Unmarshal(trimmed, &byLocale); err != nil {
		return ""
	}
	if v, ok := byLocale[defaultLocale]; ok && v != "" {
		return v
	}
	for _, v := range byLocale {
		if v != "" {
			return v
		}
	}
	return ""
}

// Number tolerates numeric, quoted-numeric, null and malformed values.
// Decoding never fails; malformed input is remembered as "not a number".
type Number struct {
	value float64
	valid bool
}

func NumberOf(v float64) Number { return Number{value: v, valid: true} }

func (n *Number) UnmarshalJSON(b []byte) error {
	n.value, n.valid = 0, false
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	s := string(trimmed)
	if trimmed[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(trimmed, &unquoted); err != nil {
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n.value, n.valid = parsed, true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

// Or returns the decoded value, or def when the field was absent or malformed.
func (n Number) Or(def float64) float64 {
	if !n.valid {
		return def
	}
	return n.value
}

func (n Number) Valid() bool { return n.valid }
