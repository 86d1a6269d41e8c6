package domain

import "github.com/smallbiznis/storewatch/internal/storefront"

// Service normalizes raw storefront orders into the canonical model.
// Normalization never fails: malformed fields degrade to safe defaults.
type Service interface {
	Normalize(raw storefront.RawOrder) Order
	NormalizeAll(raw []storefront.RawOrder) []Order
}
