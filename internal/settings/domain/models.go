// Package domain holds the operator-saved configuration: named settings,
// the product cost book, and saved cash overrides. This is the only state
// that survives a restart; everything else is re-derived from the feeds.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Setting is one named configuration value, stored as text.
type Setting struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Key       string       `gorm:"type:text;not null;uniqueIndex"`
	Value     string       `gorm:"type:text;not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

func (Setting) TableName() string { return "settings" }

// ProductCost is an operator-entered unit cost for a product whose feed
// carries none.
type ProductCost struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Product   string       `gorm:"type:text;not null;uniqueIndex"`
	UnitCost  float64      `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

func (ProductCost) TableName() string { return "product_costs" }

// CashOverride is a saved manual-cash mark for an order.
type CashOverride struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	OrderID   string       `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time    `gorm:"not null"`
}

func (CashOverride) TableName() string { return "cash_overrides" }

var (
	ErrInvalidKey     = errors.New("invalid_key")
	ErrInvalidProduct = errors.New("invalid_product")
	ErrInvalidCost    = errors.New("invalid_cost")
)

// Service is the persistence surface for manually-entered configuration.
// Set operations are idempotent upserts.
type Service interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)

	ProductCosts(ctx context.Context) (map[string]float64, error)
	SetProductCost(ctx context.Context, product string, unitCost float64) error
	DeleteProductCost(ctx context.Context, product string) error

	SavedOverrides(ctx context.Context) ([]string, error)
	SaveOverrides(ctx context.Context, orderIDs []string) error
}
