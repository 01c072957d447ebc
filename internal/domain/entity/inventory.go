package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord is one council/item inventory line as reported by the core
// API. Quantities are whole units; TotalValue is the monetary valuation the
// core API computes from receipt costs.
type InventoryRecord struct {
	ItemID            int64
	ItemName          string
	ItemCode          string
	Category          string
	CouncilID         int64
	CouncilName       string
	QuantityOnHand    int64
	MinimumStockLevel int64
	TotalValue        decimal.Decimal
	LastUpdated       time.Time
}

// IsOutOfStock reports a zero available quantity.
func (r InventoryRecord) IsOutOfStock() bool { return r.QuantityOnHand <= 0 }

// IsLowStock reports a positive quantity at or below the configured minimum.
// A line with no configured minimum is never low.
func (r InventoryRecord) IsLowStock() bool {
	return r.QuantityOnHand > 0 && r.MinimumStockLevel > 0 && r.QuantityOnHand <= r.MinimumStockLevel
}

// StockStatus is the display label used in tables and CSV exports.
func (r InventoryRecord) StockStatus() string {
	switch {
	case r.IsOutOfStock():
		return "Out of Stock"
	case r.IsLowStock():
		return "Low Stock"
	default:
		return "In Stock"
	}
}
