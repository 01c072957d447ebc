package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPISnapshot is a point-in-time aggregate of inventory health for one data
// scope. Snapshots are always replaced whole; they are never merged field by
// field into a previous snapshot.
type KPISnapshot struct {
	TotalItems          int64
	TotalQuantity       int64
	LowStockItems       int64
	OutOfStockItems     int64
	PendingShipments    int64
	ConfirmedShipments  int64
	ActiveDistributions int64
	// CriticalAlerts is LowStockItems + OutOfStockItems. In district
	// aggregation it is recomputed from the summed parts rather than summed
	// itself, so per-council alert fields combined differently by the core
	// API cannot be double-counted.
	CriticalAlerts      int64
	TotalInventoryValue decimal.Decimal
	ScopeMessage        string
	LastUpdated         time.Time
}
