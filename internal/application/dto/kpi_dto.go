package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// KPIDTO dashboard KPI snapshot as served to the frontend.
type KPIDTO struct {
	TotalItems          int64           `json:"totalItems"`
	TotalQuantity       int64           `json:"totalQuantity"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LowStockItems       int64           `json:"lowStockItems"`
	OutOfStockItems     int64           `json:"outOfStockItems"`
	PendingShipments    int64           `json:"pendingShipments"`
	ConfirmedShipments  int64           `json:"confirmedShipments"`
	ActiveDistributions int64           `json:"activeDistributions"`
	CriticalAlerts      int64           `json:"criticalAlerts"`
	ScopeMessage        string          `json:"scopeMessage"`
	LastUpdated         time.Time       `json:"lastUpdated"`
}

// FromKPISnapshot converts a domain snapshot.
func FromKPISnapshot(k entity.KPISnapshot) KPIDTO {
	return KPIDTO{
		TotalItems:          k.TotalItems,
		TotalQuantity:       k.TotalQuantity,
		TotalInventoryValue: k.TotalInventoryValue,
		LowStockItems:       k.LowStockItems,
		OutOfStockItems:     k.OutOfStockItems,
		PendingShipments:    k.PendingShipments,
		ConfirmedShipments:  k.ConfirmedShipments,
		ActiveDistributions: k.ActiveDistributions,
		CriticalAlerts:      k.CriticalAlerts,
		ScopeMessage:        k.ScopeMessage,
		LastUpdated:         k.LastUpdated,
	}
}
