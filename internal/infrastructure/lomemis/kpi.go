package lomemis

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// kpiPayload is the flat numeric body of GET /dashboard/kpis. The scope
// message and timestamp are stamped by the aggregator, not the core API.
type kpiPayload struct {
	TotalItems          int64           `json:"totalItems"`
	TotalQuantity       int64           `json:"totalQuantity"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LowStockItems       int64           `json:"lowStockItems"`
	OutOfStockItems     int64           `json:"outOfStockItems"`
	PendingShipments    int64           `json:"pendingShipments"`
	ConfirmedShipments  int64           `json:"confirmedShipments"`
	ActiveDistributions int64           `json:"activeDistributions"`
	CriticalAlerts      int64           `json:"criticalAlerts"`
}

// DashboardKPIs fetches computed KPIs, narrowed to one council when
// councilID is non-nil.
func (c *Client) DashboardKPIs(ctx context.Context, councilID *int64) (entity.KPISnapshot, error) {
	query := url.Values{}
	if councilID != nil {
		query.Set("councilId", strconv.FormatInt(*councilID, 10))
	}

	var p kpiPayload
	if err := c.get(ctx, "/dashboard/kpis", query, &p); err != nil {
		return entity.KPISnapshot{}, err
	}
	return entity.KPISnapshot{
		TotalItems:          p.TotalItems,
		TotalQuantity:       p.TotalQuantity,
		TotalInventoryValue: p.TotalInventoryValue,
		LowStockItems:       p.LowStockItems,
		OutOfStockItems:     p.OutOfStockItems,
		PendingShipments:    p.PendingShipments,
		ConfirmedShipments:  p.ConfirmedShipments,
		ActiveDistributions: p.ActiveDistributions,
		CriticalAlerts:      p.CriticalAlerts,
	}, nil
}
