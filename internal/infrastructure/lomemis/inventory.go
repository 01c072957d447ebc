package lomemis

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
)

type inventoryRecordPayload struct {
	ItemID            int64           `json:"itemId"`
	ItemName          string          `json:"itemName"`
	ItemCode          string          `json:"itemCode"`
	Category          string          `json:"category"`
	CouncilID         int64           `json:"councilId"`
	CouncilName       string          `json:"councilName"`
	QuantityOnHand    int64           `json:"quantityOnHand"`
	MinimumStockLevel int64           `json:"minimumStockLevel"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	LastUpdated       time.Time       `json:"lastUpdated"`
}

// inventoryListPayload tolerates the inventory|items field aliasing across
// core-API versions.
type inventoryListPayload struct {
	Inventory []inventoryRecordPayload `json:"inventory"`
	Items     []inventoryRecordPayload `json:"items"`
	Total     int64                    `json:"total"`
}

// CouncilInventory lists inventory positions for the effective query.
func (c *Client) CouncilInventory(ctx context.Context, q filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.ItemID > 0 {
		query.Set("itemId", strconv.FormatInt(q.ItemID, 10))
	}
	if q.CouncilID > 0 {
		query.Set("councilId", strconv.FormatInt(q.CouncilID, 10))
	}
	if q.District != "" {
		query.Set("district", q.District)
	}
	if q.HasStock != nil {
		query.Set("hasStock", strconv.FormatBool(*q.HasStock))
	}
	if q.LowStockOnly {
		query.Set("lowStockOnly", "true")
	}

	var p inventoryListPayload
	if err := c.get(ctx, "/councils/inventory", query, &p); err != nil {
		return nil, 0, err
	}

	rows := p.Inventory
	if len(rows) == 0 {
		rows = p.Items
	}
	out := make([]entity.InventoryRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.InventoryRecord{
			ItemID:            r.ItemID,
			ItemName:          r.ItemName,
			ItemCode:          r.ItemCode,
			Category:          r.Category,
			CouncilID:         r.CouncilID,
			CouncilName:       r.CouncilName,
			QuantityOnHand:    r.QuantityOnHand,
			MinimumStockLevel: r.MinimumStockLevel,
			TotalValue:        r.TotalValue,
			LastUpdated:       r.LastUpdated,
		})
	}
	return out, p.Total, nil
}
