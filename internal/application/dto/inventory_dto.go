package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// InventoryRecordDTO one row of the council inventory table.
type InventoryRecordDTO struct {
	ItemID            int64           `json:"itemId"`
	ItemName          string          `json:"itemName"`
	ItemCode          string          `json:"itemCode"`
	Category          string          `json:"category,omitempty"`
	CouncilID         int64           `json:"councilId"`
	CouncilName       string          `json:"councilName,omitempty"`
	QuantityOnHand    int64           `json:"quantityOnHand"`
	MinimumStockLevel int64           `json:"minimumStockLevel"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	StockStatus       string          `json:"stockStatus"`
	LastUpdated       time.Time       `json:"lastUpdated"`
}

// FromInventoryRecord converts a domain record, deriving the display status.
func FromInventoryRecord(r entity.InventoryRecord) InventoryRecordDTO {
	return InventoryRecordDTO{
		ItemID:            r.ItemID,
		ItemName:          r.ItemName,
		ItemCode:          r.ItemCode,
		Category:          r.Category,
		CouncilID:         r.CouncilID,
		CouncilName:       r.CouncilName,
		QuantityOnHand:    r.QuantityOnHand,
		MinimumStockLevel: r.MinimumStockLevel,
		TotalValue:        r.TotalValue,
		StockStatus:       r.StockStatus(),
		LastUpdated:       r.LastUpdated,
	}
}

// InventoryListDTO response of GET /api/dashboard/inventory.
type InventoryListDTO struct {
	Records []InventoryRecordDTO `json:"records"`
	Page    PageResponse         `json:"page"`
}

// NewInventoryListDTO builds the listing response, never with nil records.
func NewInventoryListDTO(records []entity.InventoryRecord, page, limit int, total int64) InventoryListDTO {
	out := make([]InventoryRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, FromInventoryRecord(r))
	}
	return InventoryListDTO{
		Records: out,
		Page:    PageResponse{Page: page, Limit: limit, Total: total},
	}
}
