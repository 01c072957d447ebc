package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// StockMovementDTO one row of the stock movement ledger.
type StockMovementDTO struct {
	ID              int64           `json:"id"`
	CouncilID       int64           `json:"councilId"`
	CouncilName     string          `json:"councilName,omitempty"`
	ItemID          int64           `json:"itemId"`
	ItemName        string          `json:"itemName"`
	ItemCode        string          `json:"itemCode"`
	TransactionType string          `json:"transactionType"`
	ReferenceType   string          `json:"referenceType,omitempty"`
	ReferenceID     int64           `json:"referenceId,omitempty"`
	Quantity        int64           `json:"quantity"`
	BalanceAfter    int64           `json:"balanceAfter"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedBy       string          `json:"createdBy,omitempty"`
}

// FromStockMovement converts a domain movement.
func FromStockMovement(m entity.StockMovement) StockMovementDTO {
	return StockMovementDTO{
		ID:              m.ID,
		CouncilID:       m.CouncilID,
		CouncilName:     m.CouncilName,
		ItemID:          m.ItemID,
		ItemName:        m.ItemName,
		ItemCode:        m.ItemCode,
		TransactionType: m.TransactionType,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		Quantity:        m.Quantity,
		BalanceAfter:    m.BalanceAfter,
		TotalValue:      m.TotalValue,
		TransactionDate: m.TransactionDate,
		CreatedBy:       m.CreatedBy,
	}
}

// MovementListDTO response of GET /api/dashboard/movements.
type MovementListDTO struct {
	Movements []StockMovementDTO `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// NewMovementListDTO builds the ledger response, never with nil movements.
func NewMovementListDTO(movements []entity.StockMovement, page, limit int, total int64) MovementListDTO {
	out := make([]StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, FromStockMovement(m))
	}
	return MovementListDTO{
		Movements: out,
		Page:      PageResponse{Page: page, Limit: limit, Total: total},
	}
}
