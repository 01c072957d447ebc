package lomemis

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
)

type movementPayload struct {
	ID              int64           `json:"id"`
	CouncilID       int64           `json:"councilId"`
	CouncilName     string          `json:"councilName"`
	ItemID          int64           `json:"itemId"`
	ItemName        string          `json:"itemName"`
	ItemCode        string          `json:"itemCode"`
	TransactionType string          `json:"transactionType"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     int64           `json:"referenceId"`
	Quantity        int64           `json:"quantity"`
	BalanceAfter    int64           `json:"balanceAfter"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedBy       string          `json:"createdBy"`
}

type movementListPayload struct {
	Movements []movementPayload `json:"movements"`
	Total     int64             `json:"total"`
}

// CouncilStockMovements lists ledger entries for the effective query.
func (c *Client) CouncilStockMovements(ctx context.Context, q filter.MovementQuery, page, limit int) ([]entity.StockMovement, int64, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if q.StartDate != "" {
		query.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		query.Set("endDate", q.EndDate)
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
	if q.TransactionType != "" {
		query.Set("transactionType", q.TransactionType)
	}
	if q.ReferenceType != "" {
		query.Set("referenceType", q.ReferenceType)
	}

	var p movementListPayload
	if err := c.get(ctx, "/councils/stock-movements", query, &p); err != nil {
		return nil, 0, err
	}
	return toMovements(p.Movements), p.Total, nil
}

// CouncilItemStockMovements is the per-item drill-down for one council.
func (c *Client) CouncilItemStockMovements(ctx context.Context, councilID, itemID int64, page, limit int) ([]entity.StockMovement, int64, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("/councils/%d/items/%d/stock-movements", councilID, itemID)
	var p movementListPayload
	if err := c.get(ctx, path, query, &p); err != nil {
		return nil, 0, err
	}
	return toMovements(p.Movements), p.Total, nil
}

func toMovements(rows []movementPayload) []entity.StockMovement {
	out := make([]entity.StockMovement, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.StockMovement{
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
		})
	}
	return out
}
