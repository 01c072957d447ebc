package dto

import (
	"fmt"

	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
)

// InventoryFiltersDTO wire form of the inventory tab criteria. hasStock and
// lowStockOnly are mutually exclusive; a request carrying both is rejected.
type InventoryFiltersDTO struct {
	Search       string `json:"search,omitempty"`
	Category     string `json:"category,omitempty"`
	ItemID       int64  `json:"itemId,omitempty"`
	CouncilID    int64  `json:"councilId,omitempty"`
	HasStock     *bool  `json:"hasStock,omitempty"`
	LowStockOnly bool   `json:"lowStockOnly,omitempty"`
}

// ToCriteria builds domain criteria from the wire form.
func (d InventoryFiltersDTO) ToCriteria() (filter.InventoryCriteria, error) {
	if d.HasStock != nil && d.LowStockOnly {
		return filter.InventoryCriteria{}, fmt.Errorf("%w: hasStock and lowStockOnly are mutually exclusive", domain.ErrInvalidInput)
	}
	c := filter.InventoryCriteria{
		Search:    d.Search,
		Category:  d.Category,
		ItemID:    d.ItemID,
		CouncilID: d.CouncilID,
	}
	switch {
	case d.LowStockOnly:
		c.Presence = filter.LowStockOnly()
	case d.HasStock != nil:
		c.Presence = filter.WithStock(*d.HasStock)
	}
	return c, nil
}

// FromInventoryCriteria converts domain criteria for responses.
func FromInventoryCriteria(c filter.InventoryCriteria) InventoryFiltersDTO {
	d := InventoryFiltersDTO{
		Search:    c.Search,
		Category:  c.Category,
		ItemID:    c.ItemID,
		CouncilID: c.CouncilID,
	}
	if has, ok := c.Presence.HasStock(); ok {
		d.HasStock = &has
	}
	d.LowStockOnly = c.Presence.LowOnly()
	return d
}

// MovementFiltersDTO wire form of the ledger tab criteria. Dates are
// calendar-date strings (YYYY-MM-DD).
type MovementFiltersDTO struct {
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	ItemID          int64  `json:"itemId,omitempty"`
	TransactionType string `json:"transactionType,omitempty"`
	ReferenceType   string `json:"referenceType,omitempty"`
}

// ToCriteria builds domain criteria. Validation (date syntax, range order,
// enum membership) happens in the session so rejected input never replaces
// the held state.
func (d MovementFiltersDTO) ToCriteria() filter.MovementCriteria {
	return filter.MovementCriteria{
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		ItemID:          d.ItemID,
		TransactionType: d.TransactionType,
		ReferenceType:   d.ReferenceType,
	}
}

// FromMovementCriteria converts domain criteria for responses.
func FromMovementCriteria(c filter.MovementCriteria) MovementFiltersDTO {
	return MovementFiltersDTO{
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		ItemID:          c.ItemID,
		TransactionType: c.TransactionType,
		ReferenceType:   c.ReferenceType,
	}
}

// QuickRangeRequest body of POST /api/dashboard/filters/movements/quick-range.
type QuickRangeRequest struct {
	Range string `json:"range"` // last-7-days | last-30-days | this-month | year-to-date
}
