package filter

import (
	"github.com/med-integems/lomemis-dashboard/internal/domain/scope"
)

// InventoryQuery is the effective parameter set an inventory fetch carries to
// the core API: tab criteria with the active scope merged in.
type InventoryQuery struct {
	Search       string
	Category     string
	ItemID       int64
	CouncilID    int64
	District     string
	HasStock     *bool
	LowStockOnly bool
}

// MovementQuery is the effective parameter set a ledger fetch carries.
type MovementQuery struct {
	StartDate       string
	EndDate         string
	ItemID          int64
	CouncilID       int64
	District        string
	TransactionType string
	ReferenceType   string
}

// EffectiveInventoryQuery merges the tab's criteria with the active scope.
// The scope always wins the council dimension: a council scope installs its
// id over anything a stale saved search left in the criteria, a district
// scope replaces it with the district name, and the aggregate scope clears
// both. Criteria are read, never written back.
func EffectiveInventoryQuery(c InventoryCriteria, s scope.Selection) InventoryQuery {
	q := InventoryQuery{
		Search:   c.Search,
		Category: c.Category,
		ItemID:   c.ItemID,
	}
	if v, ok := c.Presence.HasStock(); ok {
		q.HasStock = &v
	}
	q.LowStockOnly = c.Presence.LowOnly()
	applyScope(&q.CouncilID, &q.District, s)
	return q
}

// EffectiveMovementQuery merges the ledger criteria with the active scope
// under the same scope-wins rule as EffectiveInventoryQuery.
func EffectiveMovementQuery(c MovementCriteria, s scope.Selection) MovementQuery {
	q := MovementQuery{
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		ItemID:          c.ItemID,
		TransactionType: c.TransactionType,
		ReferenceType:   c.ReferenceType,
	}
	applyScope(&q.CouncilID, &q.District, s)
	return q
}

func applyScope(councilID *int64, district *string, s scope.Selection) {
	switch s.Kind {
	case scope.KindCouncil:
		*councilID = s.CouncilID
		*district = ""
	case scope.KindDistrict:
		*councilID = 0
		*district = s.District
	default:
		*councilID = 0
		*district = ""
	}
}
