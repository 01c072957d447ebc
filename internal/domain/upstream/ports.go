// Package upstream defines the read-only ports to the LoMEMIS core API. The
// dashboard never owns data: every entity it shows is fetched through these
// interfaces on behalf of the signed-in viewer.
package upstream

import (
	"context"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
)

// CouncilQuery narrows a local-council listing. Zero fields are omitted from
// the request.
type CouncilQuery struct {
	District string
	Search   string
	Page     int
	Limit    int
}

// UserService resolves the signed-in viewer.
type UserService interface {
	// CurrentUser fetches the viewer's profile and assignments (GET /users/me).
	CurrentUser(ctx context.Context) (entity.User, error)
}

// CouncilService lists local councils.
type CouncilService interface {
	LocalCouncils(ctx context.Context, q CouncilQuery) ([]entity.Council, error)
}

// KPIService fetches computed dashboard KPIs. The core API owns the
// computation; councilID narrows it to one council, nil means global.
type KPIService interface {
	DashboardKPIs(ctx context.Context, councilID *int64) (entity.KPISnapshot, error)
}

// InventoryService lists council inventory positions.
type InventoryService interface {
	CouncilInventory(ctx context.Context, q filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error)
}

// MovementService lists stock movement ledger entries.
type MovementService interface {
	CouncilStockMovements(ctx context.Context, q filter.MovementQuery, page, limit int) ([]entity.StockMovement, int64, error)
	// CouncilItemStockMovements is the per-item drill-down
	// (GET /councils/{councilId}/items/{itemId}/stock-movements).
	CouncilItemStockMovements(ctx context.Context, councilID, itemID int64, page, limit int) ([]entity.StockMovement, int64, error)
}

// ItemService looks up TLM items for the filter forms.
type ItemService interface {
	Items(ctx context.Context, search string, page, limit int) ([]entity.Item, int64, error)
}

// API is the full core-API surface a dashboard session works against.
type API interface {
	UserService
	CouncilService
	KPIService
	InventoryService
	MovementService
	ItemService
}
