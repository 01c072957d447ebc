package dto

import "github.com/med-integems/lomemis-dashboard/internal/domain/entity"

// UserDTO the signed-in viewer as shown in the session view.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CouncilID *int64 `json:"councilId,omitempty"`
	District  string `json:"district,omitempty"`
}

// FromUser converts a domain user.
func FromUser(u entity.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CouncilID: u.CouncilID,
		District:  u.District,
	}
}

// SortSpec persisted column sort for a table.
type SortSpec struct {
	By    string `json:"by"`
	Order string `json:"order"` // "asc" | "desc"
}

// TablePreferencesDTO persisted display preferences for one table. Also the
// body of PUT /api/dashboard/preferences/:table; zero fields are left as-is.
type TablePreferencesDTO struct {
	PageSize int       `json:"pageSize,omitempty"`
	Sort     *SortSpec `json:"sort,omitempty"`
}

// PreferencesDTO per-viewer table preferences keyed the same way they are
// persisted: councilInv for the inventory table, councilLedger for movements.
type PreferencesDTO struct {
	CouncilInv    TablePreferencesDTO `json:"councilInv"`
	CouncilLedger TablePreferencesDTO `json:"councilLedger"`
}

// SessionViewDTO response of GET /api/dashboard/session: everything the
// dashboard needs to render its current state.
type SessionViewDTO struct {
	User             UserDTO             `json:"user"`
	Scope            ScopeDTO            `json:"scope"`
	CanChangeScope   bool                `json:"canChangeScope"`
	Councils         []CouncilDTO        `json:"councils"`
	CouncilsDegraded bool                `json:"councilsDegraded,omitempty"`
	ActiveTab        string              `json:"activeTab"`
	InventoryFilters InventoryFiltersDTO `json:"inventoryFilters"`
	MovementFilters  MovementFiltersDTO  `json:"movementFilters"`
	KPIs             *KPIDTO             `json:"kpis,omitempty"`
	Preferences      PreferencesDTO      `json:"preferences"`
}

// TabRequest body of PUT /api/dashboard/tab.
type TabRequest struct {
	Tab string `json:"tab"` // "inventory" | "ledger"
}
