package entity

import "strings"

// Role is the closed set of dashboard roles. Anything the core API sends that
// does not normalize to one of these is RoleUnknown and carries no access.
type Role string

const (
	RoleSuperAdmin       Role = "super-admin"
	RoleDistrictOfficer  Role = "district-education-officer"
	RoleCouncilOfficer   Role = "local-council-officer"
	RoleWarehouseManager Role = "warehouse-manager"
	RoleViewOnly         Role = "view-only"
	RoleUnknown          Role = "unknown"
)

// ParseRole maps a role name from the core API onto the closed Role set.
// Matching ignores case and separator style, so "District Education Officer",
// "district_education_officer" and "district-education-officer" are the same.
func ParseRole(name string) Role {
	switch normalizeRole(name) {
	case "superadmin", "superadministrator":
		return RoleSuperAdmin
	case "districteducationofficer", "districtofficer", "deo":
		return RoleDistrictOfficer
	case "localcouncilofficer", "councilofficer", "lco":
		return RoleCouncilOfficer
	case "warehousemanager", "nationalwarehousemanager":
		return RoleWarehouseManager
	case "viewonly", "viewer":
		return RoleViewOnly
	default:
		return RoleUnknown
	}
}

func normalizeRole(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.':
			return -1
		}
		return r
	}, name)
}

// User is the authenticated viewer's access context: role plus the council,
// district and warehouse assignments that drive scope resolution. Fetched
// once per session from the core API and read-only afterwards.
type User struct {
	ID          int64
	Name        string
	Email       string
	Role        Role
	CouncilID   *int64 // set for local council officers
	CouncilName string // display name of the assigned council, when any
	District    string // set for district education officers
	WarehouseID *int64 // set for warehouse managers
}

// HasCouncil reports whether the user carries a council assignment.
func (u User) HasCouncil() bool { return u.CouncilID != nil && *u.CouncilID > 0 }

// HasWarehouse reports whether the user carries a warehouse assignment.
func (u User) HasWarehouse() bool { return u.WarehouseID != nil && *u.WarehouseID > 0 }
