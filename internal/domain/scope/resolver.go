package scope

import (
	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// Denial reasons, surfaced verbatim in the access alert.
const (
	ReasonInsufficientRole      = "insufficient role"
	ReasonDistrictNotConfigured = "district not configured"
	ReasonNoCouncilsInDistrict  = "no councils in district"
	ReasonCouncilNotConfigured  = "council not configured"
)

// Decision is the outcome of scope resolution. When Granted is false, Reason
// says why and nothing else is meaningful. When Granted is true, Default is
// the initial selection, CanChangeScope says whether the viewer may pick
// another one, and Councils is the list offered for that selection.
// CouncilsDegraded marks a council list that could not be loaded: access
// stands, the list is empty, and the caller shows a warning instead.
type Decision struct {
	Granted          bool
	Reason           string
	Default          Selection
	CanChangeScope   bool
	Councils         []entity.Council
	CouncilsDegraded bool
}

// Denied builds a denial decision.
func Denied(reason string) Decision {
	return Decision{Granted: false, Reason: reason}
}

// Resolve maps the viewer's access context onto an access decision. councils
// is the list loaded for the viewer's reach (all councils for aggregate
// roles, the district's councils for a district officer) and councilsErr is
// the error from that load, if any.
//
// A load failure never turns a grant into a denial: the scope stands with an
// empty, degraded council list (warning banner at the caller). A district
// officer whose district genuinely has zero councils is denied, since there
// is nothing the role could ever display.
func Resolve(user entity.User, councils []entity.Council, councilsErr error) Decision {
	switch user.Role {
	case entity.RoleSuperAdmin, entity.RoleWarehouseManager, entity.RoleViewOnly:
		d := Decision{
			Granted:        true,
			Default:        Aggregate(),
			CanChangeScope: true,
			Councils:       councils,
		}
		if councilsErr != nil {
			d.Councils = nil
			d.CouncilsDegraded = true
		}
		return d

	case entity.RoleDistrictOfficer:
		if user.District == "" {
			return Denied(ReasonDistrictNotConfigured)
		}
		if councilsErr != nil {
			// List unavailable, not empty: grant the district scope and let
			// the caller warn. Scope changes stay open so a later reload of
			// the list is usable without re-resolving.
			return Decision{
				Granted:          true,
				Default:          DistrictOf(user.District),
				CanChangeScope:   true,
				CouncilsDegraded: true,
			}
		}
		switch len(councils) {
		case 0:
			return Denied(ReasonNoCouncilsInDistrict)
		case 1:
			// A single-council district behaves like a council officer.
			return Decision{
				Granted:        true,
				Default:        CouncilOf(councils[0].ID),
				CanChangeScope: false,
				Councils:       councils,
			}
		default:
			return Decision{
				Granted:        true,
				Default:        DistrictOf(user.District),
				CanChangeScope: true,
				Councils:       councils,
			}
		}

	case entity.RoleCouncilOfficer:
		if !user.HasCouncil() {
			return Denied(ReasonCouncilNotConfigured)
		}
		return Decision{
			Granted:        true,
			Default:        CouncilOf(*user.CouncilID),
			CanChangeScope: false,
			Councils:       councils,
		}

	default:
		return Denied(ReasonInsufficientRole)
	}
}

// AllowsSelection reports whether sel is a selection the decision permits:
// the default itself, or any selection when scope changes are allowed. A
// council selection must name a council from the loaded list unless the list
// is degraded (then the id cannot be checked and is taken at face value).
func (d Decision) AllowsSelection(sel Selection) bool {
	if !d.Granted {
		return false
	}
	if sel.Equal(d.Default) {
		return true
	}
	if !d.CanChangeScope {
		return false
	}
	if sel.Kind == KindCouncil && !d.CouncilsDegraded {
		for _, c := range d.Councils {
			if c.ID == sel.CouncilID {
				return true
			}
		}
		return false
	}
	return true
}
