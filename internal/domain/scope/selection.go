// Package scope decides what slice of inventory data a viewer may see: one
// council, every council in a district, or everything. Resolution is a pure
// function over the viewer's access context; loading council lists and
// fetching KPIs stay with the caller.
package scope

import "fmt"

// Kind discriminates the Selection union.
type Kind string

const (
	KindAggregate Kind = "aggregate"
	KindDistrict  Kind = "district"
	KindCouncil   Kind = "council"
)

// Selection is the active data scope. Exactly one payload field is meaningful
// for a given Kind: District for KindDistrict, CouncilID for KindCouncil.
type Selection struct {
	Kind      Kind
	District  string
	CouncilID int64
}

// Aggregate is the all-councils scope.
func Aggregate() Selection { return Selection{Kind: KindAggregate} }

// DistrictOf scopes to every council in the named district.
func DistrictOf(district string) Selection {
	return Selection{Kind: KindDistrict, District: district}
}

// CouncilOf scopes to a single council.
func CouncilOf(id int64) Selection {
	return Selection{Kind: KindCouncil, CouncilID: id}
}

// Equal reports whether two selections address the same data scope.
func (s Selection) Equal(o Selection) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case KindDistrict:
		return s.District == o.District
	case KindCouncil:
		return s.CouncilID == o.CouncilID
	default:
		return true
	}
}

func (s Selection) String() string {
	switch s.Kind {
	case KindDistrict:
		return fmt.Sprintf("district(%s)", s.District)
	case KindCouncil:
		return fmt.Sprintf("council(%d)", s.CouncilID)
	default:
		return "aggregate"
	}
}
