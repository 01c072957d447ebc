package dto

import (
	"fmt"

	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/scope"
)

// ScopeDTO wire form of a scope selection. Exactly one payload field is
// meaningful depending on kind.
type ScopeDTO struct {
	Kind      string `json:"kind"` // "aggregate" | "district" | "council"
	District  string `json:"district,omitempty"`
	CouncilID int64  `json:"councilId,omitempty"`
}

// FromSelection converts a domain selection for responses.
func FromSelection(s scope.Selection) ScopeDTO {
	return ScopeDTO{Kind: string(s.Kind), District: s.District, CouncilID: s.CouncilID}
}

// ToSelection validates the wire form and builds the domain selection.
func (d ScopeDTO) ToSelection() (scope.Selection, error) {
	switch scope.Kind(d.Kind) {
	case scope.KindAggregate:
		return scope.Aggregate(), nil
	case scope.KindDistrict:
		if d.District == "" {
			return scope.Selection{}, fmt.Errorf("%w: district scope requires a district name", domain.ErrInvalidInput)
		}
		return scope.DistrictOf(d.District), nil
	case scope.KindCouncil:
		if d.CouncilID <= 0 {
			return scope.Selection{}, fmt.Errorf("%w: council scope requires councilId", domain.ErrInvalidInput)
		}
		return scope.CouncilOf(d.CouncilID), nil
	default:
		return scope.Selection{}, fmt.Errorf("%w: unknown scope kind %q", domain.ErrInvalidInput, d.Kind)
	}
}

// CouncilDTO council summary for the scope picker.
type CouncilDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	Region   string `json:"region,omitempty"`
	Code     string `json:"code,omitempty"`
}

// FromCouncil converts a domain council.
func FromCouncil(c entity.Council) CouncilDTO {
	return CouncilDTO{ID: c.ID, Name: c.Name, District: c.District, Region: c.Region, Code: c.Code}
}

// FromCouncils converts a slice, never returning nil so JSON encodes [].
func FromCouncils(cs []entity.Council) []CouncilDTO {
	out := make([]CouncilDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCouncil(c))
	}
	return out
}
