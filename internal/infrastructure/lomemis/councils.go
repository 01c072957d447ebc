package lomemis

import (
	"context"
	"net/url"
	"strconv"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/upstream"
)

// councilPayload tolerates the region|district naming drift: some core-API
// versions call the district field region.
type councilPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	District string `json:"district"`
	Region   string `json:"region"`
	Code     string `json:"code"`
}

type councilListPayload struct {
	Councils []councilPayload `json:"councils"`
	Total    int64            `json:"total"`
}

// LocalCouncils lists local councils, optionally narrowed to a district.
func (c *Client) LocalCouncils(ctx context.Context, q upstream.CouncilQuery) ([]entity.Council, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.District != "" {
		query.Set("district", q.District)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var p councilListPayload
	if err := c.get(ctx, "/local-councils", query, &p); err != nil {
		return nil, err
	}

	out := make([]entity.Council, 0, len(p.Councils))
	for _, cp := range p.Councils {
		district := cp.District
		if district == "" {
			district = cp.Region
		}
		out = append(out, entity.Council{
			ID:       cp.ID,
			Name:     cp.Name,
			District: district,
			Region:   cp.Region,
			Code:     cp.Code,
		})
	}
	return out, nil
}
