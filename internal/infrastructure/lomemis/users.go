package lomemis

import (
	"context"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// userPayload is the GET /users/me body. Older deployments send role, newer
// ones roleName; both are accepted.
type userPayload struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	RoleName       string `json:"roleName"`
	LocalCouncilID *int64 `json:"localCouncilId"`
	CouncilName    string `json:"councilName"`
	District       string `json:"district"`
	WarehouseID    *int64 `json:"warehouseId"`
}

// CurrentUser fetches the signed-in viewer's profile and assignments.
func (c *Client) CurrentUser(ctx context.Context) (entity.User, error) {
	var p userPayload
	if err := c.get(ctx, "/users/me", nil, &p); err != nil {
		return entity.User{}, err
	}

	roleName := p.RoleName
	if roleName == "" {
		roleName = p.Role
	}
	return entity.User{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Role:        entity.ParseRole(roleName),
		CouncilID:   p.LocalCouncilID,
		CouncilName: p.CouncilName,
		District:    p.District,
		WarehouseID: p.WarehouseID,
	}, nil
}
