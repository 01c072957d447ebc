package lomemis

import (
	"context"
	"net/url"
	"strconv"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

type itemPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

type itemListPayload struct {
	Items []itemPayload `json:"items"`
	Total int64         `json:"total"`
}

// Items looks up TLM items by name or code.
func (c *Client) Items(ctx context.Context, search string, page, limit int) ([]entity.Item, int64, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}

	var p itemListPayload
	if err := c.get(ctx, "/items", query, &p); err != nil {
		return nil, 0, err
	}

	out := make([]entity.Item, 0, len(p.Items))
	for _, i := range p.Items {
		out = append(out, entity.Item{
			ID:       i.ID,
			Name:     i.Name,
			Code:     i.Code,
			Category: i.Category,
			Unit:     i.Unit,
		})
	}
	return out, p.Total, nil
}
