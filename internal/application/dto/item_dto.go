package dto

import "github.com/med-integems/lomemis-dashboard/internal/domain/entity"

// ItemDTO item summary for the filter form's item picker.
type ItemDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// FromItem converts a domain item.
func FromItem(i entity.Item) ItemDTO {
	return ItemDTO{ID: i.ID, Name: i.Name, Code: i.Code, Category: i.Category, Unit: i.Unit}
}

// ItemListDTO response of GET /api/dashboard/items.
type ItemListDTO struct {
	Items []ItemDTO    `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewItemListDTO builds the lookup response, never with nil items.
func NewItemListDTO(items []entity.Item, page, limit int, total int64) ItemListDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, i := range items {
		out = append(out, FromItem(i))
	}
	return ItemListDTO{Items: out, Page: PageResponse{Page: page, Limit: limit, Total: total}}
}

// ItemListRequest query of GET /api/dashboard/items.
type ItemListRequest struct {
	PageRequest
	Search string `query:"search"`
}
