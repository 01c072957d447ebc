package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
)

// ListingHandler serves the table listings. All of them read through the
// session, so the scope and held filters always apply.
type ListingHandler struct {
	provider *SessionProvider
}

// NewListingHandler builds the handler.
func NewListingHandler(p *SessionProvider) *ListingHandler {
	return &ListingHandler{provider: p}
}

// Inventory lists the council inventory table.
// GET /api/dashboard/inventory?page=&limit=
func (h *ListingHandler) Inventory(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed query", domain.ErrInvalidInput))
	}
	out, err := s.Inventory(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements lists the stock movement ledger.
// GET /api/dashboard/movements?page=&limit=
func (h *ListingHandler) Movements(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed query", domain.ErrInvalidInput))
	}
	out, err := s.Movements(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ItemMovements is the per-item ledger drill-down. Outside council scope the
// caller must name the council explicitly.
// GET /api/dashboard/inventory/:itemId/movements?councilId=&page=&limit=
func (h *ListingHandler) ItemMovements(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: itemId must be numeric", domain.ErrInvalidInput))
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed query", domain.ErrInvalidInput))
	}
	councilID := int64(c.QueryInt("councilId", 0))
	out, err := s.ItemMovements(c.UserContext(), int64(itemID), councilID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items looks up TLM items for the filter forms.
// GET /api/dashboard/items?search=&page=&limit=
func (h *ListingHandler) Items(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.ItemListRequest
	if err := c.QueryParser(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed query", domain.ErrInvalidInput))
	}
	out, err := s.Items(c.UserContext(), req.Search, req.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
