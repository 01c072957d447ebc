package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
)

// SessionHandler serves the session state endpoints: mount, scope, tabs,
// filters, KPIs and preferences. Every state mutation responds with the
// refreshed session view so the frontend re-renders from one payload.
type SessionHandler struct {
	provider *SessionProvider
}

// NewSessionHandler builds the handler.
func NewSessionHandler(p *SessionProvider) *SessionHandler {
	return &SessionHandler{provider: p}
}

// GetSession mounts (or resumes) the viewer's dashboard session.
// GET /api/dashboard/session
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// SignOut drops the server-side session. The next request mounts a fresh one.
// DELETE /api/dashboard/session
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	h.provider.Drop(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeScope switches the session to the requested scope selection.
// PUT /api/dashboard/scope
func (h *SessionHandler) ChangeScope(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ScopeDTO
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
	}
	sel, err := in.ToSelection()
	if err != nil {
		return writeError(c, err)
	}
	if err := s.ChangeScope(c.UserContext(), sel); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// SetTab records an explicit tab click without touching any criteria.
// PUT /api/dashboard/tab
func (h *SessionHandler) SetTab(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TabRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
	}
	if err := s.SetActiveTab(in.Tab); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// ApplyInventoryFilters replaces the inventory tab criteria.
// PUT /api/dashboard/filters/inventory
func (h *SessionHandler) ApplyInventoryFilters(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.InventoryFiltersDTO
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
	}
	criteria, err := in.ToCriteria()
	if err != nil {
		return writeError(c, err)
	}
	s.ApplyInventoryFilters(criteria)
	return c.JSON(s.View())
}

// ApplyMovementFilters replaces the ledger tab criteria. Invalid criteria
// are rejected and the held state stays untouched.
// PUT /api/dashboard/filters/movements
func (h *SessionHandler) ApplyMovementFilters(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.MovementFiltersDTO
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
	}
	if err := s.ApplyMovementFilters(in.ToCriteria()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// QuickRange merges a quick date-range shortcut into the ledger criteria.
// POST /api/dashboard/filters/movements/quick-range
func (h *SessionHandler) QuickRange(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.QuickRangeRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
	}
	if err := s.ApplyQuickRange(filter.RangeKind(in.Range)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// ClearFilter removes a single criterion from one tab.
// DELETE /api/dashboard/filters/:tab/:key
func (h *SessionHandler) ClearFilter(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.ClearFilter(c.Params("tab"), c.Params("key")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// ClearFilters resets one tab's criteria to their defaults.
// DELETE /api/dashboard/filters/:tab
func (h *SessionHandler) ClearFilters(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.ClearFilters(c.Params("tab")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}

// KPIs returns the cached snapshot for the current scope.
// GET /api/dashboard/kpis
func (h *SessionHandler) KPIs(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	k, err := s.KPIs()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(k)
}

// RefreshKPIs refetches the snapshot for the current scope. The frontend's
// refresh button and its post-write hooks both land here.
// POST /api/dashboard/kpis/refresh
func (h *SessionHandler) RefreshKPIs(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	k, err := s.RefreshKPIs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(k)
}

// UpdatePreferences stores table display preferences for the viewer.
// PUT /api/dashboard/preferences/:table
func (h *SessionHandler) UpdatePreferences(c *fiber.Ctx) error {
	s, err := h.provider.Session(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TablePreferencesDTO
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
	}
	if err := s.UpdatePreferences(c.Params("table"), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.View())
}
