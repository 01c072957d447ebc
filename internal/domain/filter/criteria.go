// Package filter holds the listing criteria for the inventory and ledger
// tabs: what the viewer typed or picked, independent of the scope that is
// merged in at fetch time. Everything here is pure data and pure functions;
// fetching belongs to the application layer.
package filter

import (
	"fmt"
	"time"

	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
)

// DateLayout is the calendar-date format used by all date criteria. There is
// never a time-of-day component.
const DateLayout = "2006-01-02"

// presenceKind discriminates StockPresence.
type presenceKind uint8

const (
	presenceAny presenceKind = iota
	presenceWithStock
	presenceLowOnly
)

// StockPresence narrows inventory lines by stock state. It is a tagged value
// with three shapes (any, with/without stock, low-stock-only) so that the
// hasStock and lowStockOnly flags can never be set together: assigning one
// shape structurally discards the other.
type StockPresence struct {
	kind     presenceKind
	hasStock bool
}

// AnyStock places no stock-presence constraint.
func AnyStock() StockPresence { return StockPresence{} }

// WithStock keeps only lines with stock (true) or only zero-stock lines (false).
func WithStock(has bool) StockPresence {
	return StockPresence{kind: presenceWithStock, hasStock: has}
}

// LowStockOnly keeps only lines at or below their minimum stock level.
func LowStockOnly() StockPresence { return StockPresence{kind: presenceLowOnly} }

// IsZero reports the unconstrained shape.
func (p StockPresence) IsZero() bool { return p.kind == presenceAny }

// HasStock returns the with-stock flag and whether that shape is active.
func (p StockPresence) HasStock() (value, ok bool) {
	return p.hasStock, p.kind == presenceWithStock
}

// LowOnly reports the low-stock-only shape.
func (p StockPresence) LowOnly() bool { return p.kind == presenceLowOnly }

func (p StockPresence) String() string {
	switch p.kind {
	case presenceWithStock:
		return fmt.Sprintf("hasStock=%t", p.hasStock)
	case presenceLowOnly:
		return "lowStockOnly"
	default:
		return "any"
	}
}

// InventoryCriteria are the optional constraints on the inventory tab.
// CouncilID can arrive from a saved search, but the active scope always
// overrides it at fetch time (see EffectiveInventoryQuery).
type InventoryCriteria struct {
	Search    string
	Category  string
	ItemID    int64
	CouncilID int64
	Presence  StockPresence
}

// IsZero reports criteria with no constraint set.
func (c InventoryCriteria) IsZero() bool {
	return c.Search == "" && c.Category == "" && c.ItemID == 0 && c.CouncilID == 0 && c.Presence.IsZero()
}

// Clear removes the single named key and leaves every other field untouched.
// Returns false for a key this tab does not know.
func (c InventoryCriteria) Clear(key string) (InventoryCriteria, bool) {
	switch key {
	case "search":
		c.Search = ""
	case "category":
		c.Category = ""
	case "itemId":
		c.ItemID = 0
	case "councilId":
		c.CouncilID = 0
	case "hasStock":
		if _, ok := c.Presence.HasStock(); ok {
			c.Presence = AnyStock()
		}
	case "lowStockOnly":
		if c.Presence.LowOnly() {
			c.Presence = AnyStock()
		}
	default:
		return c, false
	}
	return c, true
}

// MovementCriteria are the optional constraints on the ledger tab. Dates are
// calendar-date strings; an inverted range is flagged by Validate and must
// block Apply, never be silently corrected.
type MovementCriteria struct {
	StartDate       string
	EndDate         string
	ItemID          int64
	TransactionType string
	ReferenceType   string
}

// IsZero reports criteria with no constraint set.
func (c MovementCriteria) IsZero() bool {
	return c.StartDate == "" && c.EndDate == "" && c.ItemID == 0 &&
		c.TransactionType == "" && c.ReferenceType == ""
}

// Validate checks date syntax, date ordering and enum membership. The
// criteria themselves are left untouched.
func (c MovementCriteria) Validate() error {
	var start, end time.Time
	var err error
	if c.StartDate != "" {
		if start, err = time.Parse(DateLayout, c.StartDate); err != nil {
			return fmt.Errorf("start date %q: %w", c.StartDate, domain.ErrInvalidInput)
		}
	}
	if c.EndDate != "" {
		if end, err = time.Parse(DateLayout, c.EndDate); err != nil {
			return fmt.Errorf("end date %q: %w", c.EndDate, domain.ErrInvalidInput)
		}
	}
	if c.StartDate != "" && c.EndDate != "" && start.After(end) {
		return fmt.Errorf("%s after %s: %w", c.StartDate, c.EndDate, domain.ErrInvalidDateRange)
	}
	if c.TransactionType != "" && !entity.KnownTransactionType(c.TransactionType) {
		return fmt.Errorf("transaction type %q: %w", c.TransactionType, domain.ErrInvalidInput)
	}
	if c.ReferenceType != "" && !entity.KnownReferenceType(c.ReferenceType) {
		return fmt.Errorf("reference type %q: %w", c.ReferenceType, domain.ErrInvalidInput)
	}
	return nil
}

// Clear removes the single named key and leaves every other field untouched.
func (c MovementCriteria) Clear(key string) (MovementCriteria, bool) {
	switch key {
	case "startDate":
		c.StartDate = ""
	case "endDate":
		c.EndDate = ""
	case "itemId":
		c.ItemID = 0
	case "transactionType":
		c.TransactionType = ""
	case "referenceType":
		c.ReferenceType = ""
	default:
		return c, false
	}
	return c, true
}
