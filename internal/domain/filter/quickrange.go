package filter

import (
	"fmt"
	"time"

	"github.com/med-integems/lomemis-dashboard/internal/domain"
)

// RangeKind names the quick date-range shortcuts on the ledger tab.
type RangeKind string

const (
	RangeLast7Days  RangeKind = "last-7-days"
	RangeLast30Days RangeKind = "last-30-days"
	RangeThisMonth  RangeKind = "this-month"
	RangeYearToDate RangeKind = "year-to-date"
)

// QuickRange computes the start/end calendar dates for kind relative to
// today. The end is always today; the "last N days" kinds start exactly N
// days earlier. Times of day never enter the result.
func QuickRange(kind RangeKind, today time.Time) (startDate, endDate string, err error) {
	end := today
	var start time.Time
	switch kind {
	case RangeLast7Days:
		start = today.AddDate(0, 0, -7)
	case RangeLast30Days:
		start = today.AddDate(0, 0, -30)
	case RangeThisMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case RangeYearToDate:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	default:
		return "", "", fmt.Errorf("quick range %q: %w", kind, domain.ErrInvalidInput)
	}
	return start.Format(DateLayout), end.Format(DateLayout), nil
}

// ApplyQuickRange merges the computed dates into the criteria without
// clearing any other field.
func ApplyQuickRange(c MovementCriteria, kind RangeKind, today time.Time) (MovementCriteria, error) {
	start, end, err := QuickRange(kind, today)
	if err != nil {
		return c, err
	}
	c.StartDate = start
	c.EndDate = end
	return c, nil
}
