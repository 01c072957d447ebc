// Package pdf renders the downloadable dashboard summary report with
// Maroto v2: a header with the scope line, the viewer block, the KPI table
// and a critical-alert callout.
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 106, Blue: 78}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 178, Green: 34, Blue: 34}
)

// MarotoSummaryRenderer implements dashboard.SummaryRenderer using Maroto v2.
type MarotoSummaryRenderer struct{}

var _ dashboard.SummaryRenderer = (*MarotoSummaryRenderer)(nil)

// NewMarotoSummaryRenderer builds the renderer.
func NewMarotoSummaryRenderer() *MarotoSummaryRenderer { return &MarotoSummaryRenderer{} }

// RenderSummary renders the report and returns the PDF bytes.
func (g *MarotoSummaryRenderer) RenderSummary(view dashboard.SummaryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Council Inventory Summary", true).
		WithAuthor("LoMEMIS", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(viewerRow(view.Viewer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(kpiHeaderRow())
	for _, r := range kpiRows(view.KPIs) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(alertsRow(view.KPIs))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(view.KPIs))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate summary: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: system name on the left, scope line and generation time on the
// right.
func headerRow(view dashboard.SummaryReport) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New("LoMEMIS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Council Inventory Dashboard", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("SUMMARY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(view.KPIs.ScopeMessage, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Generated: "+view.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// viewerRow: who requested the report.
func viewerRow(viewer dto.UserDTO) core.Row {
	who := fmt.Sprintf("%s   |   %s", viewer.Name, roleLabel(viewer.Role))
	if viewer.District != "" {
		who += "   |   " + viewer.District + " District"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PREPARED FOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(who, props.Text{Size: 9, Top: 7, Color: colorGray}),
		),
	)
}

// kpiHeaderRow: column headers of the indicator table.
func kpiHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Indicator", 8, align.Left),
		h("Value", 4, align.Right),
	)
}

// kpiRows: one row per dashboard indicator.
func kpiRows(k dto.KPIDTO) []core.Row {
	entries := []struct {
		label string
		value string
	}{
		{"Total items", formatAmount(strconv.FormatInt(k.TotalItems, 10))},
		{"Total quantity on hand", formatAmount(strconv.FormatInt(k.TotalQuantity, 10))},
		{"Total inventory value", "Le " + formatAmount(k.TotalInventoryValue.StringFixed(2))},
		{"Low stock items", formatAmount(strconv.FormatInt(k.LowStockItems, 10))},
		{"Out of stock items", formatAmount(strconv.FormatInt(k.OutOfStockItems, 10))},
		{"Pending shipments", formatAmount(strconv.FormatInt(k.PendingShipments, 10))},
		{"Confirmed shipments", formatAmount(strconv.FormatInt(k.ConfirmedShipments, 10))},
		{"Active distributions", formatAmount(strconv.FormatInt(k.ActiveDistributions, 10))},
	}

	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		result = append(result, row.New(7).Add(
			col.New(8).Add(text.New(
				e.label,
				props.Text{Size: 9, Align: align.Left, Top: 1},
			)),
			col.New(4).Add(text.New(
				e.value,
				props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// alertsRow: critical-alert callout, highlighted when anything needs action.
func alertsRow(k dto.KPIDTO) core.Row {
	color := colorGray
	label := "No critical stock alerts."
	if k.CriticalAlerts > 0 {
		color = colorAlert
		label = fmt.Sprintf("%d critical stock alerts: %d low stock, %d out of stock.",
			k.CriticalAlerts, k.LowStockItems, k.OutOfStockItems)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CRITICAL ALERTS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 7, Color: color,
			}),
		),
	)
}

// footerRow: data freshness and origin note.
func footerRow(k dto.KPIDTO) core.Row {
	note := fmt.Sprintf(
		"Figures as of %s. Produced by the LoMEMIS teaching and learning materials information system.",
		k.LastUpdated.Format("2006-01-02 15:04"),
	)
	return row.New(8).Add(col.New(12).Add(
		text.New(note, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// roleLabel turns a wire role like "district-education-officer" into a
// printable label.
func roleLabel(role string) string {
	words := strings.Split(role, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatAmount inserts comma separators into a fixed-point amount.
// "1234567.50" becomes "1,234,567.50".
func formatAmount(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return intPart + frac
	}
	buf := make([]byte, 0, n+n/3+len(frac))
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, intPart[i])
	}
	return string(buf) + frac
}
