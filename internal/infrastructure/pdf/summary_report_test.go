package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/infrastructure/pdf"
)

func TestRenderSummary_ProducesPDF(t *testing.T) {
	r := pdf.NewMarotoSummaryRenderer()

	data, err := r.RenderSummary(dashboard.SummaryReport{
		Viewer: dto.UserDTO{Name: "Aminata Sesay", Role: "super-admin"},
		KPIs: dto.KPIDTO{
			TotalItems:          1200,
			TotalQuantity:       45800,
			TotalInventoryValue: decimal.RequireFromString("1234567.50"),
			LowStockItems:       14,
			OutOfStockItems:     3,
			CriticalAlerts:      17,
			ScopeMessage:        "All Councils - Aggregate View",
			LastUpdated:         time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC),
		},
		GeneratedAt: "2026-08-26 09:31",
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
