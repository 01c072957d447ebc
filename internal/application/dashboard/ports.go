package dashboard

import "github.com/med-integems/lomemis-dashboard/internal/application/dto"

// Persisted preference tables. The keys match what the frontend stored
// before the dashboard service took over, so existing preference files keep
// working.
const (
	TableCouncilInv    = "councilInv"
	TableCouncilLedger = "councilLedger"
)

// KnownTable reports whether table names a persisted preference table.
func KnownTable(table string) bool {
	return table == TableCouncilInv || table == TableCouncilLedger
}

// PreferenceStore persists per-viewer table display preferences. Lookups
// report ok=false when nothing was stored; writes are write-through.
type PreferenceStore interface {
	PageSize(userID int64, table string) (int, bool)
	Sort(userID int64, table string) (dto.SortSpec, bool)
	SetPageSize(userID int64, table string, size int) error
	SetSort(userID int64, table string, sort dto.SortSpec) error
}

// SummaryRenderer renders the KPI summary report download.
type SummaryRenderer interface {
	RenderSummary(view SummaryReport) ([]byte, error)
}

// SummaryReport is everything the summary PDF shows.
type SummaryReport struct {
	Viewer      dto.UserDTO
	KPIs        dto.KPIDTO
	GeneratedAt string
}
