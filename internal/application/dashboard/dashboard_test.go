package dashboard_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
	"github.com/med-integems/lomemis-dashboard/internal/domain/upstream"
)

// fakeAPI implements upstream.API with overridable function fields. Nil
// fields fall back to harmless defaults so each test only wires what it
// checks.
type fakeAPI struct {
	currentUser               func(context.Context) (entity.User, error)
	localCouncils             func(context.Context, upstream.CouncilQuery) ([]entity.Council, error)
	dashboardKPIs             func(context.Context, *int64) (entity.KPISnapshot, error)
	councilInventory          func(context.Context, filter.InventoryQuery, int, int) ([]entity.InventoryRecord, int64, error)
	councilStockMovements     func(context.Context, filter.MovementQuery, int, int) ([]entity.StockMovement, int64, error)
	councilItemStockMovements func(context.Context, int64, int64, int, int) ([]entity.StockMovement, int64, error)
	items                     func(context.Context, string, int, int) ([]entity.Item, int64, error)
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (entity.User, error) {
	if f.currentUser != nil {
		return f.currentUser(ctx)
	}
	return superAdmin(), nil
}

func (f *fakeAPI) LocalCouncils(ctx context.Context, q upstream.CouncilQuery) ([]entity.Council, error) {
	if f.localCouncils != nil {
		return f.localCouncils(ctx, q)
	}
	return boCouncils(), nil
}

func (f *fakeAPI) DashboardKPIs(ctx context.Context, councilID *int64) (entity.KPISnapshot, error) {
	if f.dashboardKPIs != nil {
		return f.dashboardKPIs(ctx, councilID)
	}
	return entity.KPISnapshot{}, nil
}

func (f *fakeAPI) CouncilInventory(ctx context.Context, q filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error) {
	if f.councilInventory != nil {
		return f.councilInventory(ctx, q, page, limit)
	}
	return nil, 0, nil
}

func (f *fakeAPI) CouncilStockMovements(ctx context.Context, q filter.MovementQuery, page, limit int) ([]entity.StockMovement, int64, error) {
	if f.councilStockMovements != nil {
		return f.councilStockMovements(ctx, q, page, limit)
	}
	return nil, 0, nil
}

func (f *fakeAPI) CouncilItemStockMovements(ctx context.Context, councilID, itemID int64, page, limit int) ([]entity.StockMovement, int64, error) {
	if f.councilItemStockMovements != nil {
		return f.councilItemStockMovements(ctx, councilID, itemID, page, limit)
	}
	return nil, 0, nil
}

func (f *fakeAPI) Items(ctx context.Context, search string, page, limit int) ([]entity.Item, int64, error) {
	if f.items != nil {
		return f.items(ctx, search, page, limit)
	}
	return nil, 0, nil
}

// fakePrefs is an in-memory PreferenceStore.
type fakePrefs struct {
	mu       sync.Mutex
	sizes    map[string]int
	sorts    map[string]dto.SortSpec
	writeErr error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{sizes: map[string]int{}, sorts: map[string]dto.SortSpec{}}
}

func prefKey(userID int64, table string) string {
	return fmt.Sprintf("%d.%s", userID, table)
}

func (f *fakePrefs) PageSize(userID int64, table string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.sizes[prefKey(userID, table)]
	return v, ok
}

func (f *fakePrefs) Sort(userID int64, table string) (dto.SortSpec, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.sorts[prefKey(userID, table)]
	return v, ok
}

func (f *fakePrefs) SetPageSize(userID int64, table string, size int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.sizes[prefKey(userID, table)] = size
	return nil
}

func (f *fakePrefs) SetSort(userID int64, table string, sort dto.SortSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.sorts[prefKey(userID, table)] = sort
	return nil
}

// fakeRenderer records the report it was asked to render.
type fakeRenderer struct {
	got *dashboard.SummaryReport
	out []byte
	err error
}

func (f *fakeRenderer) RenderSummary(r dashboard.SummaryReport) ([]byte, error) {
	f.got = &r
	if f.err != nil {
		return nil, f.err
	}
	if f.out == nil {
		return []byte("%PDF-1.7 fake"), nil
	}
	return f.out, nil
}

func superAdmin() entity.User {
	return entity.User{ID: 7, Name: "Aminata Sesay", Role: entity.RoleSuperAdmin}
}

func councilOfficer(councilID int64, councilName string) entity.User {
	return entity.User{
		ID:          12,
		Name:        "Mohamed Kamara",
		Role:        entity.RoleCouncilOfficer,
		CouncilID:   &councilID,
		CouncilName: councilName,
	}
}

func districtOfficer(district string) entity.User {
	return entity.User{ID: 23, Name: "Fatmata Conteh", Role: entity.RoleDistrictOfficer, District: district}
}

func boCouncils() []entity.Council {
	return []entity.Council{
		{ID: 1, Name: "Bo City Council", District: "Bo"},
		{ID: 2, Name: "Bo District Council", District: "Bo"},
		{ID: 3, Name: "Kenema City Council", District: "Kenema"},
	}
}

// mountSession mounts a session over the fake API, failing the test on any
// mount error.
func mountSession(t *testing.T, api *fakeAPI, opts ...func(*dashboard.Deps)) *dashboard.Session {
	t.Helper()
	deps := dashboard.Deps{API: api}
	for _, o := range opts {
		o(&deps)
	}
	s, err := dashboard.Mount(context.Background(), deps)
	require.NoError(t, err)
	return s
}

func withPrefs(p dashboard.PreferenceStore) func(*dashboard.Deps) {
	return func(d *dashboard.Deps) { d.Prefs = p }
}

func withRenderer(r dashboard.SummaryRenderer) func(*dashboard.Deps) {
	return func(d *dashboard.Deps) { d.PDF = r }
}

func withNow(now time.Time) func(*dashboard.Deps) {
	return func(d *dashboard.Deps) { d.Now = func() time.Time { return now } }
}
