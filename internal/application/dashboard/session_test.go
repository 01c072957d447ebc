package dashboard_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
	"github.com/med-integems/lomemis-dashboard/internal/domain/scope"
	"github.com/med-integems/lomemis-dashboard/internal/domain/upstream"
)

func TestMount_SuperAdminDefaultsToAggregate(t *testing.T) {
	s := mountSession(t, &fakeAPI{})

	v := s.View()
	assert.Equal(t, "aggregate", v.Scope.Kind)
	assert.True(t, v.CanChangeScope)
	assert.Len(t, v.Councils, 3)
	assert.Equal(t, dashboard.TabInventory, v.ActiveTab)

	k, err := s.KPIs()
	require.NoError(t, err)
	assert.Equal(t, "All Councils - Aggregate View", k.ScopeMessage)
}

func TestMount_CouncilOfficerIsLockedToTheirCouncil(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return councilOfficer(5, "Makeni City Council"), nil
		},
		localCouncils: func(context.Context, upstream.CouncilQuery) ([]entity.Council, error) {
			t.Fatal("council officers have no picker, the list must not be loaded")
			return nil, nil
		},
	}
	s := mountSession(t, api)

	v := s.View()
	assert.Equal(t, "council", v.Scope.Kind)
	assert.EqualValues(t, 5, v.Scope.CouncilID)
	assert.False(t, v.CanChangeScope)

	k, err := s.KPIs()
	require.NoError(t, err)
	assert.Equal(t, "Makeni City Council council inventory", k.ScopeMessage)

	err = s.ChangeScope(context.Background(), scope.CouncilOf(9))
	require.ErrorIs(t, err, domain.ErrScopeLocked)
	assert.EqualValues(t, 5, s.View().Scope.CouncilID, "selection must stand after a rejected change")
}

func TestMount_DistrictOfficerWithOneCouncilBehavesLikeCouncilOfficer(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return districtOfficer("Kono"), nil
		},
		localCouncils: func(_ context.Context, q upstream.CouncilQuery) ([]entity.Council, error) {
			assert.Equal(t, "Kono", q.District, "district officers load only their district")
			return []entity.Council{{ID: 8, Name: "Koidu City Council", District: "Kono"}}, nil
		},
	}
	s := mountSession(t, api)

	v := s.View()
	assert.Equal(t, "council", v.Scope.Kind)
	assert.EqualValues(t, 8, v.Scope.CouncilID)
	assert.False(t, v.CanChangeScope)

	require.ErrorIs(t, s.ChangeScope(context.Background(), scope.Aggregate()), domain.ErrScopeLocked)
}

func TestMount_DistrictOfficerWithSeveralCouncilsGetsDistrictScope(t *testing.T) {
	var kpiCouncils []int64
	var mu sync.Mutex
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return districtOfficer("Bo"), nil
		},
		localCouncils: func(context.Context, upstream.CouncilQuery) ([]entity.Council, error) {
			return boCouncils()[:2], nil
		},
		dashboardKPIs: func(_ context.Context, councilID *int64) (entity.KPISnapshot, error) {
			require.NotNil(t, councilID)
			mu.Lock()
			kpiCouncils = append(kpiCouncils, *councilID)
			mu.Unlock()
			return entity.KPISnapshot{TotalItems: 1}, nil
		},
	}
	s := mountSession(t, api)

	v := s.View()
	assert.Equal(t, "district", v.Scope.Kind)
	assert.Equal(t, "Bo", v.Scope.District)
	assert.True(t, v.CanChangeScope)

	k, err := s.KPIs()
	require.NoError(t, err)
	assert.Equal(t, "All District Councils - Bo District", k.ScopeMessage)
	assert.EqualValues(t, 2, k.TotalItems, "both councils aggregated")
	assert.ElementsMatch(t, []int64{1, 2}, kpiCouncils)
}

func TestMount_DeniedForUnknownRole(t *testing.T) {
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return entity.User{ID: 3, Name: "Ibrahim Bangura", Role: entity.ParseRole("district-supervisor")}, nil
		},
	}
	_, err := dashboard.Mount(context.Background(), dashboard.Deps{API: api})
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.ErrorContains(t, err, scope.ReasonInsufficientRole)
}

func TestMount_CouncilListFailureDegradesInsteadOfDenying(t *testing.T) {
	api := &fakeAPI{
		localCouncils: func(context.Context, upstream.CouncilQuery) ([]entity.Council, error) {
			return nil, errors.New("timeout")
		},
	}
	s := mountSession(t, api)

	v := s.View()
	assert.True(t, v.CouncilsDegraded)
	assert.Empty(t, v.Councils)
	assert.Equal(t, "aggregate", v.Scope.Kind)

	// With a degraded list a council id cannot be validated, so it is taken
	// at face value rather than blocking the viewer.
	require.NoError(t, s.ChangeScope(context.Background(), scope.CouncilOf(42)))
	assert.EqualValues(t, 42, s.View().Scope.CouncilID)
}

func TestMount_InitialKPIFailureStillMounts(t *testing.T) {
	api := &fakeAPI{
		dashboardKPIs: func(context.Context, *int64) (entity.KPISnapshot, error) {
			return entity.KPISnapshot{}, errors.New("503")
		},
	}
	s := mountSession(t, api)

	v := s.View()
	assert.Nil(t, v.KPIs, "failed load leaves the KPI zone empty")
	_, err := s.KPIs()
	require.Error(t, err)
}

func TestChangeScope_RefetchesKPIsForTheNewScope(t *testing.T) {
	s := mountSession(t, &fakeAPI{})

	require.NoError(t, s.ChangeScope(context.Background(), scope.CouncilOf(3)))
	k, err := s.KPIs()
	require.NoError(t, err)
	assert.Equal(t, "Kenema City Council council inventory", k.ScopeMessage)

	require.NoError(t, s.ChangeScope(context.Background(), scope.Aggregate()))
	k, err = s.KPIs()
	require.NoError(t, err)
	assert.Equal(t, "All Councils - Aggregate View", k.ScopeMessage)
}

func TestChangeScope_RejectsCouncilOutsideTheLoadedList(t *testing.T) {
	s := mountSession(t, &fakeAPI{})

	err := s.ChangeScope(context.Background(), scope.CouncilOf(99))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "aggregate", s.View().Scope.Kind)
}

func TestChangeScope_StandsWhenKPIRefetchFails(t *testing.T) {
	var calls int32
	api := &fakeAPI{
		dashboardKPIs: func(context.Context, *int64) (entity.KPISnapshot, error) {
			if atomic.AddInt32(&calls, 1) > 1 {
				return entity.KPISnapshot{}, errors.New("upstream flake")
			}
			return entity.KPISnapshot{}, nil
		},
	}
	s := mountSession(t, api)

	require.NoError(t, s.ChangeScope(context.Background(), scope.CouncilOf(1)),
		"the scope switch is not rolled back by a KPI failure")
	assert.EqualValues(t, 1, s.View().Scope.CouncilID)
	_, err := s.KPIs()
	require.Error(t, err, "the KPI zone carries the failure")
}

func TestFilters_ApplySwitchesTabAndTabsKeepTheirCriteria(t *testing.T) {
	s := mountSession(t, &fakeAPI{})

	s.ApplyInventoryFilters(filter.InventoryCriteria{Search: "chalk", Category: "Stationery"})
	assert.Equal(t, dashboard.TabInventory, s.View().ActiveTab)

	require.NoError(t, s.ApplyMovementFilters(filter.MovementCriteria{TransactionType: entity.TxnDistribution}))
	v := s.View()
	assert.Equal(t, dashboard.TabLedger, v.ActiveTab)
	assert.Equal(t, "chalk", v.InventoryFilters.Search, "inventory criteria survive ledger activity")

	require.NoError(t, s.SetActiveTab(dashboard.TabInventory))
	v = s.View()
	assert.Equal(t, dashboard.TabInventory, v.ActiveTab)
	assert.Equal(t, entity.TxnDistribution, v.MovementFilters.TransactionType, "tab clicks never touch criteria")

	require.ErrorIs(t, s.SetActiveTab("shipments"), domain.ErrInvalidInput)
}

func TestApplyMovementFilters_InvalidRangeLeavesHeldStateUntouched(t *testing.T) {
	s := mountSession(t, &fakeAPI{})
	require.NoError(t, s.ApplyMovementFilters(filter.MovementCriteria{
		StartDate: "2026-01-01",
		EndDate:   "2026-03-31",
	}))
	require.NoError(t, s.SetActiveTab(dashboard.TabInventory))

	err := s.ApplyMovementFilters(filter.MovementCriteria{
		StartDate: "2026-05-01",
		EndDate:   "2026-04-01",
	})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)

	v := s.View()
	assert.Equal(t, "2026-01-01", v.MovementFilters.StartDate, "rejected apply must not replace criteria")
	assert.Equal(t, dashboard.TabInventory, v.ActiveTab, "rejected apply must not switch tabs")
}

func TestApplyQuickRange_MergesDatesOnly(t *testing.T) {
	today := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	s := mountSession(t, &fakeAPI{}, withNow(today))
	require.NoError(t, s.ApplyMovementFilters(filter.MovementCriteria{ItemID: 14, TransactionType: entity.TxnReceived}))

	require.NoError(t, s.ApplyQuickRange(filter.RangeLast7Days))

	v := s.View()
	assert.Equal(t, "2026-08-19", v.MovementFilters.StartDate)
	assert.Equal(t, "2026-08-26", v.MovementFilters.EndDate)
	assert.EqualValues(t, 14, v.MovementFilters.ItemID, "quick ranges only touch the dates")
	assert.Equal(t, entity.TxnReceived, v.MovementFilters.TransactionType)

	require.ErrorIs(t, s.ApplyQuickRange("last-quarter"), domain.ErrInvalidInput)
}

func TestClearFilter_RemovesOneCriterionAtATime(t *testing.T) {
	s := mountSession(t, &fakeAPI{})
	s.ApplyInventoryFilters(filter.InventoryCriteria{
		Search:   "exercise books",
		Category: "Stationery",
		Presence: filter.LowStockOnly(),
	})

	require.NoError(t, s.ClearFilter(dashboard.TabInventory, "search"))
	v := s.View()
	assert.Empty(t, v.InventoryFilters.Search)
	assert.Equal(t, "Stationery", v.InventoryFilters.Category)
	assert.True(t, v.InventoryFilters.LowStockOnly)

	require.ErrorIs(t, s.ClearFilter(dashboard.TabInventory, "warehouse"), domain.ErrInvalidInput)
	require.ErrorIs(t, s.ClearFilter("shipments", "search"), domain.ErrInvalidInput)
}

func TestClearFilters_ResetsOnlyTheGivenTab(t *testing.T) {
	s := mountSession(t, &fakeAPI{})
	s.ApplyInventoryFilters(filter.InventoryCriteria{Search: "pencils"})
	require.NoError(t, s.ApplyMovementFilters(filter.MovementCriteria{StartDate: "2026-01-01", EndDate: "2026-02-01"}))

	require.NoError(t, s.ClearFilters(dashboard.TabLedger))

	v := s.View()
	assert.Empty(t, v.MovementFilters.StartDate)
	assert.Equal(t, "pencils", v.InventoryFilters.Search, "the other tab keeps its criteria")
}

func TestInventory_ScopeWinsOverCriteriaCouncil(t *testing.T) {
	var got filter.InventoryQuery
	api := &fakeAPI{
		councilInventory: func(_ context.Context, q filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error) {
			got = q
			return nil, 0, nil
		},
	}
	s := mountSession(t, api)
	require.NoError(t, s.ChangeScope(context.Background(), scope.CouncilOf(2)))
	s.ApplyInventoryFilters(filter.InventoryCriteria{CouncilID: 9, Presence: filter.WithStock(true)})

	_, err := s.Inventory(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.CouncilID, "scope council overrides the criteria council")
	assert.Empty(t, got.District)
	require.NotNil(t, got.HasStock)
	assert.True(t, *got.HasStock)
}

// A council officer's scope reaches every fetch even with empty criteria: the
// first inventory listing after mount already carries their council id.
func TestInventory_CouncilScopeAppliesToEmptyCriteria(t *testing.T) {
	var kpiCouncils []int64
	var got filter.InventoryQuery
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return councilOfficer(7, "Kailahun District Council"), nil
		},
		dashboardKPIs: func(_ context.Context, councilID *int64) (entity.KPISnapshot, error) {
			require.NotNil(t, councilID)
			kpiCouncils = append(kpiCouncils, *councilID)
			return entity.KPISnapshot{}, nil
		},
		councilInventory: func(_ context.Context, q filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error) {
			got = q
			return nil, 0, nil
		},
	}
	s := mountSession(t, api)

	assert.Equal(t, []int64{7}, kpiCouncils, "mount fetches KPIs once, scoped to the council")

	_, err := s.Inventory(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.CouncilID, "the scope council id is merged into empty criteria")
	assert.Empty(t, got.Search)
	assert.Nil(t, got.HasStock)
}

func TestMovements_DistrictScopeCarriesDistrictNotCouncil(t *testing.T) {
	var got filter.MovementQuery
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return districtOfficer("Bo"), nil
		},
		localCouncils: func(context.Context, upstream.CouncilQuery) ([]entity.Council, error) {
			return boCouncils()[:2], nil
		},
		councilStockMovements: func(_ context.Context, q filter.MovementQuery, page, limit int) ([]entity.StockMovement, int64, error) {
			got = q
			return nil, 0, nil
		},
	}
	s := mountSession(t, api)
	require.NoError(t, s.ApplyMovementFilters(filter.MovementCriteria{StartDate: "2026-02-01", EndDate: "2026-02-28"}))

	_, err := s.Movements(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bo", got.District)
	assert.Zero(t, got.CouncilID)
	assert.Equal(t, "2026-02-01", got.StartDate)
	assert.Equal(t, "2026-02-28", got.EndDate)
}

// A slow KPI response that finishes after a newer one has landed must be
// discarded, never installed over the newer snapshot.
func TestRefreshKPIs_StaleResponseIsDiscarded(t *testing.T) {
	api := &fakeAPI{}
	s := mountSession(t, api)

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	api.dashboardKPIs = func(context.Context, *int64) (entity.KPISnapshot, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
			return entity.KPISnapshot{TotalItems: 1}, nil // slow, stale
		}
		return entity.KPISnapshot{TotalItems: 2}, nil // fast, current
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var staleResult dto.KPIDTO
	var staleErr error
	go func() {
		defer wg.Done()
		staleResult, staleErr = s.RefreshKPIs(context.Background())
	}()
	<-entered

	fresh, err := s.RefreshKPIs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, fresh.TotalItems)

	close(release)
	wg.Wait()

	require.NoError(t, staleErr)
	assert.EqualValues(t, 2, staleResult.TotalItems, "the superseded refresh reports the newer state")

	k, err := s.KPIs()
	require.NoError(t, err)
	assert.EqualValues(t, 2, k.TotalItems, "stale snapshot must not overwrite the newer one")
}

func TestPreferences_PersistedPageSizeBecomesTheDefaultLimit(t *testing.T) {
	prefs := newFakePrefs()
	prefs.sizes[prefKey(7, dashboard.TableCouncilInv)] = 25

	var gotLimit int
	api := &fakeAPI{
		councilInventory: func(_ context.Context, _ filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error) {
			gotLimit = limit
			return nil, 0, nil
		},
	}
	s := mountSession(t, api, withPrefs(prefs))

	_, err := s.Inventory(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 25, gotLimit, "stored page size is the default")

	_, err = s.Inventory(context.Background(), dto.PageRequest{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit, "an explicit limit wins")
}

func TestPreferences_UpdateWritesThroughAndValidates(t *testing.T) {
	prefs := newFakePrefs()
	s := mountSession(t, &fakeAPI{}, withPrefs(prefs))

	require.NoError(t, s.UpdatePreferences(dashboard.TableCouncilLedger, dto.TablePreferencesDTO{
		PageSize: 50,
		Sort:     &dto.SortSpec{By: "transactionDate", Order: "desc"},
	}))

	size, ok := prefs.PageSize(7, dashboard.TableCouncilLedger)
	require.True(t, ok)
	assert.Equal(t, 50, size)
	sort, ok := prefs.Sort(7, dashboard.TableCouncilLedger)
	require.True(t, ok)
	assert.Equal(t, dto.SortSpec{By: "transactionDate", Order: "desc"}, sort)

	v := s.View()
	assert.Equal(t, 50, v.Preferences.CouncilLedger.PageSize)
	require.NotNil(t, v.Preferences.CouncilLedger.Sort)

	require.ErrorIs(t, s.UpdatePreferences("warehouseInv", dto.TablePreferencesDTO{PageSize: 10}), domain.ErrInvalidInput)
	require.ErrorIs(t, s.UpdatePreferences(dashboard.TableCouncilInv, dto.TablePreferencesDTO{PageSize: 1000}), domain.ErrInvalidInput)
	require.ErrorIs(t, s.UpdatePreferences(dashboard.TableCouncilInv, dto.TablePreferencesDTO{
		Sort: &dto.SortSpec{By: "itemName", Order: "descending"},
	}), domain.ErrInvalidInput)
}

func TestPreferences_WriteFailureKeepsSessionValues(t *testing.T) {
	prefs := newFakePrefs()
	prefs.writeErr = errors.New("disk full")

	var gotLimit int
	api := &fakeAPI{
		councilInventory: func(_ context.Context, _ filter.InventoryQuery, page, limit int) ([]entity.InventoryRecord, int64, error) {
			gotLimit = limit
			return nil, 0, nil
		},
	}
	s := mountSession(t, api, withPrefs(prefs))

	require.NoError(t, s.UpdatePreferences(dashboard.TableCouncilInv, dto.TablePreferencesDTO{PageSize: 10}),
		"persistence is best-effort")

	_, err := s.Inventory(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit, "the session keeps the value even when the write failed")
}

func TestItemMovements_ResolvesCouncilFromScope(t *testing.T) {
	var gotCouncil, gotItem int64
	api := &fakeAPI{
		currentUser: func(context.Context) (entity.User, error) {
			return councilOfficer(5, "Makeni City Council"), nil
		},
		councilItemStockMovements: func(_ context.Context, councilID, itemID int64, page, limit int) ([]entity.StockMovement, int64, error) {
			gotCouncil, gotItem = councilID, itemID
			return nil, 0, nil
		},
	}
	s := mountSession(t, api)

	_, err := s.ItemMovements(context.Background(), 31, 0, dto.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, gotCouncil, "council scope supplies the council")
	assert.EqualValues(t, 31, gotItem)

	_, err = s.ItemMovements(context.Background(), 0, 5, dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemMovements_RequiresCouncilOutsideCouncilScope(t *testing.T) {
	var gotCouncil int64
	api := &fakeAPI{
		councilItemStockMovements: func(_ context.Context, councilID, itemID int64, page, limit int) ([]entity.StockMovement, int64, error) {
			gotCouncil = councilID
			return nil, 0, nil
		},
	}
	s := mountSession(t, api) // aggregate scope

	_, err := s.ItemMovements(context.Background(), 31, 0, dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.ItemMovements(context.Background(), 31, 2, dto.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, gotCouncil)
}
