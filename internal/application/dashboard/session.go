package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/med-integems/lomemis-dashboard/internal/application/dto"
	"github.com/med-integems/lomemis-dashboard/internal/domain"
	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/filter"
	"github.com/med-integems/lomemis-dashboard/internal/domain/scope"
	"github.com/med-integems/lomemis-dashboard/internal/domain/upstream"
	"github.com/med-integems/lomemis-dashboard/pkg/logger"
)

// Dashboard tabs. Filter applies switch to the tab they belong to; explicit
// tab clicks never touch criteria.
const (
	TabInventory = "inventory"
	TabLedger    = "ledger"
)

// KnownTab reports whether tab names a dashboard tab.
func KnownTab(tab string) bool {
	return tab == TabInventory || tab == TabLedger
}

// councilListLimit bounds the council list loaded at mount. Sierra Leone has
// a few dozen local councils, so one page always covers it.
const councilListLimit = 500

// Deps is everything a session needs from the outside.
type Deps struct {
	API   upstream.API
	Prefs PreferenceStore
	PDF   SummaryRenderer
	Log   *logger.Logger
	Now   func() time.Time // override in tests; nil means time.Now
}

// Session is one viewer's live dashboard state: resolved scope, active tab,
// per-tab filter criteria, the current KPI snapshot and cached table
// preferences. All methods are safe for concurrent use; upstream calls run
// outside the lock.
type Session struct {
	mu sync.Mutex

	api   upstream.API
	kpis  *KPIAggregator
	prefs PreferenceStore
	pdf   SummaryRenderer
	log   *logger.Logger
	now   func() time.Time

	user      entity.User
	decision  scope.Decision
	selection scope.Selection
	activeTab string

	invCriteria filter.InventoryCriteria
	movCriteria filter.MovementCriteria

	// KPI slot. kpiSeq is a monotonic fetch token: a finished fetch installs
	// its result only while its token is still the newest, so a slow earlier
	// response can never overwrite a later one.
	kpi    *entity.KPISnapshot
	kpiErr error
	kpiSeq uint64

	tablePrefs map[string]dto.TablePreferencesDTO
}

// Mount resolves the viewer's access and builds a live session: profile and
// council list from the core API, scope resolution, persisted preferences,
// then the initial KPI load. A denied resolution returns ErrAccessDenied
// with the reason; a failed initial KPI load marks the KPI zone but does not
// fail the mount.
func Mount(ctx context.Context, d Deps) (*Session, error) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}

	user, err := d.API.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("mount: current user: %w", err)
	}

	// Load the council list the role can reach. Failures degrade the list,
	// they never fail the mount.
	var councils []entity.Council
	var councilsErr error
	switch user.Role {
	case entity.RoleSuperAdmin, entity.RoleWarehouseManager, entity.RoleViewOnly:
		councils, councilsErr = d.API.LocalCouncils(ctx, upstream.CouncilQuery{Limit: councilListLimit})
	case entity.RoleDistrictOfficer:
		if user.District != "" {
			councils, councilsErr = d.API.LocalCouncils(ctx, upstream.CouncilQuery{
				District: user.District,
				Limit:    councilListLimit,
			})
		}
	}
	if councilsErr != nil {
		d.Log.Warn().Err(councilsErr).Int64("userId", user.ID).
			Msg("council list load failed, continuing degraded")
	}

	decision := scope.Resolve(user, councils, councilsErr)
	if !decision.Granted {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccessDenied, decision.Reason)
	}

	agg := NewKPIAggregator(d.API, d.Log)
	agg.now = d.Now

	s := &Session{
		api:        d.API,
		kpis:       agg,
		prefs:      d.Prefs,
		pdf:        d.PDF,
		log:        d.Log,
		now:        d.Now,
		user:       user,
		decision:   decision,
		selection:  decision.Default,
		activeTab:  TabInventory,
		tablePrefs: map[string]dto.TablePreferencesDTO{},
	}
	s.loadPreferences()

	if _, err := s.RefreshKPIs(ctx); err != nil {
		d.Log.Warn().Err(err).Int64("userId", user.ID).Msg("initial kpi load failed")
	}
	return s, nil
}

// User returns the viewer this session belongs to.
func (s *Session) User() entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// View snapshots the whole session for the frontend.
func (s *Session) View() dto.SessionViewDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := dto.SessionViewDTO{
		User:             dto.FromUser(s.user),
		Scope:            dto.FromSelection(s.selection),
		CanChangeScope:   s.decision.CanChangeScope,
		Councils:         dto.FromCouncils(s.decision.Councils),
		CouncilsDegraded: s.decision.CouncilsDegraded,
		ActiveTab:        s.activeTab,
		InventoryFilters: dto.FromInventoryCriteria(s.invCriteria),
		MovementFilters:  dto.FromMovementCriteria(s.movCriteria),
		Preferences:      s.preferencesLocked(),
	}
	if s.kpi != nil {
		k := dto.FromKPISnapshot(*s.kpi)
		v.KPIs = &k
	}
	return v
}

// ChangeScope switches the session to sel after checking it against the
// resolved decision. The switch stands even when the KPI refetch fails; the
// KPI zone carries the failure until the next refresh.
func (s *Session) ChangeScope(ctx context.Context, sel scope.Selection) error {
	s.mu.Lock()
	if !s.decision.AllowsSelection(sel) {
		locked := !s.decision.CanChangeScope
		s.mu.Unlock()
		if locked {
			return fmt.Errorf("change scope: %w", domain.ErrScopeLocked)
		}
		return fmt.Errorf("change scope: %w: selection not available to this viewer", domain.ErrInvalidInput)
	}
	if sel.Equal(s.selection) {
		s.mu.Unlock()
		return nil
	}
	s.selection = sel
	s.mu.Unlock()

	if _, err := s.RefreshKPIs(ctx); err != nil {
		s.log.Warn().Err(err).Str("scope", sel.String()).Msg("kpi refetch after scope change failed")
	}
	return nil
}

// SetActiveTab records an explicit tab click. Criteria on both tabs stay as
// they are.
func (s *Session) SetActiveTab(tab string) error {
	if !KnownTab(tab) {
		return fmt.Errorf("set tab: %w: unknown tab %q", domain.ErrInvalidInput, tab)
	}
	s.mu.Lock()
	s.activeTab = tab
	s.mu.Unlock()
	return nil
}

// ApplyInventoryFilters replaces the inventory criteria wholesale and makes
// the inventory tab active.
func (s *Session) ApplyInventoryFilters(c filter.InventoryCriteria) {
	s.mu.Lock()
	s.invCriteria = c
	s.activeTab = TabInventory
	s.mu.Unlock()
}

// ApplyMovementFilters replaces the ledger criteria wholesale and makes the
// ledger tab active. Invalid criteria are rejected and the held state stays
// untouched.
func (s *Session) ApplyMovementFilters(c filter.MovementCriteria) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("apply movement filters: %w", err)
	}
	s.mu.Lock()
	s.movCriteria = c
	s.activeTab = TabLedger
	s.mu.Unlock()
	return nil
}

// ApplyQuickRange merges a computed date range into the ledger criteria,
// leaving every other criterion alone.
func (s *Session) ApplyQuickRange(kind filter.RangeKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := filter.ApplyQuickRange(s.movCriteria, kind, s.now())
	if err != nil {
		return fmt.Errorf("quick range: %w", err)
	}
	s.movCriteria = merged
	s.activeTab = TabLedger
	return nil
}

// ClearFilter removes a single criterion from the given tab.
func (s *Session) ClearFilter(tab, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch tab {
	case TabInventory:
		next, ok := s.invCriteria.Clear(key)
		if !ok {
			return fmt.Errorf("clear filter: %w: unknown inventory filter %q", domain.ErrInvalidInput, key)
		}
		s.invCriteria = next
	case TabLedger:
		next, ok := s.movCriteria.Clear(key)
		if !ok {
			return fmt.Errorf("clear filter: %w: unknown ledger filter %q", domain.ErrInvalidInput, key)
		}
		s.movCriteria = next
	default:
		return fmt.Errorf("clear filter: %w: unknown tab %q", domain.ErrInvalidInput, tab)
	}
	return nil
}

// ClearFilters resets the given tab's criteria to their defaults.
func (s *Session) ClearFilters(tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch tab {
	case TabInventory:
		s.invCriteria = filter.InventoryCriteria{}
	case TabLedger:
		s.movCriteria = filter.MovementCriteria{}
	default:
		return fmt.Errorf("clear filters: %w: unknown tab %q", domain.ErrInvalidInput, tab)
	}
	return nil
}

// KPIs returns the current snapshot without refetching.
func (s *Session) KPIs() (dto.KPIDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// RefreshKPIs refetches the snapshot for the current scope. Mutating dialogs
// (receipts, distributions) call this after the core API confirms their
// write, and the frontend's refresh button maps here too.
func (s *Session) RefreshKPIs(ctx context.Context) (dto.KPIDTO, error) {
	s.mu.Lock()
	s.kpiSeq++
	seq := s.kpiSeq
	sel := s.selection
	councils := s.districtCouncilsLocked(sel)
	name := s.councilNameLocked(sel)
	s.mu.Unlock()

	snap, err := s.fetchKPIs(ctx, sel, councils, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.kpiSeq {
		// A newer fetch owns the slot; drop this result and report whatever
		// state the newer one left (or will leave).
		return s.snapshotLocked()
	}
	if err != nil {
		s.kpi = nil
		s.kpiErr = err
		return dto.KPIDTO{}, err
	}
	s.kpi = &snap
	s.kpiErr = nil
	return dto.FromKPISnapshot(snap), nil
}

func (s *Session) fetchKPIs(ctx context.Context, sel scope.Selection, councils []entity.Council, councilName string) (entity.KPISnapshot, error) {
	switch sel.Kind {
	case scope.KindCouncil:
		return s.kpis.Council(ctx, sel.CouncilID, councilName)
	case scope.KindDistrict:
		return s.kpis.District(ctx, sel.District, councils)
	default:
		return s.kpis.Aggregate(ctx)
	}
}

func (s *Session) snapshotLocked() (dto.KPIDTO, error) {
	if s.kpi == nil {
		if s.kpiErr != nil {
			return dto.KPIDTO{}, s.kpiErr
		}
		return dto.KPIDTO{}, fmt.Errorf("kpis not loaded: %w", domain.ErrUpstreamUnavailable)
	}
	return dto.FromKPISnapshot(*s.kpi), nil
}

// districtCouncilsLocked picks the councils a district snapshot fans out
// over. Entries without a district name come from a pre-filtered load and
// are taken as matching.
func (s *Session) districtCouncilsLocked(sel scope.Selection) []entity.Council {
	if sel.Kind != scope.KindDistrict {
		return nil
	}
	out := make([]entity.Council, 0, len(s.decision.Councils))
	for _, c := range s.decision.Councils {
		if c.District == "" || c.District == sel.District {
			out = append(out, c)
		}
	}
	return out
}

func (s *Session) councilNameLocked(sel scope.Selection) string {
	if sel.Kind != scope.KindCouncil {
		return ""
	}
	for _, c := range s.decision.Councils {
		if c.ID == sel.CouncilID {
			return c.Name
		}
	}
	if s.user.CouncilID != nil && *s.user.CouncilID == sel.CouncilID {
		return s.user.CouncilName
	}
	return ""
}

// Inventory lists the inventory table through the effective query: held
// criteria merged with the scope, scope winning any council conflict.
func (s *Session) Inventory(ctx context.Context, page dto.PageRequest) (dto.InventoryListDTO, error) {
	s.mu.Lock()
	q := filter.EffectiveInventoryQuery(s.invCriteria, s.selection)
	p, limit := s.pageDefaultsLocked(TableCouncilInv, page)
	s.mu.Unlock()

	records, total, err := s.api.CouncilInventory(ctx, q, p, limit)
	if err != nil {
		return dto.InventoryListDTO{}, fmt.Errorf("inventory listing: %w", err)
	}
	return dto.NewInventoryListDTO(records, p, limit, total), nil
}

// Movements lists the stock movement ledger through the effective query.
func (s *Session) Movements(ctx context.Context, page dto.PageRequest) (dto.MovementListDTO, error) {
	s.mu.Lock()
	q := filter.EffectiveMovementQuery(s.movCriteria, s.selection)
	p, limit := s.pageDefaultsLocked(TableCouncilLedger, page)
	s.mu.Unlock()

	movements, total, err := s.api.CouncilStockMovements(ctx, q, p, limit)
	if err != nil {
		return dto.MovementListDTO{}, fmt.Errorf("movement listing: %w", err)
	}
	return dto.NewMovementListDTO(movements, p, limit, total), nil
}

// ItemMovements is the per-item ledger drill-down. councilID may be zero
// when the session's scope already names a council.
func (s *Session) ItemMovements(ctx context.Context, itemID, councilID int64, page dto.PageRequest) (dto.MovementListDTO, error) {
	if itemID <= 0 {
		return dto.MovementListDTO{}, fmt.Errorf("item movements: %w: itemId required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	if councilID <= 0 && s.selection.Kind == scope.KindCouncil {
		councilID = s.selection.CouncilID
	}
	s.mu.Unlock()
	if councilID <= 0 {
		return dto.MovementListDTO{}, fmt.Errorf("item movements: %w: councilId required outside council scope", domain.ErrInvalidInput)
	}

	page.DefaultPage()
	movements, total, err := s.api.CouncilItemStockMovements(ctx, councilID, itemID, page.Page, page.Limit)
	if err != nil {
		return dto.MovementListDTO{}, fmt.Errorf("item movements: %w", err)
	}
	return dto.NewMovementListDTO(movements, page.Page, page.Limit, total), nil
}

// Items looks up TLM items for the filter forms.
func (s *Session) Items(ctx context.Context, search string, page dto.PageRequest) (dto.ItemListDTO, error) {
	page.DefaultPage()
	items, total, err := s.api.Items(ctx, search, page.Page, page.Limit)
	if err != nil {
		return dto.ItemListDTO{}, fmt.Errorf("item lookup: %w", err)
	}
	return dto.NewItemListDTO(items, page.Page, page.Limit, total), nil
}

// UpdatePreferences validates and stores table display preferences. The
// store is write-through but best-effort: a failed write keeps the new
// values for this session and logs the problem.
func (s *Session) UpdatePreferences(table string, p dto.TablePreferencesDTO) error {
	if !KnownTable(table) {
		return fmt.Errorf("preferences: %w: unknown table %q", domain.ErrInvalidInput, table)
	}
	if p.PageSize != 0 && (p.PageSize < 1 || p.PageSize > 200) {
		return fmt.Errorf("preferences: %w: page size out of range", domain.ErrInvalidInput)
	}
	if p.Sort != nil {
		if p.Sort.By == "" {
			return fmt.Errorf("preferences: %w: sort.by required", domain.ErrInvalidInput)
		}
		if p.Sort.Order != "asc" && p.Sort.Order != "desc" {
			return fmt.Errorf("preferences: %w: sort.order must be asc or desc", domain.ErrInvalidInput)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.tablePrefs[table]
	if p.PageSize != 0 {
		cur.PageSize = p.PageSize
		if s.prefs != nil {
			if err := s.prefs.SetPageSize(s.user.ID, table, p.PageSize); err != nil {
				s.log.Warn().Err(err).Str("table", table).Msg("preference write failed")
			}
		}
	}
	if p.Sort != nil {
		sort := *p.Sort
		cur.Sort = &sort
		if s.prefs != nil {
			if err := s.prefs.SetSort(s.user.ID, table, sort); err != nil {
				s.log.Warn().Err(err).Str("table", table).Msg("preference write failed")
			}
		}
	}
	s.tablePrefs[table] = cur
	return nil
}

func (s *Session) loadPreferences() {
	if s.prefs == nil {
		return
	}
	for _, table := range []string{TableCouncilInv, TableCouncilLedger} {
		var p dto.TablePreferencesDTO
		if size, ok := s.prefs.PageSize(s.user.ID, table); ok {
			p.PageSize = size
		}
		if sort, ok := s.prefs.Sort(s.user.ID, table); ok {
			p.Sort = &sort
		}
		s.tablePrefs[table] = p
	}
}

func (s *Session) preferencesLocked() dto.PreferencesDTO {
	return dto.PreferencesDTO{
		CouncilInv:    s.tablePrefs[TableCouncilInv],
		CouncilLedger: s.tablePrefs[TableCouncilLedger],
	}
}

// pageDefaultsLocked resolves page and limit for a table listing: an
// explicit limit wins, then the viewer's persisted page size, then 50.
func (s *Session) pageDefaultsLocked(table string, page dto.PageRequest) (int, int) {
	p := page.Page
	if p <= 0 {
		p = 1
	}
	limit := page.Limit
	if limit <= 0 {
		if pref, ok := s.tablePrefs[table]; ok && pref.PageSize > 0 {
			limit = pref.PageSize
		} else {
			limit = 50
		}
	}
	if limit > 200 {
		limit = 200
	}
	return p, limit
}
