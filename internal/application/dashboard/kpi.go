// Package dashboard holds the per-viewer dashboard session: scope, tab and
// filter state, KPI aggregation and exports. All data comes from the core
// API; this package only decides what to fetch and how to combine it.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/med-integems/lomemis-dashboard/internal/domain/entity"
	"github.com/med-integems/lomemis-dashboard/internal/domain/upstream"
	"github.com/med-integems/lomemis-dashboard/pkg/logger"
)

// KPIAggregator turns a scope selection into a KPI snapshot. Council and
// aggregate scopes are single upstream calls; district scope fans out one
// call per council and reduces client-side, because the core API has no
// district-level KPI endpoint.
type KPIAggregator struct {
	kpis upstream.KPIService
	log  *logger.Logger
	now  func() time.Time
}

// NewKPIAggregator builds the aggregator.
func NewKPIAggregator(kpis upstream.KPIService, log *logger.Logger) *KPIAggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &KPIAggregator{kpis: kpis, log: log, now: time.Now}
}

// Council fetches the snapshot for a single council. name is the council's
// display name for the scope message; when unknown the id stands in.
func (a *KPIAggregator) Council(ctx context.Context, id int64, name string) (entity.KPISnapshot, error) {
	k, err := a.kpis.DashboardKPIs(ctx, &id)
	if err != nil {
		return entity.KPISnapshot{}, fmt.Errorf("council %d kpis: %w", id, err)
	}
	if name == "" {
		name = fmt.Sprintf("Council %d", id)
	}
	k.ScopeMessage = fmt.Sprintf("%s council inventory", name)
	k.LastUpdated = a.now()
	return k, nil
}

// Aggregate fetches the global snapshot across all councils.
func (a *KPIAggregator) Aggregate(ctx context.Context) (entity.KPISnapshot, error) {
	k, err := a.kpis.DashboardKPIs(ctx, nil)
	if err != nil {
		return entity.KPISnapshot{}, fmt.Errorf("aggregate kpis: %w", err)
	}
	k.ScopeMessage = "All Councils - Aggregate View"
	k.LastUpdated = a.now()
	return k, nil
}

// District fans out one KPI call per council and reduces the results. A
// failed council contributes zero to every metric instead of failing the
// whole snapshot; an empty council list yields an all-zero snapshot.
func (a *KPIAggregator) District(ctx context.Context, district string, councils []entity.Council) (entity.KPISnapshot, error) {
	type councilResult struct {
		id  int64
		kpi entity.KPISnapshot
		err error
	}

	ch := make(chan councilResult, len(councils))
	for _, c := range councils {
		c := c
		go func() {
			k, err := a.kpis.DashboardKPIs(ctx, &c.ID)
			ch <- councilResult{id: c.ID, kpi: k, err: err}
		}()
	}

	results := make([]entity.KPISnapshot, 0, len(councils))
	for range councils {
		r := <-ch
		if r.err != nil {
			a.log.Debug().Int64("councilId", r.id).Err(r.err).
				Msg("council kpi fetch failed, contributes zero")
			continue
		}
		results = append(results, r.kpi)
	}

	k := sumCouncilKPIs(results)
	k.ScopeMessage = fmt.Sprintf("All District Councils - %s District", district)
	k.LastUpdated = a.now()
	return k, nil
}

// sumCouncilKPIs folds per-council snapshots into one district snapshot.
// CriticalAlerts is recomputed from the summed low/out counts rather than
// summed itself, so the district total cannot drift from its parts.
func sumCouncilKPIs(results []entity.KPISnapshot) entity.KPISnapshot {
	var out entity.KPISnapshot
	values := make([]decimal.Decimal, 0, len(results))
	for _, r := range results {
		out.TotalItems += r.TotalItems
		out.TotalQuantity += r.TotalQuantity
		out.LowStockItems += r.LowStockItems
		out.OutOfStockItems += r.OutOfStockItems
		out.PendingShipments += r.PendingShipments
		out.ConfirmedShipments += r.ConfirmedShipments
		out.ActiveDistributions += r.ActiveDistributions
		values = append(values, r.TotalInventoryValue)
	}
	out.TotalInventoryValue = decimal.Sum(decimal.Zero, values...)
	out.CriticalAlerts = out.LowStockItems + out.OutOfStockItems
	return out
}
