package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"dinero/internal/core"
)

// Dashboard bundles every derivation the presentation layer renders in one
// view of a single ledger snapshot.
type Dashboard struct {
	Balances      core.BalanceSnapshot `json:"balances"`
	TotalSeries   []core.Point         `json:"totalSeries"`
	SavingsSeries []core.Point         `json:"savingsSeries"`
	Expenses      core.CategorySummary `json:"expenses"`
	Comer         core.CategorySummary `json:"comer"`
}

// BuildDashboard computes the four derivations over one snapshot. They are
// pure reads of the same immutable ledger with no ordering between them, so
// they run concurrently. The expense summaries use the last-month window,
// matching the dashboard's pies.
func (s *LedgerService) BuildDashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	ledger, err := s.Ledger(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	var d Dashboard
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Balances = core.Balances(ledger)
		return nil
	})
	g.Go(func() error {
		d.TotalSeries = core.Series(ledger, core.TrackTotal, core.AllTime(), now)
		return nil
	})
	g.Go(func() error {
		d.SavingsSeries = core.Series(ledger, core.TrackSavings, core.AllTime(), now)
		return nil
	})
	g.Go(func() error {
		recent := ledger.Windowed(core.LastMonth(), now)
		d.Expenses = core.Summarize(recent, core.DirectionExpense, core.ComerCategories)
		d.Comer = core.SummarizeWithin(recent, core.DirectionExpense, core.ComerCategories)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
