package valuation

import (
	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// Comparables prices revenue at the sector/region benchmark multiple
type Comparables struct{}

func (Comparables) ID() models.MethodID { return models.MethodComparables }

func (Comparables) DependsOn() []string {
	return []string{"revenue", "sector", "industry", "region"}
}

func (c Comparables) Compute(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult {
	if p.RevenueOrZero() <= 0 {
		return unapplicable(c.ID(), p, "revenue must be greater than 0")
	}
	m, ok := lookupBenchmark(p, snap)
	if !ok {
		return unapplicable(c.ID(), p, models.ReasonBenchmarkUnavailable)
	}
	if m.RevenueMultiple <= 0 {
		return unapplicable(c.ID(), p, "benchmark has no revenue multiple")
	}

	var t trail
	t.money("revenue", p.RevenueOrZero())
	t.num("revenue_multiple", m.RevenueMultiple)
	t.benchmark(m)
	return applicable(c.ID(), p, money.Scale(p.RevenueOrZero(), m.RevenueMultiple), t)
}
