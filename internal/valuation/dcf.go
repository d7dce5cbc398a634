package valuation

import (
	"math"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
	"github.com/camayank/startupvaluator/internal/risk"
)

const (
	dcfYears          = 5
	terminalGrowth    = 0.03
	rateSensitivity   = 0.02
	maxProjectionRate = 3.0
)

// DCF discounts a five-year free-cash-flow projection plus a Gordon terminal
// value. Growth fades linearly from the profile rate to the terminal rate.
type DCF struct{}

func (DCF) ID() models.MethodID { return models.MethodDCF }

func (DCF) DependsOn() []string {
	return []string{"revenue", "growth_rate", "margins", "region"}
}

func (d DCF) Compute(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult {
	switch {
	case p.RevenueOrZero() <= 0:
		return unapplicable(d.ID(), p, "revenue must be greater than 0")
	case p.GrowthRate == nil:
		return unapplicable(d.ID(), p, "growth_rate is required")
	case p.Margins == nil:
		return unapplicable(d.ID(), p, "margins is required")
	case *p.Margins <= 0:
		return unapplicable(d.ID(), p, "margins must be positive to produce free cash flow")
	}

	var bench *models.Benchmark
	if m, ok := lookupBenchmark(p, snap); ok {
		bench = &m.Benchmark
	}
	premium := risk.Premium(p, bench)
	rate := premium.Rate
	if rate <= terminalGrowth {
		return unapplicablef(d.ID(), p, "discount rate %s does not exceed terminal growth %s",
			money.FormatFloat(rate), money.FormatFloat(terminalGrowth))
	}

	growth := math.Min(*p.GrowthRate, maxProjectionRate)
	revenue := float64(p.RevenueOrZero())
	margin := *p.Margins
	regionMult, _ := benchmarks.RegionMultiplier(p.Region)

	base := presentValue(revenue, growth, margin, rate)
	value := money.FromFloat(base * regionMult)
	low := money.FromFloat(presentValue(revenue, growth, margin, rate+rateSensitivity) * regionMult)
	high := money.FromFloat(presentValue(revenue, growth, margin, rate-rateSensitivity) * regionMult)

	var t trail
	t.money("revenue", p.RevenueOrZero())
	t.num("growth_rate", growth)
	t.num("margins", margin)
	t.num("discount_rate", rate)
	t.num("terminal_growth", terminalGrowth)
	t.add("projection_years", money.FormatInt(dcfYears))
	t.num("region_multiplier", regionMult)
	for _, f := range premium.Factors {
		t.num("risk."+f.Name+"_bp", f.ContributionBP)
	}

	res := applicable(d.ID(), p, value, t)
	if res.Applicable {
		high = min(high, money.MaxAmount)
		res.Low, res.High = &low, &high
	}
	return res
}

// presentValue projects revenue for dcfYears, takes margin as free cash flow
// and discounts it together with the terminal value. Every growth-rate input
// enters with a non-negative weight, so value never falls as growth rises.
func presentValue(revenue, growth, margin, rate float64) float64 {
	var pv, fcf float64
	for year := 1; year <= dcfYears; year++ {
		frac := float64(year-1) / float64(dcfYears-1)
		g := growth + (terminalGrowth-growth)*frac
		revenue *= 1 + g
		fcf = revenue * margin
		pv += fcf / math.Pow(1+rate, float64(year))
	}
	terminal := fcf * (1 + terminalGrowth) / (rate - terminalGrowth)
	pv += terminal / math.Pow(1+rate, dcfYears)
	return pv
}
