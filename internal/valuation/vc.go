package valuation

import (
	"math"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// maxExitGrowth caps the compounding rate used to project exit revenue
const maxExitGrowth = 1.5

// VCMethod divides an estimated exit value by the stage's target return
// multiple and subtracts the planned investment to reach a pre-money figure
type VCMethod struct{}

func (VCMethod) ID() models.MethodID { return models.MethodVC }

func (VCMethod) DependsOn() []string {
	return []string{"stage", "revenue", "growth_rate", "market_size", "planned_investment", "sector", "industry", "region"}
}

func (v VCMethod) Compute(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult {
	stage, ok := benchmarks.ForStage(p.Stage)
	if !ok {
		return unapplicable(v.ID(), p, "stage is required")
	}

	var t trail
	var exitRevenue int64
	switch {
	case p.RevenueOrZero() > 0 && p.GrowthRate != nil:
		g := math.Min(*p.GrowthRate, maxExitGrowth)
		factor := math.Pow(1+g, float64(stage.YearsToExit))
		exitRevenue = money.Scale(p.RevenueOrZero(), factor)
		t.add("exit_revenue_basis", "revenue_growth")
		t.money("revenue", p.RevenueOrZero())
		t.num("growth_rate", g)
	case p.MarketSize != nil && *p.MarketSize > 0 && stage.MarketCapture > 0:
		exitRevenue = money.Scale(*p.MarketSize, stage.MarketCapture)
		t.add("exit_revenue_basis", "market_capture")
		t.money("market_size", *p.MarketSize)
		t.num("market_capture", stage.MarketCapture)
	case stage.MarketCapture <= 0:
		return unapplicablef(v.ID(), p, "needs revenue with growth_rate to estimate exit revenue at the %s stage", p.Stage)
	default:
		return unapplicable(v.ID(), p, "needs revenue with growth_rate, or market_size, to estimate exit revenue")
	}
	if exitRevenue <= 0 {
		return unapplicable(v.ID(), p, "projected exit revenue is not positive")
	}

	m, ok := lookupBenchmark(p, snap)
	if !ok {
		return unapplicable(v.ID(), p, models.ReasonBenchmarkUnavailable)
	}
	if m.RevenueMultiple <= 0 {
		return unapplicable(v.ID(), p, "benchmark has no revenue multiple")
	}

	exitValue := money.Scale(exitRevenue, m.RevenueMultiple)
	postMoney := money.Scale(exitValue, 1/stage.TargetROI)

	investment := stage.TypicalRaise
	investmentBasis := "stage_typical_raise"
	if p.PlannedInvestment != nil && *p.PlannedInvestment > 0 {
		investment = *p.PlannedInvestment
		investmentBasis = "planned_investment"
	}
	preMoney := money.Sub(postMoney, investment)

	t.add("years_to_exit", money.FormatInt(int64(stage.YearsToExit)))
	t.money("exit_revenue", exitRevenue)
	t.num("exit_multiple", m.RevenueMultiple)
	t.benchmark(m)
	t.money("exit_value", exitValue)
	t.num("target_roi", stage.TargetROI)
	t.money("post_money", postMoney)
	t.money("investment", investment)
	t.add("investment_basis", investmentBasis)

	if preMoney <= 0 {
		return unapplicablef(v.ID(), p, "investment %s exceeds post-money valuation %s",
			money.FormatInt(investment), money.FormatInt(postMoney))
	}
	return applicable(v.ID(), p, preMoney, t)
}
