package valuation

import (
	"math"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// scorecardFactor compares the profile with an average company of the
// benchmark. A score of 0.5 is "on par" and maps to a ratio of 1.0.
type scorecardFactor struct {
	name   string
	weight float64
	score  func(p *models.BusinessProfile, bench models.Benchmark, stage benchmarks.StageProfile) float64
}

// referenceMarketSize is a 1B addressable market in minor units
const referenceMarketSize = 100_000_000_000

var scorecardFactors = []scorecardFactor{
	{name: "team", weight: 0.30, score: func(p *models.BusinessProfile, _ models.Benchmark, _ benchmarks.StageProfile) float64 {
		return teamScore(p, 0.5)
	}},
	{name: "opportunity", weight: 0.25, score: func(p *models.BusinessProfile, _ models.Benchmark, _ benchmarks.StageProfile) float64 {
		if p.MarketSize == nil {
			return 0.5
		}
		return clamp01(money.Ratio(*p.MarketSize, 2*referenceMarketSize))
	}},
	{name: "product", weight: 0.15, score: func(p *models.BusinessProfile, _ models.Benchmark, _ benchmarks.StageProfile) float64 {
		if s, ok := productStageScore[p.ProductStage]; ok {
			return s
		}
		return 0.5
	}},
	{name: "competition", weight: 0.10, score: func(_ *models.BusinessProfile, b models.Benchmark, _ benchmarks.StageProfile) float64 {
		return clamp01(1 - b.CompetitorDensity)
	}},
	{name: "marketing", weight: 0.10, score: func(p *models.BusinessProfile, _ models.Benchmark, _ benchmarks.StageProfile) float64 {
		var sum float64
		n := 0
		if p.Partnerships != nil {
			sum += clamp01(float64(*p.Partnerships) / 5)
			n++
		}
		if p.CustomerCount != nil {
			sum += clamp01(float64(*p.CustomerCount) / 100)
			n++
		}
		if n == 0 {
			return 0.5
		}
		return sum / float64(n)
	}},
	{name: "need_for_funding", weight: 0.10, score: func(p *models.BusinessProfile, _ models.Benchmark, stage benchmarks.StageProfile) float64 {
		if p.PlannedInvestment == nil {
			return 0.5
		}
		return clamp01(1 - money.Ratio(*p.PlannedInvestment, 2*stage.TypicalRaise))
	}},
}

// ScorecardWeightSum returns the total of the factor weights
func ScorecardWeightSum() float64 {
	var sum float64
	for _, f := range scorecardFactors {
		sum += f.weight
	}
	return sum
}

// Scorecard adjusts the regional average pre-money valuation by weighted
// profile-versus-benchmark factors
type Scorecard struct{}

func (Scorecard) ID() models.MethodID { return models.MethodScorecard }

func (Scorecard) DependsOn() []string {
	return []string{"sector", "industry", "region", "stage", "team_size", "team_experience",
		"market_size", "product_stage", "partnerships", "customer_count", "planned_investment"}
}

func (s Scorecard) Compute(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult {
	m, ok := lookupBenchmark(p, snap)
	if !ok {
		return unapplicable(s.ID(), p, models.ReasonBenchmarkUnavailable)
	}
	if m.AvgPreMoneyValuation <= 0 {
		return unapplicable(s.ID(), p, "benchmark has no average pre-money valuation")
	}
	stage, ok := benchmarks.ForStage(p.Stage)
	if !ok {
		return unapplicable(s.ID(), p, "stage is required")
	}

	var t trail
	t.benchmark(m)
	t.money("benchmark_avg_pre_money", m.AvgPreMoneyValuation)
	t.num("stage_scale", stage.ScorecardScale)

	var multiplier float64
	for _, f := range scorecardFactors {
		ratio := 0.5 + f.score(p, m.Benchmark, stage)
		multiplier += f.weight * ratio
		t.num("factor."+f.name, math.Round(ratio*10000)/10000)
	}
	t.num("multiplier", math.Round(multiplier*10000)/10000)

	base := money.Scale(m.AvgPreMoneyValuation, stage.ScorecardScale)
	return applicable(s.ID(), p, money.Scale(base, multiplier), t)
}
