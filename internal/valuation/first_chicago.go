package valuation

import (
	"math"
	"strconv"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
	"github.com/camayank/startupvaluator/internal/risk"
)

// probabilityTolerance bounds the drift of scenario probabilities from 1
const probabilityTolerance = 1e-6

// FirstChicago weights discounted scenario valuations by their probabilities.
// The lowest and highest scenario values become the method's bounds.
type FirstChicago struct{}

func (FirstChicago) ID() models.MethodID { return models.MethodFirstChicago }

func (FirstChicago) DependsOn() []string {
	return []string{"scenarios", "stage", "sector", "industry", "region"}
}

func (f FirstChicago) Compute(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult {
	if len(p.Scenarios) < 2 {
		return unapplicable(f.ID(), p, "needs at least two scenario projections")
	}
	var probSum float64
	for _, s := range p.Scenarios {
		if s.Probability < 0 || s.Probability > 1 {
			return unapplicablef(f.ID(), p, "scenario %q probability must be in [0,1]", s.Name)
		}
		probSum += s.Probability
	}
	if math.Abs(probSum-1) > probabilityTolerance {
		return unapplicablef(f.ID(), p, "scenario probabilities sum to %s, not 1", money.FormatFloat(probSum))
	}

	match, hasBench := lookupBenchmark(p, snap)
	var bench *models.Benchmark
	if hasBench {
		bench = &match.Benchmark
	}
	rate := risk.Premium(p, bench).Rate
	stage, _ := benchmarks.ForStage(p.Stage)

	var t trail
	t.num("discount_rate", rate)
	if hasBench {
		t.benchmark(match)
	}

	values := make([]int64, len(p.Scenarios))
	weights := make([]float64, len(p.Scenarios))
	for i, s := range p.Scenarios {
		multiple := 0.0
		switch {
		case s.Multiple != nil:
			multiple = *s.Multiple
		case hasBench:
			multiple = match.RevenueMultiple
		default:
			return unapplicable(f.ID(), p, models.ReasonBenchmarkUnavailable)
		}
		years := s.Years
		if years <= 0 {
			years = stage.YearsToExit
		}
		exit := money.Scale(s.ProjectedRevenue, multiple)
		values[i] = money.Scale(exit, 1/math.Pow(1+rate, float64(years)))
		weights[i] = s.Probability

		name := s.Name
		if name == "" {
			name = "scenario_" + strconv.Itoa(i+1)
		}
		t.num(name+".probability", s.Probability)
		t.num(name+".multiple", multiple)
		t.add(name+".years", strconv.Itoa(years))
		t.money(name+".value", values[i])
	}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		low = min(low, v)
		high = max(high, v)
	}

	res := applicable(f.ID(), p, money.WeightedSum(values, weights), t)
	if res.Applicable {
		low = max(low, 0)
		high = min(high, money.MaxAmount)
		res.Low, res.High = &low, &high
	}
	return res
}
