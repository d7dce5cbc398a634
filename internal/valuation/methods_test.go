package valuation

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

func builtin(t *testing.T) *benchmarks.Snapshot {
	t.Helper()
	snap, err := benchmarks.NewStore(nil).Load(context.Background(), benchmarks.BuiltinSource{})
	if err != nil {
		t.Fatalf("load builtin benchmarks: %v", err)
	}
	return snap
}

func resultsByID(results []models.MethodResult) map[models.MethodID]models.MethodResult {
	out := make(map[models.MethodID]models.MethodResult, len(results))
	for _, r := range results {
		out[r.MethodID] = r
	}
	return out
}

func growthProfile() models.BusinessProfile {
	return models.BusinessProfile{
		Sector:     "technology",
		Industry:   "saas",
		Region:     "north_america",
		Stage:      models.StageGrowth,
		Revenue:    models.Int64(10_000_000),
		GrowthRate: models.Float(0.35),
		Margins:    models.Float(0.25),
		AssetValue: models.Int64(5_000_000),
		TeamSize:   models.Int(25),
	}
}

func ideationProfile() models.BusinessProfile {
	return models.BusinessProfile{
		Sector:   "technology",
		Industry: "saas",
		Region:   "north_america",
		Stage:    models.StageIdeation,
		TeamSize: models.Int(3),
	}
}

func TestPreRevenueIdeationScenario(t *testing.T) {
	snap := builtin(t)
	enriched := ideationProfile().With(func(p *models.BusinessProfile) {
		p.MarketSize = models.Int64(100_000_000_000)
		p.ProductStage = models.ProductPrototype
		p.Partnerships = models.Int(2)
		p.TeamExperience = models.Float(6)
	})
	profiles := map[string]models.BusinessProfile{
		"minimal":  ideationProfile(),
		"enriched": enriched,
	}
	for name, p := range profiles {
		got := resultsByID(NewRunner(DefaultRegistry(), 0).Run(context.Background(), &p, snap, nil))

		for _, id := range []models.MethodID{models.MethodBerkus, models.MethodScorecard} {
			if !got[id].Applicable {
				t.Errorf("%s: %s should be applicable: %s", name, id, got[id].FailureReason)
			}
		}
		for _, id := range []models.MethodID{models.MethodDCF, models.MethodComparables, models.MethodAssetBased, models.MethodVC, models.MethodFirstChicago} {
			if got[id].Applicable {
				t.Errorf("%s: %s should not be applicable (value %d)", name, id, got[id].Value)
			}
			if got[id].FailureReason == "" {
				t.Errorf("%s: %s is unapplicable without a reason", name, id)
			}
		}
	}

	p := ideationProfile()
	// Without a regional benchmark only berkus remains
	p.Region = "antarctica"
	got := resultsByID(NewRunner(DefaultRegistry(), 0).Run(context.Background(), &p, snap, nil))
	for id, r := range got {
		if r.Applicable != (id == models.MethodBerkus) {
			t.Errorf("%s applicable = %v in unknown region", id, r.Applicable)
		}
	}
	if got[models.MethodScorecard].FailureReason != models.ReasonBenchmarkUnavailable {
		t.Errorf("scorecard reason = %q", got[models.MethodScorecard].FailureReason)
	}
}

func TestGrowthScenarioMethods(t *testing.T) {
	p := growthProfile()
	got := resultsByID(NewRunner(DefaultRegistry(), 0).Run(context.Background(), &p, builtin(t), nil))
	for _, id := range []models.MethodID{models.MethodDCF, models.MethodComparables, models.MethodAssetBased} {
		if !got[id].Applicable {
			t.Errorf("%s should be applicable: %s", id, got[id].FailureReason)
		}
	}
	if got[models.MethodBerkus].Applicable {
		t.Errorf("berkus must not apply to a revenue-generating company")
	}
	if v := got[models.MethodComparables].Value; v != 60_000_000 {
		t.Errorf("comparables = %d, want 60000000 (revenue x 6.0)", v)
	}
	if v := got[models.MethodAssetBased].Value; v != 5_000_000 {
		t.Errorf("asset_based = %d, want 5000000", v)
	}
}

func TestDCFMonotonicInGrowth(t *testing.T) {
	snap := builtin(t)
	prev := int64(math.MinInt64)
	for g := -0.5; g <= 3.5; g += 0.05 {
		p := growthProfile().With(func(p *models.BusinessProfile) { p.GrowthRate = models.Float(g) })
		r := DCF{}.Compute(&p, snap)
		if !r.Applicable {
			continue
		}
		if r.Value < prev {
			t.Fatalf("dcf decreased at growth %.2f: %d < %d", g, r.Value, prev)
		}
		prev = r.Value
	}
}

func TestDCFBoundsAndAssumptions(t *testing.T) {
	p := growthProfile()
	r := DCF{}.Compute(&p, builtin(t))
	if !r.Applicable {
		t.Fatalf("dcf unapplicable: %s", r.FailureReason)
	}
	if r.Low == nil || r.High == nil || *r.Low > r.Value || r.Value > *r.High {
		t.Errorf("bounds low=%v value=%d high=%v", r.Low, r.Value, r.High)
	}
	keys := make(map[string]bool)
	for _, a := range r.Assumptions {
		keys[a.Key] = true
	}
	for _, k := range []string{"discount_rate", "terminal_growth", "region_multiplier", "risk.stage_bp"} {
		if !keys[k] {
			t.Errorf("missing assumption %s", k)
		}
	}
}

func TestDCFRegionMultiplier(t *testing.T) {
	snap := builtin(t)
	na := growthProfile()
	eu := growthProfile().With(func(p *models.BusinessProfile) { p.Region = "europe" })
	a := DCF{}.Compute(&na, snap)
	b := DCF{}.Compute(&eu, snap)
	if b.Value >= a.Value {
		t.Errorf("europe dcf %d should be below north america %d", b.Value, a.Value)
	}
}

func TestScorecardWeightsSumToOne(t *testing.T) {
	if s := ScorecardWeightSum(); math.Abs(s-1) > 1e-9 {
		t.Errorf("scorecard weights sum to %v", s)
	}
}

func TestBerkusComponentsAreCapped(t *testing.T) {
	p := ideationProfile().With(func(p *models.BusinessProfile) {
		p.MarketSize = models.Int64(10 * referenceMarketSize)
		p.ProductStage = models.ProductLaunched
		p.TeamExperience = models.Float(30)
		p.TeamSize = models.Int(50)
		p.Partnerships = models.Int(20)
		p.CustomerCount = models.Int(500)
	})
	r := Berkus{}.Compute(&p, nil)
	if !r.Applicable || r.Value != 5*BerkusCap {
		t.Errorf("berkus = %d applicable=%v, want %d", r.Value, r.Applicable, 5*BerkusCap)
	}
}

func TestVCMethod(t *testing.T) {
	snap := builtin(t)
	p := models.BusinessProfile{
		Sector: "technology", Industry: "saas", Region: "north_america",
		Stage:             models.StageSeed,
		MarketSize:        models.Int64(1_000_000_000_000),
		PlannedInvestment: models.Int64(100_000_000),
	}
	r := VCMethod{}.Compute(&p, snap)
	// exit revenue 1e12 x 0.02 = 2e10, x 6.0 = 1.2e11, / 10 = 1.2e10, - 1e8
	if !r.Applicable || r.Value != 11_900_000_000 {
		t.Errorf("vc_method = %d applicable=%v (%s)", r.Value, r.Applicable, r.FailureReason)
	}

	p.PlannedInvestment = models.Int64(50_000_000_000)
	r = VCMethod{}.Compute(&p, snap)
	if r.Applicable || !strings.Contains(r.FailureReason, "exceeds post-money") {
		t.Errorf("expected investment overrun, got %+v", r)
	}

	p.Stage = models.StageIdeation
	p.PlannedInvestment = nil
	r = VCMethod{}.Compute(&p, snap)
	if r.Applicable || !strings.Contains(r.FailureReason, "ideation") {
		t.Errorf("market size alone should not value an ideation company, got %+v", r)
	}
}

func TestMethodsRejectValuesBeyondMaxAmount(t *testing.T) {
	snap := builtin(t)
	p := growthProfile().With(func(p *models.BusinessProfile) {
		p.Revenue = models.Int64(4_000_000_000_000_000_000)
		p.AssetValue = models.Int64(math.MaxInt64)
		p.IntangibleValue = models.Int64(math.MaxInt64)
	})
	got := resultsByID(NewRunner(DefaultRegistry(), 0).Run(context.Background(), &p, snap, nil))
	for _, id := range []models.MethodID{models.MethodDCF, models.MethodComparables, models.MethodAssetBased} {
		r := got[id]
		if r.Applicable {
			t.Errorf("%s should not be applicable, got value %d", id, r.Value)
			continue
		}
		if !strings.Contains(r.FailureReason, "supported maximum") {
			t.Errorf("%s reason = %q", id, r.FailureReason)
		}
	}

	// Right at the bound the value is still reported
	p = growthProfile().With(func(p *models.BusinessProfile) {
		p.AssetValue = models.Int64(money.MaxAmount)
	})
	r := AssetBased{}.Compute(&p, snap)
	if !r.Applicable || r.Value != money.MaxAmount {
		t.Errorf("asset_based at bound = %d applicable=%v (%s)", r.Value, r.Applicable, r.FailureReason)
	}
}

func TestFirstChicago(t *testing.T) {
	snap := builtin(t)
	mult := 2.0
	p := growthProfile().With(func(p *models.BusinessProfile) {
		p.Scenarios = []models.ScenarioProjection{
			{Name: "success", Probability: 0.3, ProjectedRevenue: 100_000_000, Multiple: &mult, Years: 3},
			{Name: "survival", Probability: 0.5, ProjectedRevenue: 40_000_000, Multiple: &mult, Years: 3},
			{Name: "failure", Probability: 0.2, ProjectedRevenue: 1_000_000, Multiple: &mult, Years: 3},
		}
	})
	r := FirstChicago{}.Compute(&p, snap)
	if !r.Applicable {
		t.Fatalf("first_chicago unapplicable: %s", r.FailureReason)
	}
	if *r.Low > r.Value || r.Value > *r.High {
		t.Errorf("bounds low=%d value=%d high=%d", *r.Low, r.Value, *r.High)
	}

	bad := p.With(func(p *models.BusinessProfile) { p.Scenarios[0].Probability = 0.5 })
	if r := (FirstChicago{}).Compute(&bad, snap); r.Applicable {
		t.Errorf("probabilities summing to 1.2 must be rejected")
	}
}

func TestAssetBasedNegativeIsUnapplicable(t *testing.T) {
	p := growthProfile().With(func(p *models.BusinessProfile) { p.Liabilities = models.Int64(9_000_000) })
	r := AssetBased{}.Compute(&p, nil)
	if r.Applicable || r.FailureReason == "" {
		t.Errorf("negative net assets must be unapplicable, got %+v", r)
	}
}

func TestConvertSAFEs(t *testing.T) {
	valCap := int64(400_000_000)
	disc := 0.2
	p := models.BusinessProfile{SAFEs: []models.SAFEInstrument{
		{Investment: 40_000_000, ValuationCap: &valCap},
		{Investment: 80_000_000, Discount: &disc},
	}}
	res, conv := ConvertSAFEs(&p, 1_000_000_000)
	if !res.Applicable || conv == nil {
		t.Fatalf("conversion unapplicable: %s", res.FailureReason)
	}
	if conv.Lines[0].Basis != "cap" || conv.Lines[0].ConversionValuation != valCap {
		t.Errorf("line 1 = %+v, want cap basis", conv.Lines[0])
	}
	if conv.Lines[1].Basis != "discount" || conv.Lines[1].ConversionValuation != 800_000_000 {
		t.Errorf("line 2 = %+v, want discount basis at 800000000", conv.Lines[1])
	}
	// issued ratios 0.1 and 0.1 -> each 0.1/1.2
	if math.Abs(conv.Lines[0].Ownership-0.083333) > 1e-6 {
		t.Errorf("ownership = %v", conv.Lines[0].Ownership)
	}
	if math.Abs(conv.TotalOwnership+conv.ExistingRetained-1) > 1e-5 {
		t.Errorf("ownership %v + retained %v != 1", conv.TotalOwnership, conv.ExistingRetained)
	}

	none, c := ConvertSAFEs(&models.BusinessProfile{}, 1_000_000_000)
	if none.Applicable || c != nil || none.FailureReason == "" {
		t.Errorf("no SAFEs must be unapplicable with reason, got %+v", none)
	}
}
