package valuation

import (
	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// BerkusCap is the maximum contribution of each component (500,000.00)
const BerkusCap = 50_000_000

type berkusComponent struct {
	name  string
	score func(p *models.BusinessProfile) float64
}

var berkusComponents = []berkusComponent{
	{name: "sound_idea", score: func(p *models.BusinessProfile) float64 {
		if p.MarketSize == nil {
			return 0.4
		}
		return 0.4 + 0.6*clamp01(money.Ratio(*p.MarketSize, referenceMarketSize))
	}},
	{name: "prototype", score: func(p *models.BusinessProfile) float64 {
		switch p.ProductStage {
		case models.ProductConcept:
			return 0.1
		case models.ProductPrototype:
			return 0.5
		case models.ProductBeta:
			return 0.8
		case models.ProductLaunched:
			return 1
		}
		return 0
	}},
	{name: "quality_team", score: func(p *models.BusinessProfile) float64 {
		return teamScore(p, 0.3)
	}},
	{name: "strategic_relationships", score: func(p *models.BusinessProfile) float64 {
		if p.Partnerships == nil {
			return 0
		}
		return clamp01(float64(*p.Partnerships) / 5)
	}},
	{name: "product_rollout", score: func(p *models.BusinessProfile) float64 {
		if p.CustomerCount == nil {
			return 0
		}
		return clamp01(float64(*p.CustomerCount) / 50)
	}},
}

// Berkus values a pre-revenue company as the sum of five capped qualitative
// components
type Berkus struct{}

func (Berkus) ID() models.MethodID { return models.MethodBerkus }

func (Berkus) DependsOn() []string {
	return []string{"revenue", "market_size", "product_stage", "team_size", "team_experience", "partnerships", "customer_count"}
}

func (b Berkus) Compute(p *models.BusinessProfile, _ *benchmarks.Snapshot) models.MethodResult {
	if p.RevenueOrZero() != 0 {
		return unapplicable(b.ID(), p, "only applies to pre-revenue companies")
	}

	var t trail
	var total int64
	for _, c := range berkusComponents {
		v := money.Scale(BerkusCap, clamp01(c.score(p)))
		if v > BerkusCap {
			v = BerkusCap
		}
		total += v
		t.money("component."+c.name, v)
	}
	t.money("component_cap", BerkusCap)
	return applicable(b.ID(), p, total, t)
}
