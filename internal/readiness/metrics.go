package readiness

import (
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// Metrics are the pre-normalized sub-metrics of each category, all in [0,1]
type Metrics struct {
	Financial []models.SubMetric
	Market    []models.SubMetric
	Team      []models.SubMetric
	Product   []models.SubMetric
}

const (
	referenceRevenue    = 100_000_000     // 1M annual revenue
	referenceMarketSize = 100_000_000_000 // 1B addressable market
)

var productStageReadiness = map[models.ProductStage]float64{
	models.ProductConcept:   0.25,
	models.ProductPrototype: 0.5,
	models.ProductBeta:      0.75,
	models.ProductLaunched:  1,
}

var ipReadiness = map[models.IPStatus]float64{
	models.IPGranted:     1,
	models.IPPending:     0.7,
	models.IPTradeSecret: 0.6,
	models.IPNone:        0.2,
}

var regulatoryReadiness = map[models.RegulatoryStatus]float64{
	models.RegulatoryCompliant:    1,
	models.RegulatoryNotRequired:  1,
	models.RegulatoryPending:      0.5,
	models.RegulatoryNonCompliant: 0,
}

// DeriveMetrics normalizes a profile into sub-metrics. Absent inputs score 0
// so an incomplete profile is never rated as ready; bench may be nil.
func DeriveMetrics(p *models.BusinessProfile, bench *models.Benchmark) Metrics {
	var m Metrics

	m.Financial = []models.SubMetric{
		{Name: "revenue_scale", Score: ratio(p.Revenue, referenceRevenue)},
		{Name: "growth", Score: fraction(p.GrowthRate, 1)},
		{Name: "margin", Score: fraction(p.Margins, 1)},
		{Name: "unit_economics", Score: unitEconomics(p)},
		{Name: "burn_efficiency", Score: burnEfficiency(p)},
	}

	growthVsBench := 0.0
	if bench != nil && bench.GrowthRate > 0 && p.GrowthRate != nil {
		growthVsBench = clamp01(*p.GrowthRate / (2 * bench.GrowthRate))
	}
	competition := 0.5
	if bench != nil {
		competition = clamp01(1 - bench.CompetitorDensity)
	}
	m.Market = []models.SubMetric{
		{Name: "market_size", Score: ratio(p.MarketSize, referenceMarketSize)},
		{Name: "competition", Score: competition},
		{Name: "traction", Score: count(p.CustomerCount, 100)},
		{Name: "growth_vs_benchmark", Score: growthVsBench},
	}

	experience := 0.0
	if p.TeamExperience != nil {
		experience = clamp01(*p.TeamExperience / 10)
	}
	m.Team = []models.SubMetric{
		{Name: "experience", Score: experience},
		{Name: "size", Score: count(p.TeamSize, 10)},
		{Name: "partnerships", Score: count(p.Partnerships, 5)},
	}

	regulatory, ok := regulatoryReadiness[p.RegulatoryStatus]
	if !ok {
		regulatory = 0.5
	}
	m.Product = []models.SubMetric{
		{Name: "product_stage", Score: productStageReadiness[p.ProductStage]},
		{Name: "ip_protection", Score: ipReadiness[p.IPStatus]},
		{Name: "scalability", Score: count(p.ScalabilityRating, 10)},
		{Name: "regulatory", Score: regulatory},
	}
	return m
}

func unitEconomics(p *models.BusinessProfile) float64 {
	if p.CAC == nil || p.LTV == nil || *p.CAC <= 0 {
		return 0
	}
	// LTV of three times CAC or better scores full marks
	return clamp01(money.Ratio(*p.LTV, *p.CAC) / 3)
}

func burnEfficiency(p *models.BusinessProfile) float64 {
	if p.BurnRate == nil {
		return 0.5
	}
	if *p.BurnRate <= 0 || *p.BurnRate <= p.RevenueOrZero() {
		return 1
	}
	return clamp01(money.Ratio(p.RevenueOrZero(), *p.BurnRate))
}

func ratio(v *int64, reference int64) float64 {
	if v == nil {
		return 0
	}
	return clamp01(money.Ratio(*v, reference))
}

func fraction(v *float64, reference float64) float64 {
	if v == nil {
		return 0
	}
	return clamp01(*v / reference)
}

func count(v *int, reference float64) float64 {
	if v == nil {
		return 0
	}
	return clamp01(float64(*v) / reference)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
