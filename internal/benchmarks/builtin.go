package benchmarks

import (
	"context"
	"math"

	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/taxonomy"
)

// industryBaseline is the north-american reference for an industry segment
type industryBaseline struct {
	growth, margin, multiple, density float64
	avgPreMoney                       int64 // USD minor units
}

var industryBaselines = map[string]industryBaseline{
	"saas":           {growth: 0.40, margin: 0.15, multiple: 6.0, density: 0.70, avgPreMoney: 600_000_000},
	"fintech":        {growth: 0.35, margin: 0.12, multiple: 5.0, density: 0.65, avgPreMoney: 700_000_000},
	"marketplace":    {growth: 0.45, margin: 0.08, multiple: 3.0, density: 0.60, avgPreMoney: 500_000_000},
	"ai_ml":          {growth: 0.55, margin: 0.10, multiple: 8.0, density: 0.55, avgPreMoney: 900_000_000},
	"digital_health": {growth: 0.30, margin: 0.10, multiple: 4.5, density: 0.50, avgPreMoney: 550_000_000},
	"medtech":        {growth: 0.20, margin: 0.18, multiple: 4.0, density: 0.40, avgPreMoney: 600_000_000},
	"biotech":        {growth: 0.15, margin: 0.05, multiple: 6.5, density: 0.35, avgPreMoney: 800_000_000},
	"ecommerce":      {growth: 0.25, margin: 0.06, multiple: 1.5, density: 0.80, avgPreMoney: 350_000_000},
	"d2c":            {growth: 0.28, margin: 0.08, multiple: 2.0, density: 0.75, avgPreMoney: 300_000_000},
	"cleantech":      {growth: 0.22, margin: 0.10, multiple: 3.5, density: 0.45, avgPreMoney: 500_000_000},
	"manufacturing":  {growth: 0.12, margin: 0.14, multiple: 1.8, density: 0.50, avgPreMoney: 400_000_000},
}

// regionAdjustment scales a north-american baseline to another market
type regionAdjustment struct {
	growth, multiple, valuation, densityShift float64
}

var regionAdjustments = map[string]regionAdjustment{
	"north_america": {growth: 1.00, multiple: 1.00, valuation: 1.00, densityShift: 0},
	"europe":        {growth: 0.95, multiple: 0.85, valuation: 0.80, densityShift: -0.05},
	"asia_pacific":  {growth: 1.10, multiple: 0.90, valuation: 0.75, densityShift: 0.05},
	"india":         {growth: 1.15, multiple: 0.75, valuation: 0.45, densityShift: 0.10},
	"latin_america": {growth: 1.05, multiple: 0.70, valuation: 0.50, densityShift: -0.05},
	"africa":        {growth: 1.10, multiple: 0.60, valuation: 0.35, densityShift: -0.10},
}

// BuiltinSource generates the packaged benchmark table: one row per
// (sector, industry, region) plus a sector-wide average row per region
type BuiltinSource struct {
	Taxonomy *taxonomy.Table
}

func (BuiltinSource) Name() string {
	return "builtin"
}

func (b BuiltinSource) Load(ctx context.Context) ([]models.Benchmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tax := b.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	}

	var rows []models.Benchmark
	for _, sector := range tax.Sectors() {
		for region, adj := range regionAdjustments {
			var sum industryBaseline
			n := 0
			for _, segment := range tax.Segments(sector) {
				base, ok := industryBaselines[segment]
				if !ok {
					continue
				}
				rows = append(rows, scaled(sector, segment, region, base, adj))
				sum.growth += base.growth
				sum.margin += base.margin
				sum.multiple += base.multiple
				sum.density += base.density
				sum.avgPreMoney += base.avgPreMoney
				n++
			}
			if n == 0 {
				continue
			}
			f := float64(n)
			avg := industryBaseline{
				growth:      sum.growth / f,
				margin:      sum.margin / f,
				multiple:    sum.multiple / f,
				density:     sum.density / f,
				avgPreMoney: sum.avgPreMoney / int64(n),
			}
			rows = append(rows, scaled(sector, SectorWide, region, avg, adj))
		}
	}
	return rows, nil
}

func scaled(sector, industry, region string, base industryBaseline, adj regionAdjustment) models.Benchmark {
	return models.Benchmark{
		Sector:               sector,
		Industry:             industry,
		Region:               region,
		GrowthRate:           round4(base.growth * adj.growth),
		Margin:               base.margin,
		RevenueMultiple:      round4(base.multiple * adj.multiple),
		CompetitorDensity:    round4(math.Min(1, math.Max(0, base.density+adj.densityShift))),
		AvgPreMoneyValuation: int64(math.Round(float64(base.avgPreMoney) * adj.valuation)),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
