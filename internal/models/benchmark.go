package models

// Benchmark is a read-only numeric baseline for a (sector, industry, region) key.
// Rates are fractions; AvgPreMoneyValuation is minor units and zero when unknown.
type Benchmark struct {
	Sector               string  `json:"sector" yaml:"sector" db:"sector"`
	Industry             string  `json:"industry" yaml:"industry" db:"industry"`
	Region               string  `json:"region" yaml:"region" db:"region"`
	GrowthRate           float64 `json:"growth_rate" yaml:"growth_rate" db:"growth_rate"`
	Margin               float64 `json:"margin" yaml:"margin" db:"margin"`
	RevenueMultiple      float64 `json:"revenue_multiple" yaml:"revenue_multiple" db:"revenue_multiple"`
	CompetitorDensity    float64 `json:"competitor_density" yaml:"competitor_density" db:"competitor_density"`
	AvgPreMoneyValuation int64   `json:"avg_pre_money_valuation" yaml:"avg_pre_money_valuation" db:"avg_pre_money_valuation"`
}

// BenchmarkMatch is a lookup result with the key that actually matched
type BenchmarkMatch struct {
	Benchmark
	MatchedKey string `json:"matched_key"`
	Fallback   bool   `json:"fallback"`
}
