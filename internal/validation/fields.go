package validation

import (
	"github.com/camayank/startupvaluator/internal/models"
)

// numericFields maps the JSON field name to an accessor; ok is false when the
// field has not been provided
var numericFields = map[string]func(p *models.BusinessProfile) (float64, bool){
	"revenue":            func(p *models.BusinessProfile) (float64, bool) { return i64(p.Revenue) },
	"growth_rate":        func(p *models.BusinessProfile) (float64, bool) { return f64(p.GrowthRate) },
	"margins":            func(p *models.BusinessProfile) (float64, bool) { return f64(p.Margins) },
	"burn_rate":          func(p *models.BusinessProfile) (float64, bool) { return i64(p.BurnRate) },
	"team_size":          func(p *models.BusinessProfile) (float64, bool) { return intv(p.TeamSize) },
	"team_experience":    func(p *models.BusinessProfile) (float64, bool) { return f64(p.TeamExperience) },
	"customer_count":     func(p *models.BusinessProfile) (float64, bool) { return intv(p.CustomerCount) },
	"funding_raised":     func(p *models.BusinessProfile) (float64, bool) { return i64(p.FundingRaised) },
	"planned_investment": func(p *models.BusinessProfile) (float64, bool) { return i64(p.PlannedInvestment) },
	"market_size":        func(p *models.BusinessProfile) (float64, bool) { return i64(p.MarketSize) },
	"churn_rate":         func(p *models.BusinessProfile) (float64, bool) { return f64(p.ChurnRate) },
	"cac":                func(p *models.BusinessProfile) (float64, bool) { return i64(p.CAC) },
	"ltv":                func(p *models.BusinessProfile) (float64, bool) { return i64(p.LTV) },
	"scalability_rating": func(p *models.BusinessProfile) (float64, bool) { return intv(p.ScalabilityRating) },
	"partnerships":       func(p *models.BusinessProfile) (float64, bool) { return intv(p.Partnerships) },
	"asset_value":        func(p *models.BusinessProfile) (float64, bool) { return i64(p.AssetValue) },
	"liabilities":        func(p *models.BusinessProfile) (float64, bool) { return i64(p.Liabilities) },
	"intangible_value":   func(p *models.BusinessProfile) (float64, bool) { return i64(p.IntangibleValue) },
}

var stringFields = map[string]func(p *models.BusinessProfile) string{
	"sector":            func(p *models.BusinessProfile) string { return p.Sector },
	"industry":          func(p *models.BusinessProfile) string { return p.Industry },
	"sub_segment":       func(p *models.BusinessProfile) string { return p.SubSegment },
	"region":            func(p *models.BusinessProfile) string { return p.Region },
	"stage":             func(p *models.BusinessProfile) string { return string(p.Stage) },
	"currency":          func(p *models.BusinessProfile) string { return p.Currency },
	"ip_status":         func(p *models.BusinessProfile) string { return string(p.IPStatus) },
	"regulatory_status": func(p *models.BusinessProfile) string { return string(p.RegulatoryStatus) },
	"product_stage":     func(p *models.BusinessProfile) string { return string(p.ProductStage) },
}

func i64(v *int64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}

func f64(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func intv(v *int) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}
