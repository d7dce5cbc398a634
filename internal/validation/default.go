package validation

import (
	"fmt"
	"math"

	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
	"github.com/camayank/startupvaluator/internal/taxonomy"
)

// DefaultVersion identifies the built-in rule table
const DefaultVersion = "2025.1"

// minSeedRevenue is the smallest annual revenue expected at seed (10,000.00)
const minSeedRevenue = 1_000_000

// maxAmount bounds every monetary input
var maxAmount = bound(float64(money.MaxAmount))

func amountTooLarge(field string) string {
	return fmt.Sprintf("%s exceeds the supported maximum of %s", field, money.Format(money.MaxAmount))
}

var laterStages = []string{string(models.StageSeed), string(models.StageSeriesA), string(models.StageGrowth)}

func stageOverrides(stages []string, o Override) []Override {
	out := make([]Override, 0, len(stages))
	for _, s := range stages {
		o.Match = s
		out = append(out, o)
	}
	return out
}

// DefaultTable builds the built-in rule table; sector enums come from tax
func DefaultTable(tax *taxonomy.Table) *ValidationRuleTable {
	stages := make([]string, 0, 5)
	for _, s := range models.Stages() {
		stages = append(stages, string(s))
	}

	return &ValidationRuleTable{
		Version: DefaultVersion,
		Fields: []FieldRule{
			{Field: "sector", Kind: KindEnum, Required: true, Allowed: tax.Sectors(), Message: "sector must be one of the supported sectors"},
			{Field: "industry", Kind: KindPresence, Required: true, DependsOn: []string{"sector"}},
			{Field: "region", Kind: KindPresence, Required: true},
			{Field: "stage", Kind: KindEnum, Required: true, Allowed: stages, Message: "stage must be a known funding stage"},
			{
				Field: "revenue", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("revenue"), Message: "revenue cannot be negative",
				DependsOn: []string{"stage"},
				Stage: append(
					stageOverrides([]string{string(models.StageSeriesA), string(models.StageGrowth)}, Override{Required: true}),
					Override{
						Match: string(models.StageSeed), Recommended: true, Min: bound(minSeedRevenue), Suggested: bound(minSeedRevenue),
						Message:     "seed-stage companies typically show at least 10,000.00 in annual revenue",
						Suggestions: []string{"Confirm revenue is annual, not monthly", "Consider pre_seed if revenue is not yet recurring"},
					},
				),
			},
			{
				Field: "growth_rate", Kind: KindRange, Min: bound(-1), Max: bound(10),
				Message:   "growth rate must be a fraction between -1 and 10 (e.g. 0.35 for 35%)",
				DependsOn: []string{"stage", "sector"},
				Stage:     stageOverrides(laterStages, Override{Recommended: true}),
				Sector: []Override{{
					Match: "technology", Min: bound(0.2), Suggested: bound(0.4),
					Message:     "growth is below the typical technology benchmark of 20%",
					Suggestions: []string{"Double-check the growth period is year over year"},
				}},
			},
			{
				Field: "margins", Kind: KindRange, Min: bound(-5), Max: bound(1),
				Message:   "margins must be a fraction no greater than 1 (e.g. 0.25 for 25%)",
				DependsOn: []string{"stage"},
				Stage: append(
					stageOverrides([]string{string(models.StageSeriesA)}, Override{Recommended: true}),
					Override{Match: string(models.StageGrowth), Required: true},
				),
			},
			{Field: "burn_rate", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("burn_rate"), Message: "burn rate cannot be negative"},
			{
				Field: "team_size", Kind: KindRange, Required: true, Min: bound(1), Max: bound(100000),
				Message: "team size must be at least 1",
				Stage: []Override{{
					Match: string(models.StageGrowth), Min: bound(10), Suggested: bound(10),
					Message:     "growth-stage companies usually have a team of 10 or more",
					Suggestions: []string{"Include contractors and part-time staff"},
				}},
			},
			{Field: "team_experience", Kind: KindRange, Min: bound(0), Max: bound(60), Recommended: true, Message: "team experience is average years and must be between 0 and 60"},
			{
				Field: "customer_count", Kind: KindRange, Min: bound(0), Message: "customer count cannot be negative",
				Stage: append(
					stageOverrides([]string{string(models.StageSeriesA), string(models.StageGrowth)}, Override{Recommended: true}),
					Override{
						Match: string(models.StageSeed), Min: bound(1), Suggested: bound(10),
						Message:     "seed-stage companies are expected to have paying customers",
						Suggestions: []string{"List pilot or design-partner customers"},
					},
				),
			},
			{Field: "funding_raised", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("funding_raised"), Message: "funding raised cannot be negative"},
			{Field: "planned_investment", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("planned_investment"), Message: "planned investment cannot be negative"},
			{Field: "market_size", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("market_size"), Recommended: true, Message: "market size cannot be negative"},
			{Field: "churn_rate", Kind: KindRange, Min: bound(0.01), Max: bound(1), Message: "churn rate must be a fraction between 0.01 and 1"},
			{Field: "cac", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("cac"), Message: "customer acquisition cost cannot be negative"},
			{Field: "ltv", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("ltv"), Message: "lifetime value cannot be negative"},
			{Field: "scalability_rating", Kind: KindRange, Min: bound(1), Max: bound(10), Message: "scalability rating must be between 1 and 10"},
			{Field: "partnerships", Kind: KindRange, Min: bound(0), Message: "partnerships cannot be negative"},
			{
				Field: "asset_value", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("asset_value"), Message: "asset value cannot be negative",
				Sector: []Override{{Match: "industrial", Required: true}},
			},
			{Field: "liabilities", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("liabilities"), Message: "liabilities cannot be negative", DependsOn: []string{"asset_value"}},
			{Field: "intangible_value", Kind: KindRange, Min: bound(0), Max: maxAmount, MaxMessage: amountTooLarge("intangible_value"), Message: "intangible value cannot be negative", DependsOn: []string{"ip_status"}},
			{
				Field: "ip_status", Kind: KindEnum, Allowed: []string{"none", "pending", "granted", "trade_secret"},
				Sector: []Override{{Match: "healthcare", Recommended: true}},
			},
			{
				Field: "regulatory_status", Kind: KindEnum, Allowed: []string{"not_required", "pending", "compliant", "non_compliant"},
				Sector: []Override{{Match: "healthcare", Required: true}},
			},
			{Field: "product_stage", Kind: KindEnum, Allowed: []string{"concept", "prototype", "beta", "launched"}, Recommended: true},
		},
		CrossField: []CrossFieldRule{
			{
				ID: "burn_exceeds_revenue", Field: "burn_rate", Fields: []string{"burn_rate", "revenue"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					if p.BurnRate == nil || *p.BurnRate <= p.RevenueOrZero() {
						return "", nil, false
					}
					return "burn rate exceeds revenue; runway depends on further funding",
						[]string{"Show the months of runway at current burn", "Outline the path to break-even"}, true
				},
			},
			{
				ID: "margins_above_95", Field: "margins", Fields: []string{"margins"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					if p.Margins == nil || *p.Margins <= 0.95 {
						return "", nil, false
					}
					return "margins above 95% are unusual; confirm they are net rather than gross",
						[]string{"Use net margin after operating expenses"}, true
				},
			},
			{
				ID: "revenue_at_ideation", Field: "revenue", Fields: []string{"revenue", "stage"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					if p.Stage != models.StageIdeation || p.RevenueOrZero() <= 0 {
						return "", nil, false
					}
					return "ideation-stage companies are normally pre-revenue",
						[]string{"Consider selecting pre_seed or seed as the stage"}, true
				},
			},
			{
				ID: "cac_ltv_ratio", Field: "cac", Fields: []string{"cac", "ltv"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					if p.CAC == nil || p.LTV == nil || *p.LTV <= 0 {
						return "", nil, false
					}
					ratio := money.Ratio(*p.CAC, *p.LTV)
					if ratio <= 0.3 {
						return "", nil, false
					}
					return fmt.Sprintf("CAC is %.0f%% of LTV; investors look for 30%% or less", math.Round(ratio*100)),
						[]string{"Reduce acquisition cost or raise customer lifetime value"}, true
				},
			},
			{
				ID: "industry_in_sector", Field: "industry", Fields: []string{"industry", "sector", "sub_segment"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, env *Env) (string, []string, bool) {
					if p.Industry == "" || p.Sector == "" || env.Taxonomy == nil {
						return "", nil, false
					}
					tax := env.Taxonomy
					segment := taxonomy.Key{Sector: p.Sector, Segment: p.Industry}
					if !tax.Contains(segment) {
						if owner, ok := tax.SectorOf(p.Industry); ok {
							return fmt.Sprintf("industry %q belongs to sector %q", p.Industry, owner),
								[]string{"Set sector to " + owner}, true
						}
						return fmt.Sprintf("industry %q is not listed under sector %q; sector-wide benchmarks will be used", p.Industry, p.Sector),
							tax.Segments(p.Sector), true
					}
					if p.SubSegment == "" || tax.Contains(taxonomy.Key{Sector: p.Sector, Segment: p.Industry, SubSegment: p.SubSegment}) {
						return "", nil, false
					}
					return fmt.Sprintf("sub-segment %q is not listed under %s/%s", p.SubSegment, p.Sector, p.Industry),
						tax.SubSegments(p.Sector, p.Industry), true
				},
			},
			{
				ID: "region_known", Field: "region", Fields: []string{"region"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, env *Env) (string, []string, bool) {
					if p.Region == "" || env.KnownRegion == nil || env.KnownRegion(p.Region) {
						return "", nil, false
					}
					return fmt.Sprintf("region %q has no benchmark data; benchmark-based methods will be unavailable", p.Region),
						env.Regions, true
				},
			},
			{
				ID: "liabilities_exceed_assets", Field: "liabilities", Fields: []string{"liabilities", "asset_value"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					if p.Liabilities == nil || p.AssetValue == nil || *p.Liabilities <= *p.AssetValue {
						return "", nil, false
					}
					return "liabilities exceed tangible assets; the asset-based valuation may be negative",
						[]string{"Include intangible assets such as IP if they are material"}, true
				},
			},
			{
				ID: "scenario_probabilities", Field: "scenarios", Fields: []string{"scenarios"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					if len(p.Scenarios) == 0 {
						return "", nil, false
					}
					var sum float64
					for _, s := range p.Scenarios {
						sum += s.Probability
					}
					if math.Abs(sum-1) <= ProbabilityTolerance {
						return "", nil, false
					}
					return fmt.Sprintf("scenario probabilities sum to %.4g, not 1", sum),
						[]string{"Adjust probabilities so success, survival and failure add up to 100%"}, true
				},
			},
			{
				ID: "safe_terms", Field: "safes", Fields: []string{"safes"}, Severity: models.SeverityWarning,
				Check: func(p *models.BusinessProfile, _ *Env) (string, []string, bool) {
					for _, s := range p.SAFEs {
						if s.Investment <= 0 {
							return "every SAFE needs a positive investment amount", []string{"Remove empty SAFE rows"}, true
						}
						if s.ValuationCap == nil && s.Discount == nil {
							return "a SAFE without cap or discount converts at the round valuation",
								[]string{"Add the valuation cap or discount from the SAFE agreement"}, true
						}
					}
					return "", nil, false
				},
			},
		},
	}
}

// ProbabilityTolerance is how far scenario probabilities may drift from 1
const ProbabilityTolerance = 1e-6
