package models

// Category is one of the four funding-readiness categories
type Category string

const (
	CategoryFinancial Category = "financial"
	CategoryMarket    Category = "market"
	CategoryTeam      Category = "team"
	CategoryProduct   Category = "product"
)

// SubMetric is a pre-normalized score in [0,1]
type SubMetric struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// CategoryScore holds a category's sub-metrics and their mean
type CategoryScore struct {
	Category Category    `json:"category"`
	Metrics  []SubMetric `json:"metrics"`
	Score    float64     `json:"score"`
	Weight   float64     `json:"weight"`
}

// InvestorMatch is a templated investor-type suggestion
type InvestorMatch struct {
	InvestorType string  `json:"investor_type"`
	MatchScore   float64 `json:"match_score"`
	Reason       string  `json:"reason"`
}

// ReadinessScore is the funding-readiness assessment of a profile.
// Overall is an integer percentage in [0,100]; OverallExact keeps the unrounded value.
type ReadinessScore struct {
	Financial       CategoryScore   `json:"financial"`
	Market          CategoryScore   `json:"market"`
	Team            CategoryScore   `json:"team"`
	Product         CategoryScore   `json:"product"`
	Overall         int             `json:"overall"`
	OverallExact    float64         `json:"overall_exact"`
	Recommendations []string        `json:"recommendations"`
	InvestorMatches []InvestorMatch `json:"investor_matches"`
}

// Categories returns the four category scores in fixed order
func (r *ReadinessScore) Categories() []CategoryScore {
	return []CategoryScore{r.Financial, r.Market, r.Team, r.Product}
}
