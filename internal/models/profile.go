package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

var ErrMalformedProfile = errors.New("malformed business profile")

// Stage represents the company's funding stage, ordered from earliest to latest
type Stage string

const (
	StageIdeation Stage = "ideation"
	StagePreSeed  Stage = "pre_seed"
	StageSeed     Stage = "seed"
	StageSeriesA  Stage = "series_a"
	StageGrowth   Stage = "growth"
)

var stageRank = map[Stage]int{
	StageIdeation: 0,
	StagePreSeed:  1,
	StageSeed:     2,
	StageSeriesA:  3,
	StageGrowth:   4,
}

// Stages lists every stage in ascending order
func Stages() []Stage {
	return []Stage{StageIdeation, StagePreSeed, StageSeed, StageSeriesA, StageGrowth}
}

// Valid reports whether s is a known stage
func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// Rank returns the ordinal position of the stage (ideation = 0), or -1 if unknown
func (s Stage) Rank() int {
	r, ok := stageRank[s]
	if !ok {
		return -1
	}
	return r
}

// IPStatus describes the intellectual-property protection of the business
type IPStatus string

const (
	IPNone        IPStatus = "none"
	IPPending     IPStatus = "pending"
	IPGranted     IPStatus = "granted"
	IPTradeSecret IPStatus = "trade_secret"
)

// RegulatoryStatus describes regulatory compliance of the business
type RegulatoryStatus string

const (
	RegulatoryNotRequired  RegulatoryStatus = "not_required"
	RegulatoryPending      RegulatoryStatus = "pending"
	RegulatoryCompliant    RegulatoryStatus = "compliant"
	RegulatoryNonCompliant RegulatoryStatus = "non_compliant"
)

// ProductStage describes how far the product has progressed
type ProductStage string

const (
	ProductConcept   ProductStage = "concept"
	ProductPrototype ProductStage = "prototype"
	ProductBeta      ProductStage = "beta"
	ProductLaunched  ProductStage = "launched"
)

// ScenarioProjection is one outcome of a multi-scenario forecast.
// ProjectedRevenue is in minor units at the end of Years.
type ScenarioProjection struct {
	Name             string   `json:"name" yaml:"name"`
	Probability      float64  `json:"probability" yaml:"probability"`
	ProjectedRevenue int64    `json:"projected_revenue" yaml:"projected_revenue"`
	Multiple         *float64 `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Years            int      `json:"years" yaml:"years"`
}

// SAFEInstrument is an outstanding simple agreement for future equity.
// Discount is a fraction (0.20 = 20%).
type SAFEInstrument struct {
	Investment   int64    `json:"investment" yaml:"investment"`
	ValuationCap *int64   `json:"valuation_cap,omitempty" yaml:"valuation_cap,omitempty"`
	Discount     *float64 `json:"discount,omitempty" yaml:"discount,omitempty"`
}

// BusinessProfile is the immutable input snapshot for one computation.
// Currency amounts are minor units (cents); rates and margins are fractions.
// A nil pointer means the value has not been provided yet.
type BusinessProfile struct {
	Sector     string `json:"sector" yaml:"sector"`
	Industry   string `json:"industry" yaml:"industry"`
	SubSegment string `json:"sub_segment,omitempty" yaml:"sub_segment,omitempty"`
	Region     string `json:"region" yaml:"region"`
	Stage      Stage  `json:"stage" yaml:"stage"`
	Currency   string `json:"currency,omitempty" yaml:"currency,omitempty"`

	Revenue           *int64   `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	GrowthRate        *float64 `json:"growth_rate,omitempty" yaml:"growth_rate,omitempty"`
	Margins           *float64 `json:"margins,omitempty" yaml:"margins,omitempty"`
	BurnRate          *int64   `json:"burn_rate,omitempty" yaml:"burn_rate,omitempty"`
	TeamSize          *int     `json:"team_size,omitempty" yaml:"team_size,omitempty"`
	TeamExperience    *float64 `json:"team_experience,omitempty" yaml:"team_experience,omitempty"` // average years
	CustomerCount     *int     `json:"customer_count,omitempty" yaml:"customer_count,omitempty"`
	FundingRaised     *int64   `json:"funding_raised,omitempty" yaml:"funding_raised,omitempty"`
	PlannedInvestment *int64   `json:"planned_investment,omitempty" yaml:"planned_investment,omitempty"`
	MarketSize        *int64   `json:"market_size,omitempty" yaml:"market_size,omitempty"`
	ChurnRate         *float64 `json:"churn_rate,omitempty" yaml:"churn_rate,omitempty"`
	CAC               *int64   `json:"cac,omitempty" yaml:"cac,omitempty"`
	LTV               *int64   `json:"ltv,omitempty" yaml:"ltv,omitempty"`
	ScalabilityRating *int     `json:"scalability_rating,omitempty" yaml:"scalability_rating,omitempty"` // 1-10
	Partnerships      *int     `json:"partnerships,omitempty" yaml:"partnerships,omitempty"`

	IPStatus         IPStatus         `json:"ip_status,omitempty" yaml:"ip_status,omitempty"`
	RegulatoryStatus RegulatoryStatus `json:"regulatory_status,omitempty" yaml:"regulatory_status,omitempty"`
	ProductStage     ProductStage     `json:"product_stage,omitempty" yaml:"product_stage,omitempty"`

	AssetValue      *int64 `json:"asset_value,omitempty" yaml:"asset_value,omitempty"`
	Liabilities     *int64 `json:"liabilities,omitempty" yaml:"liabilities,omitempty"`
	IntangibleValue *int64 `json:"intangible_value,omitempty" yaml:"intangible_value,omitempty"`

	Scenarios []ScenarioProjection `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	SAFEs     []SAFEInstrument     `json:"safes,omitempty" yaml:"safes,omitempty"`
}

// CurrencyCode returns the declared ISO currency, defaulting to USD
func (p *BusinessProfile) CurrencyCode() string {
	if p.Currency == "" {
		return "USD"
	}
	return strings.ToUpper(p.Currency)
}

// RevenueOrZero treats an absent revenue as pre-revenue
func (p *BusinessProfile) RevenueOrZero() int64 {
	if p.Revenue == nil {
		return 0
	}
	return *p.Revenue
}

// Check rejects profiles that cannot be interpreted at all: unknown enum
// literals and unparseable currency codes. Range problems are reported as
// validation findings instead.
func (p *BusinessProfile) Check() error {
	var problems []string
	if p.Stage != "" && !p.Stage.Valid() {
		problems = append(problems, fmt.Sprintf("unknown stage %q", p.Stage))
	}
	if p.Currency != "" {
		if _, err := currency.ParseISO(p.Currency); err != nil {
			problems = append(problems, fmt.Sprintf("invalid currency %q", p.Currency))
		}
	}
	switch p.IPStatus {
	case "", IPNone, IPPending, IPGranted, IPTradeSecret:
	default:
		problems = append(problems, fmt.Sprintf("unknown ip_status %q", p.IPStatus))
	}
	switch p.RegulatoryStatus {
	case "", RegulatoryNotRequired, RegulatoryPending, RegulatoryCompliant, RegulatoryNonCompliant:
	default:
		problems = append(problems, fmt.Sprintf("unknown regulatory_status %q", p.RegulatoryStatus))
	}
	switch p.ProductStage {
	case "", ProductConcept, ProductPrototype, ProductBeta, ProductLaunched:
	default:
		problems = append(problems, fmt.Sprintf("unknown product_stage %q", p.ProductStage))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedProfile, strings.Join(problems, "; "))
	}
	return nil
}

// Clone returns a deep copy so wizard steps never mutate a snapshot in place
func (p BusinessProfile) Clone() BusinessProfile {
	c := p
	c.Revenue = clonePtr(p.Revenue)
	c.GrowthRate = clonePtr(p.GrowthRate)
	c.Margins = clonePtr(p.Margins)
	c.BurnRate = clonePtr(p.BurnRate)
	c.TeamSize = clonePtr(p.TeamSize)
	c.TeamExperience = clonePtr(p.TeamExperience)
	c.CustomerCount = clonePtr(p.CustomerCount)
	c.FundingRaised = clonePtr(p.FundingRaised)
	c.PlannedInvestment = clonePtr(p.PlannedInvestment)
	c.MarketSize = clonePtr(p.MarketSize)
	c.ChurnRate = clonePtr(p.ChurnRate)
	c.CAC = clonePtr(p.CAC)
	c.LTV = clonePtr(p.LTV)
	c.ScalabilityRating = clonePtr(p.ScalabilityRating)
	c.Partnerships = clonePtr(p.Partnerships)
	c.AssetValue = clonePtr(p.AssetValue)
	c.Liabilities = clonePtr(p.Liabilities)
	c.IntangibleValue = clonePtr(p.IntangibleValue)
	if p.Scenarios != nil {
		c.Scenarios = make([]ScenarioProjection, len(p.Scenarios))
		for i, s := range p.Scenarios {
			s.Multiple = clonePtr(s.Multiple)
			c.Scenarios[i] = s
		}
	}
	if p.SAFEs != nil {
		c.SAFEs = make([]SAFEInstrument, len(p.SAFEs))
		for i, s := range p.SAFEs {
			s.ValuationCap = clonePtr(s.ValuationCap)
			s.Discount = clonePtr(s.Discount)
			c.SAFEs[i] = s
		}
	}
	return c
}

// With returns an updated copy of the profile; the receiver is left untouched
func (p BusinessProfile) With(update func(*BusinessProfile)) BusinessProfile {
	c := p.Clone()
	update(&c)
	return c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Int64 returns a pointer to v
func Int64(v int64) *int64 { return &v }

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }
