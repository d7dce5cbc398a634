package models

import (
	"maps"
	"slices"
)

// MethodID identifies a registered valuation method
type MethodID string

const (
	MethodDCF            MethodID = "dcf"
	MethodComparables    MethodID = "comparables"
	MethodScorecard      MethodID = "scorecard"
	MethodBerkus         MethodID = "berkus"
	MethodVC             MethodID = "vc_method"
	MethodFirstChicago   MethodID = "first_chicago"
	MethodAssetBased     MethodID = "asset_based"
	MethodSAFEConversion MethodID = "safe_conversion"
)

// Failure reasons recorded on unapplicable method results
const (
	ReasonBenchmarkUnavailable = "benchmark_unavailable"
	ReasonTimeout              = "timeout"
	ReasonValidationBlocked    = "validation_blocked"
	ReasonCanceled             = "canceled"
)

// Assumption is one named input or intermediate used to produce a value.
// Numbers are formatted losslessly so the trail can be replayed.
type Assumption struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MethodResult is the output of exactly one valuation method.
// Value, Low and High are minor units of Currency.
type MethodResult struct {
	MethodID      MethodID     `json:"method_id"`
	Value         int64        `json:"value"`
	Currency      string       `json:"currency"`
	Low           *int64       `json:"low,omitempty"`
	High          *int64       `json:"high,omitempty"`
	Assumptions   []Assumption `json:"assumptions"`
	Applicable    bool         `json:"applicable"`
	FailureReason string       `json:"failure_reason,omitempty"`
}

// ScenarioBand is the conservative/recommended/optimistic spread around a blend
type ScenarioBand struct {
	Conservative int64 `json:"conservative"`
	Recommended  int64 `json:"recommended"`
	Optimistic   int64 `json:"optimistic"`
}

// ConfidenceBreakdown records the two inputs of the confidence score
type ConfidenceBreakdown struct {
	Coverage  float64 `json:"coverage"`
	Agreement float64 `json:"agreement"`
}

// WeightedBlend combines applicable method results into one valuation.
// Weights of applicable methods sum to 1.0; Midpoints holds the published-range
// midpoints before renormalization.
type WeightedBlend struct {
	Weights             map[MethodID]float64 `json:"weights"`
	Midpoints           map[MethodID]float64 `json:"weight_midpoints"`
	Value               int64                `json:"value"`
	Currency            string               `json:"currency"`
	Confidence          float64              `json:"confidence"`
	ConfidenceBreakdown ConfidenceBreakdown  `json:"confidence_breakdown"`
	Band                ScenarioBand         `json:"band"`
}

// RiskFactor is one additive component of the discount rate
type RiskFactor struct {
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	WeightBP       int     `json:"weight_bp"`
	ContributionBP float64 `json:"contribution_bp"`
}

// RiskPremium is the discount rate used by dcf together with its breakdown
type RiskPremium struct {
	BaseRate float64      `json:"base_rate"`
	Rate     float64      `json:"rate"`
	Clamped  bool         `json:"clamped"`
	Factors  []RiskFactor `json:"factors"`
}

// SAFEConversionLine is the conversion of one SAFE against the pre-money valuation
type SAFEConversionLine struct {
	Index               int     `json:"index"`
	Investment          int64   `json:"investment"`
	ConversionValuation int64   `json:"conversion_valuation"`
	Basis               string  `json:"basis"` // cap, discount or valuation
	Ownership           float64 `json:"ownership"`
}

// SAFEConversion reports the dilution outstanding SAFEs produce at a valuation
type SAFEConversion struct {
	PreMoneyValuation int64                `json:"pre_money_valuation"`
	Lines             []SAFEConversionLine `json:"lines"`
	TotalOwnership    float64              `json:"total_ownership"`
	ExistingRetained  float64              `json:"existing_retained"`
}

// ValuationReport is the full output handed to report and export collaborators.
// Findings are always present; Blend is nil when no method could run.
type ValuationReport struct {
	ID               string              `json:"id"`
	Currency         string              `json:"currency"`
	AsOf             *FlexibleDate       `json:"as_of,omitempty"`
	BenchmarkVersion string              `json:"benchmark_version"`
	Blend            *WeightedBlend      `json:"blend,omitempty"`
	MethodResults    []MethodResult      `json:"method_results"`
	Findings         []ValidationFinding `json:"findings"`
	Readiness        *ReadinessScore     `json:"readiness,omitempty"`
	Risk             *RiskPremium        `json:"risk,omitempty"`
	SAFEConversion   *SAFEConversion     `json:"safe_conversion,omitempty"`
	Warnings         []Warning           `json:"warnings,omitempty"`
}

// Clone returns a deep copy of the report; no slice, map or pointer is shared
func (r ValuationReport) Clone() ValuationReport {
	c := r
	if r.AsOf != nil {
		asOf := *r.AsOf
		c.AsOf = &asOf
	}
	if r.Blend != nil {
		b := *r.Blend
		b.Weights = maps.Clone(r.Blend.Weights)
		b.Midpoints = maps.Clone(r.Blend.Midpoints)
		c.Blend = &b
	}
	if r.MethodResults != nil {
		c.MethodResults = make([]MethodResult, len(r.MethodResults))
		for i, m := range r.MethodResults {
			m.Low = clonePtr(m.Low)
			m.High = clonePtr(m.High)
			m.Assumptions = slices.Clone(m.Assumptions)
			c.MethodResults[i] = m
		}
	}
	if r.Findings != nil {
		c.Findings = make([]ValidationFinding, len(r.Findings))
		for i, f := range r.Findings {
			f.Suggestions = slices.Clone(f.Suggestions)
			f.SuggestedValue = clonePtr(f.SuggestedValue)
			c.Findings[i] = f
		}
	}
	if r.Readiness != nil {
		s := *r.Readiness
		for _, cat := range []*CategoryScore{&s.Financial, &s.Market, &s.Team, &s.Product} {
			cat.Metrics = slices.Clone(cat.Metrics)
		}
		s.Recommendations = slices.Clone(s.Recommendations)
		s.InvestorMatches = slices.Clone(s.InvestorMatches)
		c.Readiness = &s
	}
	if r.Risk != nil {
		p := *r.Risk
		p.Factors = slices.Clone(p.Factors)
		c.Risk = &p
	}
	if r.SAFEConversion != nil {
		conv := *r.SAFEConversion
		conv.Lines = slices.Clone(conv.Lines)
		c.SAFEConversion = &conv
	}
	c.Warnings = slices.Clone(r.Warnings)
	return c
}
