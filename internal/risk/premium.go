// Package risk derives the dcf discount rate from additive risk factors
package risk

import (
	"math"

	"github.com/camayank/startupvaluator/internal/models"
)

const (
	RiskFreeRate       = 0.03
	MarketRiskPremium  = 0.055
	defaultMissingRisk = 0.5
)

// Model holds the base rate, clamp band and per-factor basis-point weights
type Model struct {
	BaseRate float64
	MinRate  float64
	MaxRate  float64
	Weights  FactorWeights
}

// FactorWeights are basis points added for a factor scored 1.0
type FactorWeights struct {
	Team        int
	Competition int
	Regulatory  int
	Technology  int
	Stage       int
}

// Default is the model used by the dcf method
var Default = Model{
	BaseRate: RiskFreeRate + MarketRiskPremium,
	MinRate:  0.08,
	MaxRate:  0.35,
	Weights: FactorWeights{
		Team:        400,
		Competition: 300,
		Regulatory:  300,
		Technology:  300,
		Stage:       1000,
	},
}

var stageRisk = map[models.Stage]float64{
	models.StageIdeation: 1.0,
	models.StagePreSeed:  0.8,
	models.StageSeed:     0.6,
	models.StageSeriesA:  0.35,
	models.StageGrowth:   0.15,
}

var regulatoryRisk = map[models.RegulatoryStatus]float64{
	models.RegulatoryCompliant:    0.1,
	models.RegulatoryNotRequired:  0.2,
	models.RegulatoryPending:      0.6,
	models.RegulatoryNonCompliant: 1.0,
}

var ipRisk = map[models.IPStatus]float64{
	models.IPGranted:     0.2,
	models.IPPending:     0.4,
	models.IPTradeSecret: 0.5,
	models.IPNone:        0.7,
}

var productRisk = map[models.ProductStage]float64{
	models.ProductLaunched:  0.2,
	models.ProductBeta:      0.4,
	models.ProductPrototype: 0.6,
	models.ProductConcept:   0.9,
}

// Premium computes the discount rate for p with the Default model.
// bench may be nil; competition risk then defaults to the midpoint.
func Premium(p *models.BusinessProfile, bench *models.Benchmark) models.RiskPremium {
	return Default.Premium(p, bench)
}

// Premium computes the discount rate and its per-factor breakdown
func (m Model) Premium(p *models.BusinessProfile, bench *models.Benchmark) models.RiskPremium {
	factors := []models.RiskFactor{
		factor("team", teamRisk(p), m.Weights.Team),
		factor("competition", competitionRisk(bench), m.Weights.Competition),
		factor("regulatory", lookup(regulatoryRisk, p.RegulatoryStatus), m.Weights.Regulatory),
		factor("technology", technologyRisk(p), m.Weights.Technology),
		factor("stage", lookup(stageRisk, p.Stage), m.Weights.Stage),
	}

	var bp float64
	for _, f := range factors {
		bp += f.ContributionBP
	}
	raw := m.BaseRate + bp/10000
	rate := math.Min(m.MaxRate, math.Max(m.MinRate, raw))

	return models.RiskPremium{
		BaseRate: m.BaseRate,
		Rate:     rate,
		Clamped:  rate != raw,
		Factors:  factors,
	}
}

func factor(name string, score float64, weightBP int) models.RiskFactor {
	score = clamp01(score)
	return models.RiskFactor{
		Name:           name,
		Score:          score,
		WeightBP:       weightBP,
		ContributionBP: score * float64(weightBP),
	}
}

// teamRisk falls as experience (10+ years) and team size (10+) grow
func teamRisk(p *models.BusinessProfile) float64 {
	var parts []float64
	if p.TeamExperience != nil {
		parts = append(parts, 1-math.Min(*p.TeamExperience/10, 1))
	}
	if p.TeamSize != nil {
		parts = append(parts, 1-math.Min(float64(*p.TeamSize)/10, 1))
	}
	return meanOr(parts, defaultMissingRisk)
}

func competitionRisk(bench *models.Benchmark) float64 {
	if bench == nil {
		return defaultMissingRisk
	}
	return bench.CompetitorDensity
}

func technologyRisk(p *models.BusinessProfile) float64 {
	var parts []float64
	if v, ok := ipRisk[p.IPStatus]; ok {
		parts = append(parts, v)
	}
	if v, ok := productRisk[p.ProductStage]; ok {
		parts = append(parts, v)
	}
	return meanOr(parts, defaultMissingRisk)
}

func lookup[K comparable](table map[K]float64, k K) float64 {
	if v, ok := table[k]; ok {
		return v
	}
	return defaultMissingRisk
}

func meanOr(vals []float64, fallback float64) float64 {
	if len(vals) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
