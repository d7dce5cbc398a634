// Package readiness scores how prepared a company is to raise funding across
// financial, market, team and product categories.
package readiness

import (
	"fmt"
	"math"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
)

// Category weights of the overall score
const (
	WeightFinancial = 0.3
	WeightMarket    = 0.3
	WeightTeam      = 0.2
	WeightProduct   = 0.2
)

// RecommendationThreshold is the category score below which a recommendation is added
const RecommendationThreshold = 0.6

var recommendationTemplates = map[models.Category]string{
	models.CategoryFinancial: "Strengthen financial fundamentals: %s is the weakest financial metric (%.0f%%). Show a clear path to efficient growth and healthy unit economics.",
	models.CategoryMarket:    "Sharpen the market case: %s is the weakest market metric (%.0f%%). Size the addressable market and evidence customer traction.",
	models.CategoryTeam:      "Build out the team: %s is the weakest team metric (%.0f%%). Add experienced leaders, advisors or strategic partners.",
	models.CategoryProduct:   "Advance the product: %s is the weakest product metric (%.0f%%). Move toward launch and protect the core technology.",
}

type investorTier struct {
	minOverall   int
	investorType string
	matchScore   float64
	reason       string
}

var investorTiers = []investorTier{
	{minOverall: 80, investorType: "tier1_vc", matchScore: 0.9, reason: "Overall readiness of %d%% meets the bar of top-tier venture funds."},
	{minOverall: 60, investorType: "early_stage_vc", matchScore: 0.75, reason: "Overall readiness of %d%% fits early-stage venture investors."},
	{minOverall: 0, investorType: "angel", matchScore: 0.6, reason: "Overall readiness of %d%% suits angel investors while the fundamentals mature."},
}

// Assess derives metrics from the profile and scores them. The benchmark row
// is looked up in snap when available.
func Assess(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.ReadinessScore {
	var bench *models.Benchmark
	if snap != nil {
		if m, err := snap.Lookup(p.Sector, p.Industry, p.Region); err == nil {
			bench = &m.Benchmark
		}
	}
	return Score(DeriveMetrics(p, bench))
}

// Score rolls pre-normalized metrics up into a ReadinessScore
func Score(m Metrics) models.ReadinessScore {
	rs := models.ReadinessScore{
		Financial: category(models.CategoryFinancial, WeightFinancial, m.Financial),
		Market:    category(models.CategoryMarket, WeightMarket, m.Market),
		Team:      category(models.CategoryTeam, WeightTeam, m.Team),
		Product:   category(models.CategoryProduct, WeightProduct, m.Product),
	}

	var exact float64
	for _, c := range rs.Categories() {
		exact += c.Weight * c.Score
	}
	exact = math.Min(100, math.Max(0, 100*exact))
	rs.OverallExact = math.Round(exact*10000) / 10000
	rs.Overall = int(math.Round(exact))

	rs.Recommendations = []string{}
	for _, c := range rs.Categories() {
		if c.Score < RecommendationThreshold {
			rs.Recommendations = append(rs.Recommendations, recommend(c))
		}
	}
	rs.InvestorMatches = []models.InvestorMatch{MatchInvestor(rs.Overall)}
	return rs
}

// MatchInvestor maps an overall score to its investor type
func MatchInvestor(overall int) models.InvestorMatch {
	for _, tier := range investorTiers {
		if overall >= tier.minOverall {
			return models.InvestorMatch{
				InvestorType: tier.investorType,
				MatchScore:   tier.matchScore,
				Reason:       fmt.Sprintf(tier.reason, overall),
			}
		}
	}
	last := investorTiers[len(investorTiers)-1]
	return models.InvestorMatch{InvestorType: last.investorType, MatchScore: last.matchScore, Reason: fmt.Sprintf(last.reason, overall)}
}

func category(name models.Category, weight float64, metrics []models.SubMetric) models.CategoryScore {
	out := models.CategoryScore{Category: name, Weight: weight, Metrics: make([]models.SubMetric, len(metrics))}
	var sum float64
	for i, sm := range metrics {
		sm.Score = clamp01(sm.Score)
		out.Metrics[i] = sm
		sum += sm.Score
	}
	if len(metrics) > 0 {
		out.Score = sum / float64(len(metrics))
	}
	return out
}

// recommend names the weakest metric; ties go to the first listed
func recommend(c models.CategoryScore) string {
	weakest := models.SubMetric{Name: string(c.Category), Score: c.Score}
	for i, sm := range c.Metrics {
		if i == 0 || sm.Score < weakest.Score {
			weakest = sm
		}
	}
	return fmt.Sprintf(recommendationTemplates[c.Category], weakest.Name, weakest.Score*100)
}
