// Package blend combines applicable method results into one weighted
// valuation with a confidence score and a scenario band.
package blend

import (
	"errors"
	"math"

	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

var ErrNoApplicableMethod = errors.New("no applicable valuation method")

const (
	conservativeFactor = 0.85
	optimisticFactor   = 1.20
)

// Range is a published weight interval for a method
type Range struct {
	Min, Max float64
}

// Midpoint returns the center of the range
func (r Range) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// Contains reports whether w lies within the range
func (r Range) Contains(w float64) bool {
	return w >= r.Min && w <= r.Max
}

// WeightRanges lists every blendable method. Methods without a range, such as
// safe_conversion, never receive weight.
var WeightRanges = map[models.MethodID]Range{
	models.MethodDCF:          {0.30, 0.50},
	models.MethodComparables:  {0.20, 0.40},
	models.MethodFirstChicago: {0.15, 0.30},
	models.MethodVC:           {0.25, 0.45},
	models.MethodScorecard:    {0.10, 0.25},
	models.MethodAssetBased:   {0.05, 0.15},
	models.MethodBerkus:       {0.15, 0.35},
}

// OptimalMethods is the method set considered complete coverage for a stage
var OptimalMethods = map[models.Stage][]models.MethodID{
	models.StageIdeation: {models.MethodBerkus, models.MethodScorecard},
	models.StagePreSeed:  {models.MethodBerkus, models.MethodScorecard, models.MethodVC},
	models.StageSeed:     {models.MethodScorecard, models.MethodVC, models.MethodComparables, models.MethodFirstChicago},
	models.StageSeriesA:  {models.MethodDCF, models.MethodComparables, models.MethodVC, models.MethodFirstChicago},
	models.StageGrowth:   {models.MethodDCF, models.MethodComparables, models.MethodFirstChicago, models.MethodAssetBased},
}

// Weights assigns each id its range midpoint, then divides by the sum of the
// midpoints so the weights add up to exactly 1. The last weight absorbs the
// floating-point remainder. Ids without a range are ignored.
func Weights(ids []models.MethodID) (weights, midpoints map[models.MethodID]float64) {
	weights = make(map[models.MethodID]float64, len(ids))
	midpoints = make(map[models.MethodID]float64, len(ids))

	var ranged []models.MethodID
	var total float64
	for _, id := range ids {
		r, ok := WeightRanges[id]
		if !ok {
			continue
		}
		ranged = append(ranged, id)
		midpoints[id] = r.Midpoint()
		total += r.Midpoint()
	}
	if len(ranged) == 0 {
		return weights, midpoints
	}

	var assigned float64
	for i, id := range ranged {
		if i == len(ranged)-1 {
			weights[id] = 1 - assigned
			break
		}
		w := midpoints[id] / total
		weights[id] = w
		assigned += w
	}
	return weights, midpoints
}

// Blend combines the applicable results. Results are read in the order given,
// so the same input always produces the same output.
func Blend(results []models.MethodResult, p *models.BusinessProfile) (*models.WeightedBlend, error) {
	var used []models.MethodResult
	for _, r := range results {
		if !r.Applicable {
			continue
		}
		if _, ok := WeightRanges[r.MethodID]; !ok {
			continue
		}
		used = append(used, r)
	}
	if len(used) == 0 {
		return nil, ErrNoApplicableMethod
	}

	ids := make([]models.MethodID, len(used))
	for i, r := range used {
		ids[i] = r.MethodID
	}
	weights, midpoints := Weights(ids)

	values := make([]int64, len(used))
	lows := make([]int64, len(used))
	highs := make([]int64, len(used))
	ws := make([]float64, len(used))
	for i, r := range used {
		values[i] = r.Value
		ws[i] = weights[r.MethodID]
		lows[i] = money.Scale(r.Value, conservativeFactor)
		if r.Low != nil {
			lows[i] = min(*r.Low, r.Value)
		}
		highs[i] = money.Scale(r.Value, optimisticFactor)
		if r.High != nil {
			highs[i] = max(*r.High, r.Value)
		}
	}

	value := money.WeightedSum(values, ws)
	band := models.ScenarioBand{
		Conservative: min(money.WeightedSum(lows, ws), value),
		Recommended:  value,
		Optimistic:   max(money.WeightedSum(highs, ws), value),
	}

	coverage := Coverage(ids, p.Stage)
	agreement := Agreement(values)

	return &models.WeightedBlend{
		Weights:    weights,
		Midpoints:  midpoints,
		Value:      value,
		Currency:   p.CurrencyCode(),
		Confidence: Confidence(coverage, agreement),
		ConfidenceBreakdown: models.ConfidenceBreakdown{
			Coverage:  round4(coverage),
			Agreement: round4(agreement),
		},
		Band: band,
	}, nil
}

// Confidence weighs coverage and agreement equally, clipped to [0,1]
func Confidence(coverage, agreement float64) float64 {
	c := 0.5*coverage + 0.5*agreement
	return round4(math.Min(1, math.Max(0, c)))
}

// Coverage is the fraction of the stage's optimal methods that applied. For an
// unknown stage every blendable method counts as optimal.
func Coverage(applied []models.MethodID, stage models.Stage) float64 {
	optimal, ok := OptimalMethods[stage]
	if !ok {
		return float64(len(applied)) / float64(len(WeightRanges))
	}
	got := make(map[models.MethodID]bool, len(applied))
	for _, id := range applied {
		got[id] = true
	}
	hits := 0
	for _, id := range optimal {
		if got[id] {
			hits++
		}
	}
	return float64(hits) / float64(len(optimal))
}

// Agreement is 1/(1+CV) over the values, where CV is the population
// coefficient of variation. A single value carries no agreement signal and
// scores 0.5.
func Agreement(values []int64) float64 {
	if len(values) < 2 {
		return 0.5
	}
	var mean float64
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))
	if mean <= 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))
	cv := math.Sqrt(variance) / mean
	return 1 / (1 + cv)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
