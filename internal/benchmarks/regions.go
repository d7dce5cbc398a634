package benchmarks

import "sort"

// unknownRegionMultiplier applies to regions without a published multiplier
const unknownRegionMultiplier = 0.8

var regionRiskMultipliers = map[string]float64{
	"north_america": 1.0,
	"europe":        0.9,
	"asia_pacific":  0.85,
	"india":         0.85,
	"latin_america": 0.8,
	"africa":        0.75,
}

// RegionMultiplier returns the valuation multiplier for a region and whether
// the region was known
func RegionMultiplier(region string) (float64, bool) {
	m, ok := regionRiskMultipliers[norm(region)]
	if !ok {
		return unknownRegionMultiplier, false
	}
	return m, true
}

// Regions lists every region with a published multiplier, sorted
func Regions() []string {
	out := make([]string, 0, len(regionRiskMultipliers))
	for r := range regionRiskMultipliers {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
