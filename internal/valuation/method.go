// Package valuation holds the registered valuation methods and the runner that
// executes them concurrently against one profile and benchmark snapshot.
package valuation

import (
	"errors"
	"fmt"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
)

// ErrMethodUnapplicable marks a method whose preconditions are unmet. It is
// recorded on the result and never returned by the runner.
var ErrMethodUnapplicable = errors.New("method not applicable")

// Method is one valuation methodology. Compute must be pure: the same profile
// and snapshot always produce the same result, and unmet preconditions are
// reported as an unapplicable result rather than an error.
type Method interface {
	ID() models.MethodID
	// DependsOn lists the profile fields whose error findings block the method
	DependsOn() []string
	Compute(p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult
}

// UnapplicableError wraps a result's failure reason for logging
func UnapplicableError(r models.MethodResult) error {
	if r.Applicable {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrMethodUnapplicable, r.MethodID, r.FailureReason)
}

// trail accumulates the named assumptions behind a value
type trail []models.Assumption

func (t *trail) add(key, value string) {
	*t = append(*t, models.Assumption{Key: key, Value: value})
}

func (t *trail) money(key string, v int64) {
	t.add(key, money.FormatInt(v))
}

func (t *trail) num(key string, v float64) {
	t.add(key, money.FormatFloat(v))
}

func unapplicable(id models.MethodID, p *models.BusinessProfile, reason string) models.MethodResult {
	return models.MethodResult{
		MethodID:      id,
		Currency:      p.CurrencyCode(),
		Assumptions:   []models.Assumption{},
		Applicable:    false,
		FailureReason: reason,
	}
}

func unapplicablef(id models.MethodID, p *models.BusinessProfile, format string, args ...any) models.MethodResult {
	return unapplicable(id, p, fmt.Sprintf(format, args...))
}

// applicable builds a successful result; non-positive values are downgraded
// since a blend cannot use them, as are values beyond money.MaxAmount
func applicable(id models.MethodID, p *models.BusinessProfile, value int64, t trail) models.MethodResult {
	if !money.InRange(value) {
		return unapplicablef(id, p, "computed value exceeds the supported maximum of %s", money.Format(money.MaxAmount))
	}
	if value <= 0 {
		return unapplicablef(id, p, "computed value %s is not positive", money.FormatInt(value))
	}
	if t == nil {
		t = trail{}
	}
	return models.MethodResult{
		MethodID:    id,
		Value:       value,
		Currency:    p.CurrencyCode(),
		Assumptions: t,
		Applicable:  true,
	}
}

// lookupBenchmark resolves the profile's benchmark row; ok is false when the
// snapshot is absent or has no row for the sector and region
func lookupBenchmark(p *models.BusinessProfile, snap *benchmarks.Snapshot) (models.BenchmarkMatch, bool) {
	if snap == nil {
		return models.BenchmarkMatch{}, false
	}
	m, err := snap.Lookup(p.Sector, p.Industry, p.Region)
	if err != nil {
		return models.BenchmarkMatch{}, false
	}
	return m, true
}

func (t *trail) benchmark(m models.BenchmarkMatch) {
	t.add("benchmark_key", m.MatchedKey)
	if m.Fallback {
		t.add("benchmark_fallback", "true")
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// teamScore rates experience (10+ years) and size (10+ people) in [0,1]
func teamScore(p *models.BusinessProfile, missing float64) float64 {
	var sum float64
	n := 0
	if p.TeamExperience != nil {
		sum += clamp01(*p.TeamExperience / 10)
		n++
	}
	if p.TeamSize != nil {
		sum += clamp01(float64(*p.TeamSize) / 10)
		n++
	}
	if n == 0 {
		return missing
	}
	return sum / float64(n)
}

var productStageScore = map[models.ProductStage]float64{
	models.ProductConcept:   0.2,
	models.ProductPrototype: 0.4,
	models.ProductBeta:      0.6,
	models.ProductLaunched:  0.9,
}
