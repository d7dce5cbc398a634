package blend

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/camayank/startupvaluator/internal/models"
)

func result(id models.MethodID, value int64) models.MethodResult {
	return models.MethodResult{MethodID: id, Value: value, Currency: "USD", Applicable: true, Assumptions: []models.Assumption{}}
}

func allSubsets(ids []models.MethodID) [][]models.MethodID {
	var out [][]models.MethodID
	for mask := 1; mask < 1<<len(ids); mask++ {
		var set []models.MethodID
		for i, id := range ids {
			if mask&(1<<i) != 0 {
				set = append(set, id)
			}
		}
		out = append(out, set)
	}
	return out
}

var blendable = []models.MethodID{
	models.MethodDCF, models.MethodComparables, models.MethodScorecard, models.MethodBerkus,
	models.MethodVC, models.MethodFirstChicago, models.MethodAssetBased,
}

func TestWeightsSumToOneForEverySubset(t *testing.T) {
	for _, set := range allSubsets(blendable) {
		weights, _ := Weights(set)
		var sum float64
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("weights for %v sum to %v", set, sum)
		}
	}
}

func TestMidpointsLieInPublishedRange(t *testing.T) {
	_, mids := Weights(blendable)
	for id, m := range mids {
		if !WeightRanges[id].Contains(m) {
			t.Errorf("%s midpoint %v outside %v", id, m, WeightRanges[id])
		}
	}
	if mids[models.MethodDCF] != 0.40 {
		t.Errorf("dcf midpoint = %v, want 0.40", mids[models.MethodDCF])
	}
}

func TestBlendBandOrderingAndConfidence(t *testing.T) {
	p := &models.BusinessProfile{Stage: models.StageGrowth}
	values := []int64{1, 1_000, 5_000_000, 90_000_000_000}
	for _, set := range allSubsets(blendable) {
		var results []models.MethodResult
		for i, id := range set {
			results = append(results, result(id, values[i%len(values)]))
		}
		b, err := Blend(results, p)
		if err != nil {
			t.Fatalf("blend %v: %v", set, err)
		}
		if !(b.Band.Conservative <= b.Band.Recommended && b.Band.Recommended <= b.Band.Optimistic) {
			t.Errorf("band out of order for %v: %+v", set, b.Band)
		}
		if b.Confidence < 0 || b.Confidence > 1 {
			t.Errorf("confidence %v outside [0,1] for %v", b.Confidence, set)
		}
	}
}

func TestBlendUsesMethodBounds(t *testing.T) {
	low, high := int64(500), int64(3000)
	r := result(models.MethodFirstChicago, 1000)
	r.Low, r.High = &low, &high
	b, err := Blend([]models.MethodResult{r}, &models.BusinessProfile{Stage: models.StageSeed})
	if err != nil {
		t.Fatal(err)
	}
	want := models.ScenarioBand{Conservative: 500, Recommended: 1000, Optimistic: 3000}
	if diff := cmp.Diff(want, b.Band); diff != "" {
		t.Errorf("band (-want +got):\n%s", diff)
	}

	b, _ = Blend([]models.MethodResult{result(models.MethodDCF, 1000)}, &models.BusinessProfile{})
	if b.Band.Conservative != 850 || b.Band.Optimistic != 1200 {
		t.Errorf("fixed multipliers band = %+v", b.Band)
	}
}

func TestBlendIgnoresUnapplicableAndUnranged(t *testing.T) {
	results := []models.MethodResult{
		result(models.MethodDCF, 1000),
		{MethodID: models.MethodComparables, Value: 999999, Applicable: false, FailureReason: "benchmark_unavailable"},
		result(models.MethodSAFEConversion, 5000),
	}
	b, err := Blend(results, &models.BusinessProfile{Stage: models.StageGrowth})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Weights) != 1 || b.Weights[models.MethodDCF] != 1 || b.Value != 1000 {
		t.Errorf("blend = %+v", b)
	}
}

func TestBlendNoApplicableMethod(t *testing.T) {
	_, err := Blend([]models.MethodResult{{MethodID: models.MethodDCF, FailureReason: "x"}}, &models.BusinessProfile{})
	if !errors.Is(err, ErrNoApplicableMethod) {
		t.Errorf("got %v, want ErrNoApplicableMethod", err)
	}
}

func TestBlendIsByteIdentical(t *testing.T) {
	results := []models.MethodResult{
		result(models.MethodDCF, 12_345_678),
		result(models.MethodComparables, 9_876_543),
		result(models.MethodAssetBased, 1_000_000),
	}
	p := &models.BusinessProfile{Stage: models.StageGrowth}
	a, _ := Blend(results, p)
	b, _ := Blend(results, p)
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Errorf("blend output differs:\n%s\n%s", ja, jb)
	}
}

func TestAgreementAndCoverage(t *testing.T) {
	if a := Agreement([]int64{100, 100, 100}); a != 1 {
		t.Errorf("identical values agreement = %v, want 1", a)
	}
	if a := Agreement([]int64{100}); a != 0.5 {
		t.Errorf("single value agreement = %v, want 0.5", a)
	}
	if a, b := Agreement([]int64{100, 110}), Agreement([]int64{100, 300}); a <= b {
		t.Errorf("closer values should agree more: %v <= %v", a, b)
	}
	cov := Coverage([]models.MethodID{models.MethodDCF, models.MethodComparables}, models.StageGrowth)
	if cov != 0.5 {
		t.Errorf("coverage = %v, want 0.5", cov)
	}
}
