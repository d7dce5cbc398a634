package valuation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
)

type slowMethod struct {
	delay time.Duration
}

func (slowMethod) ID() models.MethodID { return "slow" }
func (slowMethod) DependsOn() []string { return nil }
func (s slowMethod) Compute(p *models.BusinessProfile, _ *benchmarks.Snapshot) models.MethodResult {
	time.Sleep(s.delay)
	return applicable("slow", p, 1, nil)
}

type panicMethod struct{}

func (panicMethod) ID() models.MethodID { return "panics" }
func (panicMethod) DependsOn() []string { return nil }
func (panicMethod) Compute(*models.BusinessProfile, *benchmarks.Snapshot) models.MethodResult {
	panic("boom")
}

func TestRunnerTimeoutDoesNotBlockOthers(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := growthProfile()
	snap := builtin(t)
	runner := NewRunner(NewRegistry(DCF{}, slowMethod{delay: 100 * time.Millisecond}, AssetBased{}), 20*time.Millisecond)

	start := time.Now()
	results := runner.Run(context.Background(), &p, snap, nil)
	if elapsed := time.Since(start); elapsed > 90*time.Millisecond {
		t.Errorf("runner waited %s for a timed-out method", elapsed)
	}

	got := resultsByID(results)
	slow := got["slow"]
	if slow.Applicable || ReasonCode(slow.FailureReason) != models.ReasonTimeout {
		t.Errorf("slow method = %+v, want timeout", slow)
	}
	if !got[models.MethodDCF].Applicable || !got[models.MethodAssetBased].Applicable {
		t.Errorf("fast methods should still apply: %+v", results)
	}
}

func TestRunnerRecoversPanics(t *testing.T) {
	p := growthProfile()
	results := NewRunner(NewRegistry(panicMethod{}, AssetBased{}), 0).Run(context.Background(), &p, nil, nil)
	if results[0].Applicable || !strings.Contains(results[0].FailureReason, "boom") {
		t.Errorf("panicking method = %+v", results[0])
	}
	if !results[1].Applicable {
		t.Errorf("asset_based should apply after a sibling panic")
	}
}

func TestRunnerBlocksDependentMethods(t *testing.T) {
	p := growthProfile()
	results := NewRunner(DefaultRegistry(), 0).Run(context.Background(), &p, builtin(t), []string{"revenue"})
	got := resultsByID(results)

	for _, id := range []models.MethodID{models.MethodDCF, models.MethodComparables, models.MethodVC, models.MethodBerkus} {
		if ReasonCode(got[id].FailureReason) != models.ReasonValidationBlocked {
			t.Errorf("%s reason = %q, want validation_blocked", id, got[id].FailureReason)
		}
	}
	if !got[models.MethodAssetBased].Applicable {
		t.Errorf("asset_based does not depend on revenue and should run")
	}
}

func TestRunnerOrderAndDeterminism(t *testing.T) {
	snap := builtin(t)
	p := growthProfile()
	runner := NewRunner(DefaultRegistry(), 0)
	a := runner.Run(context.Background(), &p, snap, nil)
	b := runner.Run(context.Background(), &p, snap, nil)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("results differ between runs:\n%s", diff)
	}
	for i, id := range DefaultRegistry().IDs() {
		if a[i].MethodID != id {
			t.Errorf("result %d = %s, want %s", i, a[i].MethodID, id)
		}
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := growthProfile()
	results := NewRunner(NewRegistry(slowMethod{delay: 50 * time.Millisecond}), time.Second).Run(ctx, &p, nil, nil)
	if results[0].Applicable || ReasonCode(results[0].FailureReason) != models.ReasonCanceled {
		t.Errorf("result = %+v, want canceled", results[0])
	}
}

func TestReasonCode(t *testing.T) {
	tests := map[string]string{
		"timeout: exceeded 150ms budget":           models.ReasonTimeout,
		"benchmark_unavailable":                    models.ReasonBenchmarkUnavailable,
		"validation_blocked: field revenue failed": models.ReasonValidationBlocked,
		"revenue must be greater than 0":           "revenue must be greater than 0",
	}
	for in, want := range tests {
		if got := ReasonCode(in); got != want {
			t.Errorf("ReasonCode(%q) = %q, want %q", in, got, want)
		}
	}
}
