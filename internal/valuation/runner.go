package valuation

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
)

// DefaultMethodTimeout is the budget of a single method
const DefaultMethodTimeout = 150 * time.Millisecond

var tracer = otel.Tracer("github.com/camayank/startupvaluator/internal/valuation")

// Runner executes every registered method concurrently
type Runner struct {
	registry      *Registry
	methodTimeout time.Duration
}

// NewRunner creates a runner; a zero timeout uses DefaultMethodTimeout
func NewRunner(registry *Registry, methodTimeout time.Duration) *Runner {
	if methodTimeout <= 0 {
		methodTimeout = DefaultMethodTimeout
	}
	return &Runner{registry: registry, methodTimeout: methodTimeout}
}

// Registry returns the runner's method registry
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Run computes every method and returns results in registry order. Methods
// that depend on a blocked field are skipped with reason validation_blocked;
// methods that overrun their budget or the context are reported unapplicable.
// Run never fails: one method's problem never aborts the others.
func (r *Runner) Run(ctx context.Context, p *models.BusinessProfile, snap *benchmarks.Snapshot, blocked []string) []models.MethodResult {
	ctx, span := tracer.Start(ctx, "valuation.Run")
	defer span.End()

	blockedSet := make(map[string]bool, len(blocked))
	for _, f := range blocked {
		blockedSet[f] = true
	}

	methods := r.registry.methods
	results := make([]models.MethodResult, len(methods))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range methods {
		if field, ok := firstBlocked(m, blockedSet); ok {
			results[i] = unapplicablef(m.ID(), p, "%s: field %s failed validation", models.ReasonValidationBlocked, field)
			continue
		}
		g.Go(func() error {
			results[i] = r.runOne(gctx, m, p, snap)
			return nil
		})
	}
	_ = g.Wait()

	applicableCount := 0
	for _, res := range results {
		if res.Applicable {
			applicableCount++
		}
	}
	span.SetAttributes(attribute.Int("methods.applicable", applicableCount))
	return results
}

func (r *Runner) runOne(ctx context.Context, m Method, p *models.BusinessProfile, snap *benchmarks.Snapshot) models.MethodResult {
	ctx, span := tracer.Start(ctx, "method."+string(m.ID()))
	defer span.End()

	done := make(chan models.MethodResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Errorf("valuation method %s panicked: %v", m.ID(), rec)
				done <- unapplicablef(m.ID(), p, "internal error: %v", rec)
			}
		}()
		done <- m.Compute(p, snap)
	}()

	timer := time.NewTimer(r.methodTimeout)
	defer timer.Stop()

	var res models.MethodResult
	select {
	case res = <-done:
	case <-timer.C:
		res = unapplicablef(m.ID(), p, "%s: exceeded %s budget", models.ReasonTimeout, r.methodTimeout)
	case <-ctx.Done():
		res = unapplicablef(m.ID(), p, "%s: %v", models.ReasonCanceled, ctx.Err())
	}

	span.SetAttributes(attribute.Bool("applicable", res.Applicable))
	if !res.Applicable {
		span.SetAttributes(attribute.String("failure_reason", res.FailureReason))
	}
	log.Debugf("valuation %s", describe(res))
	return res
}

func firstBlocked(m Method, blocked map[string]bool) (string, bool) {
	if len(blocked) == 0 {
		return "", false
	}
	for _, f := range m.DependsOn() {
		if blocked[f] {
			return f, true
		}
	}
	return "", false
}

// ReasonCode returns the leading code of a failure reason ("timeout",
// "benchmark_unavailable", ...), or the whole reason when it has no code
func ReasonCode(reason string) string {
	for _, code := range []string{models.ReasonBenchmarkUnavailable, models.ReasonTimeout, models.ReasonValidationBlocked, models.ReasonCanceled} {
		if reason == code || len(reason) > len(code) && reason[:len(code)+1] == code+":" {
			return code
		}
	}
	return reason
}

// describe renders a result for debug logs
func describe(res models.MethodResult) string {
	if res.Applicable {
		return fmt.Sprintf("%s=%d %s", res.MethodID, res.Value, res.Currency)
	}
	return UnapplicableError(res).Error()
}
