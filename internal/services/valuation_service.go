package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/camayank/startupvaluator/internal/advisory"
	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/blend"
	"github.com/camayank/startupvaluator/internal/cache"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/readiness"
	"github.com/camayank/startupvaluator/internal/risk"
	"github.com/camayank/startupvaluator/internal/validation"
	"github.com/camayank/startupvaluator/internal/valuation"
)

// Default budgets for one computation
const (
	DefaultComputeTimeout  = 300 * time.Millisecond
	DefaultAdvisoryTimeout = 2 * time.Second
)

var tracer = otel.Tracer("github.com/camayank/startupvaluator/internal/services")

// ValuationOptions tunes the time budgets of a ValuationService
type ValuationOptions struct {
	ComputeTimeout  time.Duration
	AdvisoryTimeout time.Duration
}

// ValuationService orchestrates validation, the method runner, blending and
// readiness scoring into one report
type ValuationService struct {
	store       *benchmarks.Store
	resolver    *validation.Resolver
	runner      *valuation.Runner
	reportCache *cache.ReportCache
	advisor     advisory.Advisor
	opts        ValuationOptions
}

// NewValuationService creates a new ValuationService. reportCache and advisor may be nil.
func NewValuationService(
	store *benchmarks.Store,
	resolver *validation.Resolver,
	runner *valuation.Runner,
	reportCache *cache.ReportCache,
	advisor advisory.Advisor,
	opts ValuationOptions,
) *ValuationService {
	if opts.ComputeTimeout <= 0 {
		opts.ComputeTimeout = DefaultComputeTimeout
	}
	if opts.AdvisoryTimeout <= 0 {
		opts.AdvisoryTimeout = DefaultAdvisoryTimeout
	}
	return &ValuationService{
		store:       store,
		resolver:    resolver,
		runner:      runner,
		reportCache: reportCache,
		advisor:     advisor,
		opts:        opts,
	}
}

// Validate resolves findings and per-field requirement levels for a profile
func (s *ValuationService) Validate(ctx context.Context, p *models.BusinessProfile) (*models.ValidationResponse, error) {
	defer TrackTime("Validate", time.Now())
	if err := p.Check(); err != nil {
		return nil, err
	}
	findings := s.resolver.Resolve(p)
	return &models.ValidationResponse{
		Findings:     findings,
		Requirements: s.resolver.Requirements(p),
		Blocking:     len(validation.BlockedFields(findings)) > 0,
	}, nil
}

// Readiness scores a profile against the current benchmark snapshot
func (s *ValuationService) Readiness(ctx context.Context, p *models.BusinessProfile) (*models.ReadinessScore, error) {
	defer TrackTime("Readiness", time.Now())
	if err := p.Check(); err != nil {
		return nil, err
	}
	score := readiness.Assess(p, s.store.Snapshot())
	return &score, nil
}

// Compute produces the full valuation report for a profile. The advisor is
// never consulted here; see Advise.
// A malformed profile returns models.ErrMalformedProfile and no report.
// When no method is applicable the report is still returned, without a blend,
// together with an error wrapping blend.ErrNoApplicableMethod.
func (s *ValuationService) Compute(ctx context.Context, p *models.BusinessProfile, asOf *models.FlexibleDate) (*models.ValuationReport, error) {
	defer TrackTime("Compute", time.Now())
	ctx, span := tracer.Start(ctx, "ValuationService.Compute")
	defer span.End()

	if err := p.Check(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	profile := p.Clone()
	span.SetAttributes(
		attribute.String("profile.sector", profile.Sector),
		attribute.String("profile.stage", string(profile.Stage)),
		attribute.String("profile.region", profile.Region),
	)

	snap := s.store.Snapshot()
	benchmarkVersion := ""
	if snap != nil {
		benchmarkVersion = snap.Version
	}
	fingerprint := cache.Fingerprint(&profile, asOf)
	if s.reportCache != nil {
		if cached, ok := s.reportCache.Get(fingerprint, benchmarkVersion, s.resolver.Version()); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			log.Debugf("report cache hit for %s", fingerprint[:12])
			return &cached, nil
		}
	}

	ctx, wc := NewWarningContext(ctx)

	findings := s.resolver.Resolve(&profile)
	blocked := validation.BlockedFields(findings)
	span.SetAttributes(attribute.Int("validation.blocked_fields", len(blocked)))

	var bench *models.Benchmark
	if snap != nil {
		if m, err := snap.Lookup(profile.Sector, profile.Industry, profile.Region); err == nil {
			bench = &m.Benchmark
		} else if errors.Is(err, benchmarks.ErrBenchmarkMissing) {
			AddWarningf(ctx, models.WarnBenchmarkUnavailable, "No benchmark for sector %q in region %q; benchmark-dependent methods were skipped.", profile.Sector, profile.Region)
		}
	}
	premium := risk.Premium(&profile, bench)

	results, score := s.runParallel(ctx, &profile, snap, blocked)
	collectMethodWarnings(ctx, results)

	report := &models.ValuationReport{
		ID:               uuid.NewString(),
		Currency:         profile.CurrencyCode(),
		AsOf:             asOf,
		BenchmarkVersion: benchmarkVersion,
		Findings:         findings,
		Readiness:        &score,
		Risk:             &premium,
	}

	blended, blendErr := blend.Blend(results, &profile)
	var preMoney int64
	if blendErr == nil {
		report.Blend = blended
		preMoney = blended.Value
	}
	safeResult, conversion := valuation.ConvertSAFEs(&profile, preMoney)
	report.MethodResults = append(results, safeResult)
	report.SAFEConversion = conversion

	report.Warnings = wc.GetWarnings()

	if blendErr != nil {
		span.SetStatus(codes.Error, blendErr.Error())
		if blockErr := validation.BlockingError(findings); blockErr != nil {
			return report, fmt.Errorf("failed to blend valuation: %w (%w)", blendErr, blockErr)
		}
		return report, fmt.Errorf("failed to blend valuation (no method was applicable): %w", blendErr)
	}

	span.SetAttributes(attribute.Int64("blend.value", report.Blend.Value), attribute.Float64("blend.confidence", report.Blend.Confidence))
	if s.reportCache != nil {
		s.reportCache.Set(fingerprint, benchmarkVersion, s.resolver.Version(), *report)
	}
	return report, nil
}

// Advise returns a copy of report augmented with advisory suggestions. The
// numeric fields are never touched. When the advisor fails or exceeds the
// advisory budget the copy is returned unchanged apart from a W3001 warning.
func (s *ValuationService) Advise(ctx context.Context, report *models.ValuationReport) *models.ValuationReport {
	defer TrackTime("Advise", time.Now())
	ctx, span := tracer.Start(ctx, "ValuationService.Advise")
	defer span.End()

	out := report.Clone()
	if err := advisory.Apply(ctx, s.advisor, &out, s.opts.AdvisoryTimeout); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Warnf("advisory skipped for report %s: %v", out.ID, err)
		ctx, wc := NewWarningContext(ctx)
		for _, w := range out.Warnings {
			AddWarning(ctx, w)
		}
		AddWarningf(ctx, models.WarnAdvisoryFailed, "Advisory suggestions are unavailable; numeric results are unaffected.")
		out.Warnings = wc.GetWarnings()
	}
	return &out
}

// runParallel runs the method runner and the readiness scorer side by side
// within the compute budget
func (s *ValuationService) runParallel(ctx context.Context, p *models.BusinessProfile, snap *benchmarks.Snapshot, blocked []string) ([]models.MethodResult, models.ReadinessScore) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ComputeTimeout)
	defer cancel()

	var results []models.MethodResult
	var score models.ReadinessScore
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results = s.runner.Run(gctx, p, snap, blocked)
		return nil
	})
	g.Go(func() error {
		score = readiness.Assess(p, snap)
		return nil
	})
	_ = g.Wait()
	return results, score
}

// collectMethodWarnings turns failure reasons and fallback lookups into coded warnings
func collectMethodWarnings(ctx context.Context, results []models.MethodResult) {
	for _, r := range results {
		if r.Applicable {
			for _, a := range r.Assumptions {
				if a.Key == "benchmark_fallback" && a.Value == "true" {
					AddWarningf(ctx, models.WarnBenchmarkFallback, "No industry-specific benchmark matched; sector-wide averages were used.")
				}
			}
			continue
		}
		switch valuation.ReasonCode(r.FailureReason) {
		case models.ReasonTimeout, models.ReasonCanceled:
			AddWarningf(ctx, models.WarnMethodTimeout, "Method %s did not finish within its time budget and was excluded.", r.MethodID)
		case models.ReasonValidationBlocked:
			AddWarningf(ctx, models.WarnMethodBlocked, "Method %s was skipped: %s.", r.MethodID, r.FailureReason)
		}
	}
}
