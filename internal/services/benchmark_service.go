package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/cache"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/repository"
	"github.com/camayank/startupvaluator/internal/taxonomy"
)

var (
	ErrUnknownBenchmarkSource = errors.New("unknown benchmark source")
	ErrInvalidUpload          = errors.New("invalid benchmark upload")
)

// OpenBenchmarkSource resolves a BENCHMARK_SOURCE spec:
// "builtin" (or empty), "file:<path>", "postgres://..." or "sqlite:<path>".
// The returned close func releases any connection the source holds.
func OpenBenchmarkSource(ctx context.Context, spec string, tax *taxonomy.Table) (benchmarks.Source, func(), error) {
	noop := func() {}
	switch {
	case spec == "" || spec == "builtin":
		return benchmarks.BuiltinSource{Taxonomy: tax}, noop, nil
	case strings.HasPrefix(spec, "file:"):
		return benchmarks.FileSource{Path: strings.TrimPrefix(spec, "file:")}, noop, nil
	case strings.HasPrefix(spec, "postgres://"), strings.HasPrefix(spec, "postgresql://"):
		pool, err := pgxpool.New(ctx, spec)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to benchmark database: %w", err)
		}
		return repository.NewBenchmarkRepository(pool), pool.Close, nil
	case strings.HasPrefix(spec, "sqlite:"):
		repo, err := repository.OpenSQLiteBenchmarkRepository(strings.TrimPrefix(spec, "sqlite:"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Warnf("failed to close benchmark database: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBenchmarkSource, spec)
}

// BenchmarkService owns the benchmark store and its configured source
type BenchmarkService struct {
	store       *benchmarks.Store
	source      benchmarks.Source
	taxonomy    *taxonomy.Table
	reportCache *cache.ReportCache
}

// NewBenchmarkService creates a new BenchmarkService
func NewBenchmarkService(store *benchmarks.Store, source benchmarks.Source, tax *taxonomy.Table, reportCache *cache.ReportCache) *BenchmarkService {
	return &BenchmarkService{
		store:       store,
		source:      source,
		taxonomy:    tax,
		reportCache: reportCache,
	}
}

// Store returns the underlying benchmark store
func (s *BenchmarkService) Store() *benchmarks.Store {
	return s.store
}

// Lookup returns the benchmark row for a key from the current snapshot
func (s *BenchmarkService) Lookup(ctx context.Context, q models.BenchmarkQuery) (models.BenchmarkMatch, error) {
	snap := s.store.Snapshot()
	if snap == nil {
		return models.BenchmarkMatch{}, benchmarks.ErrBenchmarkMissing
	}
	return snap.Lookup(q.Sector, q.Industry, q.Region)
}

// Taxonomy returns the normalized taxonomy rows
func (s *BenchmarkService) Taxonomy() []models.TaxonomyRow {
	return s.taxonomy.Rows()
}

// Reload re-reads the configured source and swaps the snapshot
func (s *BenchmarkService) Reload(ctx context.Context) (*models.BenchmarkLoadResponse, error) {
	defer TrackTime("Reload", time.Now())
	return s.load(ctx, s.source)
}

// UploadCSV loads a snapshot from an uploaded CSV document
func (s *BenchmarkService) UploadCSV(ctx context.Context, name string, r io.Reader) (*models.BenchmarkLoadResponse, error) {
	defer TrackTime("UploadCSV", time.Now())
	rows, err := benchmarks.ParseBenchmarksCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	resp, err := s.load(ctx, benchmarks.RowsSource{Label: "upload:" + name, Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	return resp, nil
}

// Watch hot-reloads file sources until ctx is done; other sources are ignored
func (s *BenchmarkService) Watch(ctx context.Context) error {
	fs, ok := s.source.(benchmarks.FileSource)
	if !ok {
		return nil
	}
	return benchmarks.Watch(ctx, s.store, fs)
}

func (s *BenchmarkService) load(ctx context.Context, src benchmarks.Source) (*models.BenchmarkLoadResponse, error) {
	snap, err := s.store.Load(ctx, src)
	if err != nil {
		log.Errorf("benchmark reload failed, keeping current snapshot: %v", err)
		return nil, err
	}
	if s.reportCache != nil {
		s.reportCache.Clear()
	}
	log.Infof("loaded %d benchmark rows from %s (version %s)", snap.Len(), snap.Source, snap.Version)
	return &models.BenchmarkLoadResponse{
		Source:  snap.Source,
		Version: snap.Version,
		Rows:    snap.Len(),
	}, nil
}
