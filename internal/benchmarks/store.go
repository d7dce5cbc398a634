// Package benchmarks is the read-only industry baseline store. Readers take an
// immutable Snapshot; a refresh builds a new snapshot and swaps it in, so a
// computation in flight never sees a half-loaded table.
package benchmarks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/camayank/startupvaluator/internal/models"
)

// SectorWide is the industry value of a row that applies to a whole sector
const SectorWide = "*"

var (
	ErrBenchmarkMissing = errors.New("benchmark unavailable")
	ErrEmptySource      = errors.New("benchmark source returned no rows")
	ErrInvalidRow       = errors.New("invalid benchmark row")
)

// Source supplies benchmark rows for a refresh
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Benchmark, error)
}

type key struct {
	sector, industry, region string
}

// Snapshot is one loaded, immutable benchmark table
type Snapshot struct {
	Version  string
	Source   string
	LoadedAt time.Time
	rows     map[key]models.Benchmark
	ordered  []models.Benchmark
}

// NewSnapshot validates rows and indexes them. The version is a content hash,
// so loading identical data twice yields the same version.
func NewSnapshot(source string, rows []models.Benchmark) (*Snapshot, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}
	s := &Snapshot{
		Source:   source,
		LoadedAt: time.Now().UTC(),
		rows:     make(map[key]models.Benchmark, len(rows)),
	}
	for i, r := range rows {
		r.Sector = norm(r.Sector)
		r.Industry = norm(r.Industry)
		r.Region = norm(r.Region)
		if r.Industry == "" {
			r.Industry = SectorWide
		}
		if err := checkRow(r); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		s.rows[key{r.Sector, r.Industry, r.Region}] = r
	}
	for _, r := range s.rows {
		s.ordered = append(s.ordered, r)
	}
	sort.Slice(s.ordered, func(i, j int) bool {
		a, b := s.ordered[i], s.ordered[j]
		if a.Sector != b.Sector {
			return a.Sector < b.Sector
		}
		if a.Industry != b.Industry {
			return a.Industry < b.Industry
		}
		return a.Region < b.Region
	})

	canonical, err := json.Marshal(s.ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to hash benchmark rows: %w", err)
	}
	sum := sha256.Sum256(canonical)
	s.Version = hex.EncodeToString(sum[:6])
	return s, nil
}

func checkRow(r models.Benchmark) error {
	switch {
	case r.Sector == "" || r.Region == "":
		return fmt.Errorf("%w: sector and region are required", ErrInvalidRow)
	case r.RevenueMultiple < 0:
		return fmt.Errorf("%w: negative revenue multiple for %s/%s/%s", ErrInvalidRow, r.Sector, r.Industry, r.Region)
	case r.CompetitorDensity < 0 || r.CompetitorDensity > 1:
		return fmt.Errorf("%w: competitor density must be in [0,1] for %s/%s/%s", ErrInvalidRow, r.Sector, r.Industry, r.Region)
	case r.AvgPreMoneyValuation < 0:
		return fmt.Errorf("%w: negative average valuation for %s/%s/%s", ErrInvalidRow, r.Sector, r.Industry, r.Region)
	}
	return nil
}

// Lookup finds the baseline for a profile key. An exact industry row wins;
// otherwise the sector-wide row for the same region is used. Regions never
// fall back to one another.
func (s *Snapshot) Lookup(sector, industry, region string) (models.BenchmarkMatch, error) {
	sector, industry, region = norm(sector), norm(industry), norm(region)
	if industry != "" {
		if b, ok := s.rows[key{sector, industry, region}]; ok {
			return models.BenchmarkMatch{Benchmark: b, MatchedKey: sector + "/" + industry + "/" + region}, nil
		}
	}
	if b, ok := s.rows[key{sector, SectorWide, region}]; ok {
		return models.BenchmarkMatch{
			Benchmark:  b,
			MatchedKey: sector + "/" + SectorWide + "/" + region,
			Fallback:   industry != "",
		}, nil
	}
	return models.BenchmarkMatch{}, fmt.Errorf("%w: %s/%s/%s", ErrBenchmarkMissing, sector, industry, region)
}

// Rows returns all rows in key order
func (s *Snapshot) Rows() []models.Benchmark {
	out := make([]models.Benchmark, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the number of rows
func (s *Snapshot) Len() int {
	return len(s.ordered)
}

// Store holds the currently loaded snapshot and is safe for concurrent use
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a store seeded with an initial snapshot
func NewStore(initial *Snapshot) *Store {
	return &Store{snap: initial}
}

// Snapshot returns the current snapshot; callers keep it for a whole computation
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap
}

// Load reads every row from src and atomically replaces the current snapshot.
// On failure the previous snapshot stays in place.
func (st *Store) Load(ctx context.Context, src Source) (*Snapshot, error) {
	rows, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmarks from %s: %w", src.Name(), err)
	}
	snap, err := NewSnapshot(src.Name(), rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build benchmark snapshot from %s: %w", src.Name(), err)
	}

	st.mu.Lock()
	st.snap = snap
	st.mu.Unlock()
	return snap, nil
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
