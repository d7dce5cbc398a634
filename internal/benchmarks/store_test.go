package benchmarks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/camayank/startupvaluator/internal/models"
)

func builtinSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	st := NewStore(nil)
	snap, err := st.Load(context.Background(), BuiltinSource{})
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	return snap
}

func TestLookupExactAndFallback(t *testing.T) {
	snap := builtinSnapshot(t)

	exact, err := snap.Lookup("technology", "saas", "north_america")
	if err != nil {
		t.Fatalf("exact lookup: %v", err)
	}
	if exact.Fallback {
		t.Errorf("exact lookup reported fallback")
	}
	if exact.RevenueMultiple != 6.0 {
		t.Errorf("saas multiple = %v, want 6.0", exact.RevenueMultiple)
	}

	fb, err := snap.Lookup("technology", "quantum", "north_america")
	if err != nil {
		t.Fatalf("fallback lookup: %v", err)
	}
	if !fb.Fallback {
		t.Errorf("expected fallback for unknown industry")
	}
	if fb.Industry != SectorWide {
		t.Errorf("fallback industry = %q, want %q", fb.Industry, SectorWide)
	}

	_, err = snap.Lookup("technology", "saas", "antarctica")
	if !errors.Is(err, ErrBenchmarkMissing) {
		t.Errorf("unknown region: got %v, want ErrBenchmarkMissing", err)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	snap := builtinSnapshot(t)
	a, err := snap.Lookup(" Technology", "SaaS", "Europe")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	b, _ := snap.Lookup("technology", "saas", "europe")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("lookup mismatch (-mixed +lower):\n%s", diff)
	}
}

func TestSnapshotVersionIsContentHash(t *testing.T) {
	a := builtinSnapshot(t)
	b := builtinSnapshot(t)
	if a.Version != b.Version {
		t.Errorf("same data gave versions %s and %s", a.Version, b.Version)
	}

	rows := a.Rows()
	rows[0].RevenueMultiple += 1
	c, err := NewSnapshot("edited", rows)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	if c.Version == a.Version {
		t.Errorf("edited data kept version %s", a.Version)
	}
}

func TestLoadFailureKeepsPreviousSnapshot(t *testing.T) {
	st := NewStore(nil)
	first, err := st.Load(context.Background(), BuiltinSource{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bad := RowsSource{Label: "bad", Rows: []models.Benchmark{{Sector: "technology", Region: "europe", RevenueMultiple: -1}}}
	if _, err := st.Load(context.Background(), bad); !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("expected ErrInvalidRow, got %v", err)
	}
	if st.Snapshot() != first {
		t.Errorf("failed load replaced the snapshot")
	}
	if _, err := st.Load(context.Background(), RowsSource{Label: "empty"}); !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestReadersKeepTheirSnapshotDuringRefresh(t *testing.T) {
	st := NewStore(nil)
	if _, err := st.Load(context.Background(), BuiltinSource{}); err != nil {
		t.Fatal(err)
	}
	held := st.Snapshot()
	before, _ := held.Lookup("technology", "saas", "north_america")

	replacement := RowsSource{Label: "new", Rows: []models.Benchmark{
		{Sector: "technology", Industry: "saas", Region: "north_america", RevenueMultiple: 99},
	}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := held.Lookup("technology", "saas", "north_america")
			if err != nil || got.RevenueMultiple != before.RevenueMultiple {
				t.Errorf("held snapshot changed: %+v %v", got, err)
			}
			_ = st.Snapshot()
		}()
	}
	if _, err := st.Load(context.Background(), replacement); err != nil {
		t.Fatal(err)
	}
	wg.Wait()

	now, _ := st.Snapshot().Lookup("technology", "saas", "north_america")
	if now.RevenueMultiple != 99 {
		t.Errorf("new snapshot multiple = %v, want 99", now.RevenueMultiple)
	}
}

func TestParseBenchmarksCSV(t *testing.T) {
	in := `Sector,Industry,Region,Revenue_Multiple,growth_rate,avg_pre_money_valuation
technology,saas,europe,5.5,0.3,450000000
,skipped,europe,1,0,0
technology,,europe,4,,
`
	rows, err := ParseBenchmarksCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []models.Benchmark{
		{Sector: "technology", Industry: "saas", Region: "europe", RevenueMultiple: 5.5, GrowthRate: 0.3, AvgPreMoneyValuation: 450000000},
		{Sector: "technology", Region: "europe", RevenueMultiple: 4},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBenchmarksCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing column", "sector,industry\ntechnology,saas\n", "missing required column: region"},
		{"bad number", "sector,region,revenue_multiple\ntechnology,europe,abc\n", "row 2: invalid revenue_multiple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBenchmarksCSV(strings.NewReader(tt.in))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestFileSourceYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	doc := `benchmarks:
  - sector: technology
    industry: saas
    region: europe
    revenue_multiple: 5
    growth_rate: 0.3
  - sector: technology
    region: europe
    revenue_multiple: 4
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	st := NewStore(nil)
	snap, err := st.Load(context.Background(), FileSource{Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Len() != 2 {
		t.Errorf("rows = %d, want 2", snap.Len())
	}
	m, err := snap.Lookup("technology", "fintech", "europe")
	if err != nil || !m.Fallback || m.RevenueMultiple != 4 {
		t.Errorf("fallback lookup = %+v, %v", m, err)
	}
}

func TestRegionMultiplier(t *testing.T) {
	if m, ok := RegionMultiplier("Europe"); !ok || m != 0.9 {
		t.Errorf("europe = %v %v", m, ok)
	}
	if m, ok := RegionMultiplier("antarctica"); ok || m != 0.8 {
		t.Errorf("unknown = %v %v", m, ok)
	}
}
