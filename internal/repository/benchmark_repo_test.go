package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camayank/startupvaluator/internal/models"
)

// TestBenchmarkRepositoryRoundTrip needs a database with create_tables.sql applied
func TestBenchmarkRepositoryRoundTrip(t *testing.T) {
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL environment variable not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := NewBenchmarkRepository(pool)
	row := models.Benchmark{
		Sector: "test_sector", Industry: "test_industry", Region: "test_region",
		GrowthRate: 0.25, Margin: 0.1, RevenueMultiple: 3.5, CompetitorDensity: 0.4,
		AvgPreMoneyValuation: 123_456_700,
	}
	if err := repo.Upsert(ctx, []models.Benchmark{row}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	defer pool.Exec(context.Background(), `DELETE FROM dim_benchmark WHERE sector = 'test_sector'`)

	rows, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	found := false
	for _, r := range rows {
		if r == row {
			found = true
		}
	}
	if !found {
		t.Errorf("upserted row %+v not returned by Load", row)
	}
}
