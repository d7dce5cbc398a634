package repository

import (
	"context"
	"fmt"

	"github.com/camayank/startupvaluator/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BenchmarkRepository reads and writes the dim_benchmark table in Postgres.
// It satisfies benchmarks.Source so a snapshot can be built straight from the database.
type BenchmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBenchmarkRepository creates a new BenchmarkRepository
func NewBenchmarkRepository(pool *pgxpool.Pool) *BenchmarkRepository {
	return &BenchmarkRepository{pool: pool}
}

// Name identifies the source in logs and load responses
func (r *BenchmarkRepository) Name() string {
	return "postgres:dim_benchmark"
}

// Load returns every benchmark row
func (r *BenchmarkRepository) Load(ctx context.Context) ([]models.Benchmark, error) {
	query := `
		SELECT sector, industry, region, growth_rate, margin, revenue_multiple,
		       competitor_density, avg_pre_money_valuation
		FROM dim_benchmark
		ORDER BY sector, industry, region
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks: %w", err)
	}
	defer rows.Close()

	var out []models.Benchmark
	for rows.Next() {
		var b models.Benchmark
		if err := rows.Scan(&b.Sector, &b.Industry, &b.Region, &b.GrowthRate, &b.Margin,
			&b.RevenueMultiple, &b.CompetitorDensity, &b.AvgPreMoneyValuation); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Upsert stores benchmark rows, replacing existing rows with the same key
func (r *BenchmarkRepository) Upsert(ctx context.Context, benchmarks []models.Benchmark) error {
	if len(benchmarks) == 0 {
		return nil
	}

	query := `
		INSERT INTO dim_benchmark (sector, industry, region, growth_rate, margin, revenue_multiple,
		                           competitor_density, avg_pre_money_valuation, updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (sector, industry, region) DO UPDATE
		SET growth_rate = EXCLUDED.growth_rate, margin = EXCLUDED.margin,
		    revenue_multiple = EXCLUDED.revenue_multiple,
		    competitor_density = EXCLUDED.competitor_density,
		    avg_pre_money_valuation = EXCLUDED.avg_pre_money_valuation,
		    updated = NOW()
	`

	batch := &pgx.Batch{}
	for _, b := range benchmarks {
		industry := b.Industry
		if industry == "" {
			industry = "*"
		}
		batch.Queue(query, b.Sector, industry, b.Region, b.GrowthRate, b.Margin,
			b.RevenueMultiple, b.CompetitorDensity, b.AvgPreMoneyValuation)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range benchmarks {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert benchmark: %w", err)
		}
	}
	return nil
}
