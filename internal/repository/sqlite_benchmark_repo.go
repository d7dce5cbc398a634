package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/camayank/startupvaluator/internal/models"
)

const sqliteBenchmarkSchema = `
CREATE TABLE IF NOT EXISTS benchmarks (
	sector                  TEXT NOT NULL,
	industry                TEXT NOT NULL DEFAULT '*',
	region                  TEXT NOT NULL,
	growth_rate             REAL NOT NULL DEFAULT 0,
	margin                  REAL NOT NULL DEFAULT 0,
	revenue_multiple        REAL NOT NULL DEFAULT 0,
	competitor_density      REAL NOT NULL DEFAULT 0,
	avg_pre_money_valuation INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (sector, industry, region)
);
`

// SQLiteBenchmarkRepository keeps benchmarks in a local SQLite file, for
// single-node deployments and the CLI
type SQLiteBenchmarkRepository struct {
	db   *sqlx.DB
	path string
}

// OpenSQLiteBenchmarkRepository opens (creating if needed) the database at path
func OpenSQLiteBenchmarkRepository(path string) (*SQLiteBenchmarkRepository, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteBenchmarkSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create benchmark schema: %w", err)
	}
	return &SQLiteBenchmarkRepository{db: db, path: path}, nil
}

// Close releases the database handle
func (r *SQLiteBenchmarkRepository) Close() error {
	return r.db.Close()
}

// Name identifies the source in logs and load responses
func (r *SQLiteBenchmarkRepository) Name() string {
	return "sqlite:" + r.path
}

// Load returns every benchmark row
func (r *SQLiteBenchmarkRepository) Load(ctx context.Context) ([]models.Benchmark, error) {
	var out []models.Benchmark
	err := r.db.SelectContext(ctx, &out, `
		SELECT sector, industry, region, growth_rate, margin, revenue_multiple,
		       competitor_density, avg_pre_money_valuation
		FROM benchmarks
		ORDER BY sector, industry, region`)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks: %w", err)
	}
	return out, nil
}

// Import replaces the whole table with rows in a single transaction
func (r *SQLiteBenchmarkRepository) Import(ctx context.Context, rows []models.Benchmark) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM benchmarks`); err != nil {
		return fmt.Errorf("failed to clear benchmarks: %w", err)
	}
	for _, b := range rows {
		if b.Industry == "" {
			b.Industry = "*"
		}
		_, err := tx.NamedExecContext(ctx, `
			INSERT OR REPLACE INTO benchmarks (sector, industry, region, growth_rate, margin,
				revenue_multiple, competitor_density, avg_pre_money_valuation)
			VALUES (:sector, :industry, :region, :growth_rate, :margin,
				:revenue_multiple, :competitor_density, :avg_pre_money_valuation)`, b)
		if err != nil {
			return fmt.Errorf("failed to insert benchmark %s/%s/%s: %w", b.Sector, b.Industry, b.Region, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
