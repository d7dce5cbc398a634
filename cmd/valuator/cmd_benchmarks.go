package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
	"github.com/camayank/startupvaluator/internal/repository"
)

var (
	listSector string
	importDB   string
)

// benchmarkImporter is a database that can take a batch of benchmark rows
type benchmarkImporter interface {
	Name() string
	Import(ctx context.Context, rows []models.Benchmark) error
}

// postgresImporter upserts into dim_benchmark; rows absent from the file are kept
type postgresImporter struct {
	*repository.BenchmarkRepository
}

func (p postgresImporter) Import(ctx context.Context, rows []models.Benchmark) error {
	return p.Upsert(ctx, rows)
}

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Inspect and import benchmark data",
}

var benchmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List benchmark rows of the configured source",
	Args:  cobra.NoArgs,
	RunE:  runBenchmarksList,
}

var benchmarksImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.yaml>",
	Short: "Import a benchmark file into a database",
	Long: `Loads the rows of a CSV or YAML file into a database. A SQLite --db path
has its table replaced; a postgres:// URL is upserted into dim_benchmark.
Serve them with --benchmarks sqlite:<db> or --benchmarks <postgres url>.`,
	Args: cobra.ExactArgs(1),
	RunE: runBenchmarksImport,
}

func runBenchmarksList(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.close()

	snap := eng.benchmarks.Store().Snapshot()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "# source %s, version %s\n", snap.Source, snap.Version)
	fmt.Fprintln(w, "SECTOR\tINDUSTRY\tREGION\tGROWTH\tMARGIN\tMULTIPLE\tDENSITY\tAVG PRE-MONEY")
	for _, b := range snap.Rows() {
		if listSector != "" && !strings.EqualFold(b.Sector, listSector) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.Sector, b.Industry, b.Region,
			money.FormatFloat(b.GrowthRate), money.FormatFloat(b.Margin),
			money.FormatFloat(b.RevenueMultiple), money.FormatFloat(b.CompetitorDensity),
			money.Format(b.AvgPreMoneyValuation))
	}
	return w.Flush()
}

func runBenchmarksImport(cmd *cobra.Command, args []string) error {
	rows, err := benchmarks.FileSource{Path: args[0]}.Load(cmd.Context())
	if err != nil {
		return err
	}
	// build a snapshot first so invalid rows never reach the database
	snap, err := benchmarks.NewSnapshot(args[0], rows)
	if err != nil {
		return err
	}

	target, closeTarget, err := openImporter(cmd.Context(), importDB)
	if err != nil {
		return err
	}
	defer closeTarget()

	if err := target.Import(cmd.Context(), snap.Rows()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s (version %s)\n", snap.Len(), target.Name(), snap.Version)
	return nil
}

func openImporter(ctx context.Context, db string) (benchmarkImporter, func(), error) {
	if strings.HasPrefix(db, "postgres://") || strings.HasPrefix(db, "postgresql://") {
		pool, err := pgxpool.New(ctx, db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to benchmark database: %w", err)
		}
		return postgresImporter{repository.NewBenchmarkRepository(pool)}, pool.Close, nil
	}
	repo, err := repository.OpenSQLiteBenchmarkRepository(strings.TrimPrefix(db, "sqlite:"))
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { repo.Close() }, nil
}
