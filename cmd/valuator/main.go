// Command valuator runs the valuation engine from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/cache"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/services"
	"github.com/camayank/startupvaluator/internal/taxonomy"
	"github.com/camayank/startupvaluator/internal/validation"
	"github.com/camayank/startupvaluator/internal/valuation"
)

var (
	benchmarkSource string
	verbose         bool
	timeout         time.Duration
	methodTimeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "valuator",
	Short:         "Startup valuation engine",
	Long:          `Validates business profiles, runs valuation methods and blends them into a single report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&benchmarkSource, "benchmarks", "builtin", "Benchmark source: builtin, file:<path>, sqlite:<path> or a postgres:// URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Second, "Compute budget")
	rootCmd.PersistentFlags().DurationVar(&methodTimeout, "method-timeout", valuation.DefaultMethodTimeout, "Per-method budget")

	benchmarksListCmd.Flags().StringVar(&listSector, "sector", "", "Only list rows of this sector")
	benchmarksImportCmd.Flags().StringVar(&importDB, "db", "benchmarks.db", "SQLite path or postgres:// URL to import into")

	benchmarksCmd.AddCommand(benchmarksListCmd)
	benchmarksCmd.AddCommand(benchmarksImportCmd)

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(benchmarksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// engine bundles the services a command needs
type engine struct {
	valuation  *services.ValuationService
	benchmarks *services.BenchmarkService
	close      func()
}

func newEngine(ctx context.Context) (*engine, error) {
	tax := taxonomy.Default()
	source, closeSource, err := services.OpenBenchmarkSource(ctx, benchmarkSource, tax)
	if err != nil {
		return nil, err
	}
	store := benchmarks.NewStore(nil)
	benchmarkSvc := services.NewBenchmarkService(store, source, tax, nil)
	if _, err := benchmarkSvc.Reload(ctx); err != nil {
		closeSource()
		return nil, err
	}

	resolver := validation.NewResolver(validation.DefaultTable(tax), tax)
	runner := valuation.NewRunner(valuation.DefaultRegistry(), methodTimeout)
	valuationSvc := services.NewValuationService(store, resolver, runner, cache.NewReportCache(0), nil, services.ValuationOptions{
		ComputeTimeout: timeout,
	})
	return &engine{valuation: valuationSvc, benchmarks: benchmarkSvc, close: closeSource}, nil
}

// readProfile decodes a profile from a .json, .yaml or .yml file
func readProfile(path string) (*models.BusinessProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p models.BusinessProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, err)
	}
	return &p, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
