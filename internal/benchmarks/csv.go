package benchmarks

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/camayank/startupvaluator/internal/models"
)

// ParseBenchmarksCSV parses a benchmark import CSV.
// Required columns: sector, region, revenue_multiple
// Optional columns: industry, growth_rate, margin, competitor_density,
// avg_pre_money_valuation (missing numeric columns default to 0, a missing
// industry makes the row sector-wide). Rows with an empty sector are skipped.
func ParseBenchmarksCSV(r io.Reader) ([]models.Benchmark, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"sector", "region", "revenue_multiple"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	col := func(record []string, name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []models.Benchmark
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		sector := col(record, "sector")
		if sector == "" {
			continue
		}

		b := models.Benchmark{
			Sector:   sector,
			Industry: col(record, "industry"),
			Region:   col(record, "region"),
		}
		floats := []struct {
			name string
			dst  *float64
		}{
			{"revenue_multiple", &b.RevenueMultiple},
			{"growth_rate", &b.GrowthRate},
			{"margin", &b.Margin},
			{"competitor_density", &b.CompetitorDensity},
		}
		for _, f := range floats {
			raw := col(record, f.name)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s %q: %w", rowNum, f.name, raw, err)
			}
			*f.dst = v
		}
		if raw := col(record, "avg_pre_money_valuation"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid avg_pre_money_valuation %q: %w", rowNum, raw, err)
			}
			b.AvgPreMoneyValuation = v
		}

		rows = append(rows, b)
	}

	return rows, nil
}
