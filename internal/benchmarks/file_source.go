package benchmarks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/camayank/startupvaluator/internal/models"
)

// benchmarkFile is the on-disk YAML layout
type benchmarkFile struct {
	Benchmarks []models.Benchmark `yaml:"benchmarks"`
}

// FileSource loads benchmarks from a YAML or CSV file chosen by extension
type FileSource struct {
	Path string
}

func (f FileSource) Name() string {
	return "file:" + f.Path
}

func (f FileSource) Load(ctx context.Context) ([]models.Benchmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".csv":
		return ParseBenchmarksCSV(bytes.NewReader(data))
	case ".yaml", ".yml":
		return ParseBenchmarksYAML(data)
	default:
		return nil, fmt.Errorf("unsupported benchmark file type: %s", f.Path)
	}
}

// ParseBenchmarksYAML decodes a document of the form {benchmarks: [...]}
func ParseBenchmarksYAML(data []byte) ([]models.Benchmark, error) {
	var doc benchmarkFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark yaml: %w", err)
	}
	return doc.Benchmarks, nil
}

// RowsSource serves rows already held in memory, e.g. an uploaded CSV
type RowsSource struct {
	Label string
	Rows  []models.Benchmark
}

func (r RowsSource) Name() string {
	return r.Label
}

func (r RowsSource) Load(ctx context.Context) ([]models.Benchmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Benchmark, len(r.Rows))
	copy(out, r.Rows)
	return out, nil
}
