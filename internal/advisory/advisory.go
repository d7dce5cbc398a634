// Package advisory asks an optional language-model collaborator for free-text
// suggestions and appends them to a finished report. It never changes numbers.
package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camayank/startupvaluator/internal/models"
)

var ErrEmptyAdvice = errors.New("advisor returned no content")

// maxSuggestionsPerTarget bounds how much text one call can add
const maxSuggestionsPerTarget = 3

// Advice is the structured reply of an advisor. FieldSuggestions is keyed by
// finding field name.
type Advice struct {
	FieldSuggestions map[string][]string `json:"field_suggestions"`
	Recommendations  []string            `json:"recommendations"`
}

// Advisor produces advice for a report; implementations may call the network
type Advisor interface {
	Suggestions(ctx context.Context, report *models.ValuationReport) (Advice, error)
}

// Apply asks the advisor for suggestions within timeout and augments the
// report. It returns once the timeout or ctx expires even if the advisor has
// not. On error the report is left exactly as it was.
func Apply(ctx context.Context, advisor Advisor, report *models.ValuationReport, timeout time.Duration) error {
	if advisor == nil {
		return nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// The advisor reads its own copy so a late reply cannot race the caller
	snapshot := report.Clone()
	done := make(chan reply, 1)
	go func() {
		advice, err := advisor.Suggestions(ctx, &snapshot)
		done <- reply{advice, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("failed to get advisory suggestions: %w", r.err)
		}
		Augment(report, r.advice)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to get advisory suggestions: %w", ctx.Err())
	}
}

type reply struct {
	advice Advice
	err    error
}

// Augment appends advice to the report's finding suggestions and readiness
// recommendations, skipping duplicates and unknown fields
func Augment(report *models.ValuationReport, advice Advice) {
	for i := range report.Findings {
		f := &report.Findings[i]
		extra := advice.FieldSuggestions[f.Field]
		f.Suggestions = appendUnique(f.Suggestions, extra, maxSuggestionsPerTarget)
	}
	if report.Readiness != nil {
		report.Readiness.Recommendations = appendUnique(report.Readiness.Recommendations, advice.Recommendations, maxSuggestionsPerTarget)
	}
}

func appendUnique(dst, extra []string, limit int) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	added := 0
	for _, s := range extra {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] || added >= limit {
			continue
		}
		seen[s] = true
		dst = append(dst, s)
		added++
	}
	return dst
}

// parseAdvice decodes a JSON reply, tolerating markdown code fences
func parseAdvice(raw string) (Advice, error) {
	raw = stripCodeFences(raw)
	if raw == "" {
		return Advice{}, ErrEmptyAdvice
	}
	var a Advice
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return Advice{}, fmt.Errorf("failed to parse advice: %w", err)
	}
	return a, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
