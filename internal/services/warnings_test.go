package services

import (
	"context"
	"sync"
	"testing"

	"github.com/camayank/startupvaluator/internal/models"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	AddWarning(ctx, models.Warning{Code: models.WarnBenchmarkFallback, Message: "test warning 1"})
	AddWarningf(ctx, models.WarnMethodTimeout, "method %s timed out", "dcf")

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Code != models.WarnBenchmarkFallback {
		t.Errorf("expected code %s, got %s", models.WarnBenchmarkFallback, warnings[0].Code)
	}
	if warnings[1].Message != "method dcf timed out" {
		t.Errorf("unexpected message %q", warnings[1].Message)
	}
}

func TestWarningCollector_Deduplicates(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())
	for i := 0; i < 3; i++ {
		AddWarning(ctx, models.Warning{Code: models.WarnBenchmarkFallback, Message: "same"})
	}
	if n := len(wc.GetWarnings()); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	AddWarning(context.Background(), models.Warning{Code: models.WarnAdvisoryFailed, Message: "dropped"})
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			AddWarningf(ctx, models.WarnMethodTimeout, "warning %d", i)
		}(i)
	}
	wg.Wait()

	if got := len(wc.GetWarnings()); got != n {
		t.Errorf("expected %d warnings, got %d", n, got)
	}
}
