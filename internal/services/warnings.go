package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/camayank/startupvaluator/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings during one computation.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
	seen     map[models.Warning]bool
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the caller can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{seen: make(map[models.Warning]bool)}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning appends a warning to the collector in ctx. Identical warnings are
// kept once. If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.seen[w] {
		return
	}
	wc.seen[w] = true
	wc.warnings = append(wc.warnings, w)
}

// AddWarningf formats the message and adds the warning
func AddWarningf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of all collected warnings in insertion order.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
