package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/camayank/startupvaluator/internal/models"
)

// ReportCache provides an in-memory cache of computed valuation reports keyed
// by profile fingerprint and benchmark version
type ReportCache struct {
	reports map[string]reportEntry
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

type reportEntry struct {
	report    models.ValuationReport
	fetchedAt time.Time
}

// NewReportCache creates a new in-memory cache; a zero ttl disables caching
func NewReportCache(ttl time.Duration) *ReportCache {
	return &ReportCache{
		reports: make(map[string]reportEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Fingerprint hashes the canonical JSON form of a profile. Profiles that differ
// in any field get different fingerprints.
func Fingerprint(p *models.BusinessProfile, asOf *models.FlexibleDate) string {
	payload := struct {
		Profile *models.BusinessProfile `json:"profile"`
		AsOf    *models.FlexibleDate    `json:"as_of"`
	}{p, asOf}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func reportCacheKey(fingerprint, benchmarkVersion, rulesVersion string) string {
	return fingerprint + "|" + benchmarkVersion + "|" + rulesVersion
}

// Get retrieves a deep copy of a cached report if fresh
func (c *ReportCache) Get(fingerprint, benchmarkVersion, rulesVersion string) (models.ValuationReport, bool) {
	if c == nil || c.ttl <= 0 || fingerprint == "" {
		return models.ValuationReport{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.reports[reportCacheKey(fingerprint, benchmarkVersion, rulesVersion)]
	if !exists {
		return models.ValuationReport{}, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return models.ValuationReport{}, false
	}
	return entry.report.Clone(), true
}

// Set caches a deep copy of a report
func (c *ReportCache) Set(fingerprint, benchmarkVersion, rulesVersion string, report models.ValuationReport) {
	if c == nil || c.ttl <= 0 || fingerprint == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reports[reportCacheKey(fingerprint, benchmarkVersion, rulesVersion)] = reportEntry{
		report:    report.Clone(),
		fetchedAt: c.now(),
	}
}

// Purge drops expired entries and returns how many were removed
func (c *ReportCache) Purge() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.reports {
		if c.now().Sub(e.fetchedAt) > c.ttl {
			delete(c.reports, k)
			removed++
		}
	}
	return removed
}

// Clear drops every entry, e.g. after a benchmark reload
func (c *ReportCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = make(map[string]reportEntry)
}
