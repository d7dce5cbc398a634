// Package taxonomy holds the sector/segment/sub-segment classification as one
// flat table keyed by (sector, segment, subSegment), with indexes for forward
// and reverse lookup.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/camayank/startupvaluator/internal/models"
)

// Key identifies one classification row
type Key struct {
	Sector     string
	Segment    string
	SubSegment string
}

// Table is an immutable normalized taxonomy
type Table struct {
	rows         []Key
	segments     map[string][]string // sector -> segments
	subSegments  map[string][]string // sector/segment -> sub-segments
	sectorOf     map[string]string   // segment -> sector
	bySubSegment map[string][]Key    // sub-segment -> rows
}

// New builds a table from rows; duplicate rows are dropped
func New(rows []Key) *Table {
	t := &Table{
		segments:     make(map[string][]string),
		subSegments:  make(map[string][]string),
		sectorOf:     make(map[string]string),
		bySubSegment: make(map[string][]Key),
	}
	seen := make(map[Key]bool)
	for _, r := range rows {
		r = Key{Sector: norm(r.Sector), Segment: norm(r.Segment), SubSegment: norm(r.SubSegment)}
		if seen[r] {
			continue
		}
		seen[r] = true
		t.rows = append(t.rows, r)
	}
	sort.Slice(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		if a.Sector != b.Sector {
			return a.Sector < b.Sector
		}
		if a.Segment != b.Segment {
			return a.Segment < b.Segment
		}
		return a.SubSegment < b.SubSegment
	})

	for _, r := range t.rows {
		if !contains(t.segments[r.Sector], r.Segment) {
			t.segments[r.Sector] = append(t.segments[r.Sector], r.Segment)
		}
		t.sectorOf[r.Segment] = r.Sector
		sk := r.Sector + "/" + r.Segment
		if r.SubSegment != "" {
			t.subSegments[sk] = append(t.subSegments[sk], r.SubSegment)
			t.bySubSegment[r.SubSegment] = append(t.bySubSegment[r.SubSegment], r)
		}
	}
	return t
}

// Sectors returns every sector in sorted order
func (t *Table) Sectors() []string {
	out := make([]string, 0, len(t.segments))
	for s := range t.segments {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Segments returns the segments (industries) of a sector
func (t *Table) Segments(sector string) []string {
	return t.segments[norm(sector)]
}

// SubSegments returns the sub-segments of a sector/segment pair
func (t *Table) SubSegments(sector, segment string) []string {
	return t.subSegments[norm(sector)+"/"+norm(segment)]
}

// SectorOf is the reverse lookup from a segment to its sector
func (t *Table) SectorOf(segment string) (string, bool) {
	s, ok := t.sectorOf[norm(segment)]
	return s, ok
}

// FindSubSegment returns every row carrying the given sub-segment
func (t *Table) FindSubSegment(subSegment string) []Key {
	return t.bySubSegment[norm(subSegment)]
}

// Contains reports whether the exact row exists. An empty sub-segment matches
// any row for the sector/segment pair.
func (t *Table) Contains(k Key) bool {
	if k.SubSegment == "" {
		return contains(t.segments[norm(k.Sector)], norm(k.Segment))
	}
	return contains(t.SubSegments(k.Sector, k.Segment), norm(k.SubSegment))
}

// Rows returns the table as API rows
func (t *Table) Rows() []models.TaxonomyRow {
	out := make([]models.TaxonomyRow, len(t.rows))
	for i, r := range t.rows {
		out[i] = models.TaxonomyRow{Sector: r.Sector, Segment: r.Segment, SubSegment: r.SubSegment}
	}
	return out
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
