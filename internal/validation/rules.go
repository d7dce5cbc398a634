// Package validation resolves, for one business profile, which fields are
// required, which values are out of range and which combinations look wrong.
// All rules live in a single ValidationRuleTable; Resolve is a pure function.
package validation

import (
	"github.com/camayank/startupvaluator/internal/models"
)

// RuleKind tags the constraint a FieldRule applies
type RuleKind string

const (
	KindRange    RuleKind = "range"    // numeric value within [Min, Max]
	KindEnum     RuleKind = "enum"     // string value within Allowed
	KindPresence RuleKind = "presence" // any non-empty value
)

// Override is a sector- or stage-specific adjustment of a field rule.
// It can raise the requirement level, or attach a non-blocking warning when
// the value falls outside [Min, Max].
type Override struct {
	Match       string
	Required    bool
	Recommended bool
	Min         *float64
	Max         *float64
	Suggested   *float64
	Message     string
	Suggestions []string
}

// FieldRule is the complete rule for one profile field
type FieldRule struct {
	Field       string
	Kind        RuleKind
	Required    bool
	Recommended bool
	Min         *float64
	Max         *float64
	Allowed     []string
	Message     string
	// MaxMessage replaces Message when the value is above Max
	MaxMessage string
	Sector     []Override
	Stage      []Override
	DependsOn  []string
}

// CrossFieldRule inspects several fields at once. Check returns false when the
// rule does not fire.
type CrossFieldRule struct {
	ID       string
	Field    string
	Fields   []string
	Severity models.Severity
	Check    func(p *models.BusinessProfile, env *Env) (msg string, suggestions []string, fired bool)
}

// ValidationRuleTable is the single authoritative set of rules
type ValidationRuleTable struct {
	Version    string
	Fields     []FieldRule
	CrossField []CrossFieldRule
}

// Rule returns the rule for a field
func (t *ValidationRuleTable) Rule(field string) (FieldRule, bool) {
	for _, r := range t.Fields {
		if r.Field == field {
			return r, true
		}
	}
	return FieldRule{}, false
}

// WithOverlay returns a new table in which rules from the overlay replace
// same-named field rules and unknown fields are appended. Cross-field rules
// with a matching ID are replaced the same way. The receiver is unchanged.
func (t *ValidationRuleTable) WithOverlay(version string, fields []FieldRule, cross []CrossFieldRule) *ValidationRuleTable {
	out := &ValidationRuleTable{
		Version:    t.Version + "+" + version,
		Fields:     make([]FieldRule, len(t.Fields)),
		CrossField: make([]CrossFieldRule, len(t.CrossField)),
	}
	copy(out.Fields, t.Fields)
	copy(out.CrossField, t.CrossField)

	for _, f := range fields {
		replaced := false
		for i := range out.Fields {
			if out.Fields[i].Field == f.Field {
				out.Fields[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			out.Fields = append(out.Fields, f)
		}
	}
	for _, c := range cross {
		replaced := false
		for i := range out.CrossField {
			if out.CrossField[i].ID == c.ID {
				out.CrossField[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			out.CrossField = append(out.CrossField, c)
		}
	}
	return out
}

func bound(v float64) *float64 { return &v }
