package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/camayank/startupvaluator/internal/benchmarks"
	"github.com/camayank/startupvaluator/internal/models"
	"github.com/camayank/startupvaluator/internal/money"
	"github.com/camayank/startupvaluator/internal/taxonomy"
)

var ErrValidationBlocking = errors.New("required field missing or invalid")

// ValidationBlockingError lists the fields whose error findings block the
// methods that depend on them
type ValidationBlockingError struct {
	Fields []string
}

func (e *ValidationBlockingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationBlocking, strings.Join(e.Fields, ", "))
}

func (e *ValidationBlockingError) Is(target error) bool {
	return target == ErrValidationBlocking
}

// Env is the read-only reference data cross-field rules may consult
type Env struct {
	Taxonomy    *taxonomy.Table
	KnownRegion func(region string) bool
	Regions     []string
}

// Resolver applies a rule table to profiles
type Resolver struct {
	table *ValidationRuleTable
	env   *Env
}

// NewResolver creates a resolver over table with the built-in region list
func NewResolver(table *ValidationRuleTable, tax *taxonomy.Table) *Resolver {
	return &Resolver{
		table: table,
		env: &Env{
			Taxonomy: tax,
			KnownRegion: func(region string) bool {
				_, ok := benchmarks.RegionMultiplier(region)
				return ok
			},
			Regions: benchmarks.Regions(),
		},
	}
}

// Version returns the version of the rule table in use
func (r *Resolver) Version() string {
	return r.table.Version
}

// Resolve evaluates every rule against p. The result depends only on p and is
// ordered by field name, then severity (error, warning, info).
func (r *Resolver) Resolve(p *models.BusinessProfile) []models.ValidationFinding {
	findings := []models.ValidationFinding{}

	for _, rule := range r.table.Fields {
		findings = append(findings, r.resolveField(p, rule)...)
	}

	for _, c := range r.table.CrossField {
		msg, suggestions, fired := c.Check(p, r.env)
		if !fired {
			continue
		}
		findings = append(findings, models.ValidationFinding{
			Field:       c.Field,
			Severity:    c.Severity,
			Message:     msg,
			Suggestions: copyStrings(suggestions),
			Required:    r.isRequired(p, c.Field),
			RuleID:      c.ID,
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Field != findings[j].Field {
			return findings[i].Field < findings[j].Field
		}
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})
	return findings
}

func (r *Resolver) resolveField(p *models.BusinessProfile, rule FieldRule) []models.ValidationFinding {
	level := effectiveLevel(p, rule)
	required := level == models.LevelRequired

	present, failMsg, suggestions := checkBase(p, rule)
	if !present {
		switch level {
		case models.LevelRequired:
			return []models.ValidationFinding{{
				Field:       rule.Field,
				Severity:    models.SeverityError,
				Message:     fmt.Sprintf("%s is required%s", rule.Field, requiredContext(p, rule)),
				Suggestions: []string{},
				Required:    true,
				RuleID:      rule.Field + ".required",
			}}
		case models.LevelRecommended:
			return []models.ValidationFinding{{
				Field:       rule.Field,
				Severity:    models.SeverityInfo,
				Message:     fmt.Sprintf("providing %s improves the accuracy of the valuation", rule.Field),
				Suggestions: []string{},
				RuleID:      rule.Field + ".recommended",
			}}
		}
		return nil
	}
	if failMsg != "" {
		return []models.ValidationFinding{{
			Field:       rule.Field,
			Severity:    models.SeverityError,
			Message:     failMsg,
			Suggestions: suggestions,
			Required:    required,
			RuleID:      rule.Field + "." + string(rule.Kind),
		}}
	}

	var out []models.ValidationFinding
	value, numeric := numericValue(p, rule.Field)
	if !numeric {
		return nil
	}
	for _, o := range rule.Sector {
		if matches(o.Match, p.Sector) {
			if f, ok := overrideWarning(rule.Field, "sector."+norm(o.Match), o, value, required); ok {
				out = append(out, f)
			}
		}
	}
	for _, o := range rule.Stage {
		if matches(o.Match, string(p.Stage)) {
			if f, ok := overrideWarning(rule.Field, "stage."+norm(o.Match), o, value, required); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// checkBase reports whether the field is present and, if so, the message of a
// failed base constraint (empty when it passes)
func checkBase(p *models.BusinessProfile, rule FieldRule) (present bool, failMsg string, suggestions []string) {
	switch rule.Kind {
	case KindRange:
		v, ok := numericValue(p, rule.Field)
		if !ok {
			return false, "", nil
		}
		if (rule.Min != nil && v < *rule.Min) || (rule.Max != nil && v > *rule.Max) {
			return true, rangeMessage(rule, v), []string{rangeHint(rule)}
		}
		return true, "", nil
	case KindEnum:
		s := stringValue(p, rule.Field)
		if s == "" {
			return false, "", nil
		}
		for _, a := range rule.Allowed {
			if norm(a) == norm(s) {
				return true, "", nil
			}
		}
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("%s has an unsupported value", rule.Field)
		}
		return true, fmt.Sprintf("%s: %q", msg, s), copyStrings(rule.Allowed)
	default:
		if _, ok := numericValue(p, rule.Field); ok {
			return true, "", nil
		}
		return stringValue(p, rule.Field) != "", "", nil
	}
}

func overrideWarning(field, scope string, o Override, value float64, required bool) (models.ValidationFinding, bool) {
	if o.Min == nil && o.Max == nil {
		return models.ValidationFinding{}, false
	}
	if (o.Min == nil || value >= *o.Min) && (o.Max == nil || value <= *o.Max) {
		return models.ValidationFinding{}, false
	}
	f := models.ValidationFinding{
		Field:       field,
		Severity:    models.SeverityWarning,
		Message:     o.Message,
		Suggestions: copyStrings(o.Suggestions),
		Required:    required,
		RuleID:      field + "." + scope,
	}
	if o.Suggested != nil {
		v := *o.Suggested
		f.SuggestedValue = &v
		f.Suggestions = append(f.Suggestions, "Suggested value: "+money.FormatFloat(v))
	}
	return f, true
}

// effectiveLevel combines the base level with every matching override
func effectiveLevel(p *models.BusinessProfile, rule FieldRule) models.RequirementLevel {
	required, recommended := rule.Required, rule.Recommended
	for _, o := range rule.Sector {
		if matches(o.Match, p.Sector) {
			required = required || o.Required
			recommended = recommended || o.Recommended
		}
	}
	for _, o := range rule.Stage {
		if matches(o.Match, string(p.Stage)) {
			required = required || o.Required
			recommended = recommended || o.Recommended
		}
	}
	switch {
	case required:
		return models.LevelRequired
	case recommended:
		return models.LevelRecommended
	default:
		return models.LevelOptional
	}
}

func (r *Resolver) isRequired(p *models.BusinessProfile, field string) bool {
	rule, ok := r.table.Rule(field)
	return ok && effectiveLevel(p, rule) == models.LevelRequired
}

// Requirements returns the requirement level of every field for p, in table order
func (r *Resolver) Requirements(p *models.BusinessProfile) []models.FieldRequirement {
	out := make([]models.FieldRequirement, 0, len(r.table.Fields))
	for _, rule := range r.table.Fields {
		out = append(out, models.FieldRequirement{
			Field:     rule.Field,
			Level:     effectiveLevel(p, rule),
			DependsOn: copyStrings(rule.DependsOn),
		})
	}
	return out
}

// BlockedFields returns the sorted set of fields with error findings
func BlockedFields(findings []models.ValidationFinding) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range findings {
		if f.Severity == models.SeverityError && !seen[f.Field] {
			seen[f.Field] = true
			out = append(out, f.Field)
		}
	}
	sort.Strings(out)
	return out
}

// BlockingError returns a *ValidationBlockingError when any finding blocks, nil otherwise
func BlockingError(findings []models.ValidationFinding) error {
	fields := BlockedFields(findings)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationBlockingError{Fields: fields}
}

func requiredContext(p *models.BusinessProfile, rule FieldRule) string {
	if rule.Required {
		return ""
	}
	for _, o := range rule.Stage {
		if o.Required && matches(o.Match, string(p.Stage)) {
			return " at the " + string(p.Stage) + " stage"
		}
	}
	for _, o := range rule.Sector {
		if o.Required && matches(o.Match, p.Sector) {
			return " for " + norm(p.Sector) + " companies"
		}
	}
	return ""
}

func rangeMessage(rule FieldRule, v float64) string {
	if rule.MaxMessage != "" && rule.Max != nil && v > *rule.Max {
		return rule.MaxMessage
	}
	if rule.Message != "" {
		return rule.Message
	}
	return fmt.Sprintf("%s value %s is out of range", rule.Field, money.FormatFloat(v))
}

func rangeHint(rule FieldRule) string {
	switch {
	case rule.Min != nil && rule.Max != nil:
		return fmt.Sprintf("Enter a value between %s and %s", money.FormatFloat(*rule.Min), money.FormatFloat(*rule.Max))
	case rule.Min != nil:
		return fmt.Sprintf("Enter a value of at least %s", money.FormatFloat(*rule.Min))
	default:
		return fmt.Sprintf("Enter a value of at most %s", money.FormatFloat(*rule.Max))
	}
}

func numericValue(p *models.BusinessProfile, field string) (float64, bool) {
	get, ok := numericFields[field]
	if !ok {
		return 0, false
	}
	return get(p)
}

func stringValue(p *models.BusinessProfile, field string) string {
	get, ok := stringFields[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(get(p))
}

func matches(match, value string) bool {
	return value != "" && norm(match) == norm(value)
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
