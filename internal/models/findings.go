package models

// Severity of a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities error < warning < info for stable sorting
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// ValidationFinding is one issue the rule resolver found for a field.
// Only error findings on required fields block computation.
type ValidationFinding struct {
	Field          string   `json:"field"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Suggestions    []string `json:"suggestions"`
	Required       bool     `json:"required"`
	RuleID         string   `json:"rule_id"`
	SuggestedValue *float64 `json:"suggested_value,omitempty"`
}

// RequirementLevel tells a form how strongly a field is needed for a profile
type RequirementLevel string

const (
	LevelRequired    RequirementLevel = "required"
	LevelRecommended RequirementLevel = "recommended"
	LevelOptional    RequirementLevel = "optional"
)

// FieldRequirement is the resolved requirement level for one field
type FieldRequirement struct {
	Field     string           `json:"field"`
	Level     RequirementLevel `json:"level"`
	DependsOn []string         `json:"depends_on,omitempty"`
}
