package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = benchmarks, W2xxx = valuation methods, W3xxx = advisory.
type WarningCode string

const (
	WarnBenchmarkFallback    WarningCode = "W1001" // matched the sector-wide row instead of the exact industry
	WarnBenchmarkUnavailable WarningCode = "W1002" // no benchmark for the profile's sector/region
	WarnMethodTimeout        WarningCode = "W2001" // method exceeded its time budget and was dropped
	WarnMethodBlocked        WarningCode = "W2002" // method skipped because a required field failed validation
	WarnAdvisoryFailed       WarningCode = "W3001" // advisory collaborator failed; numeric results unaffected
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
