package models

// ValuationRequest is the request body for POST /valuations
type ValuationRequest struct {
	Profile BusinessProfile `json:"profile" binding:"required"`
	AsOf    *FlexibleDate   `json:"as_of,omitempty"`
}

// ProfileRequest is the request body for endpoints that only need a profile
type ProfileRequest struct {
	Profile BusinessProfile `json:"profile" binding:"required"`
}

// ValidationResponse lists findings and per-field requirement levels for a profile
type ValidationResponse struct {
	Findings     []ValidationFinding `json:"findings"`
	Requirements []FieldRequirement  `json:"requirements"`
	Blocking     bool                `json:"blocking"`
}

// BenchmarkQuery represents the query parameters for a benchmark lookup
type BenchmarkQuery struct {
	Sector   string `form:"sector" binding:"required"`
	Industry string `form:"industry"`
	Region   string `form:"region" binding:"required"`
}

// BenchmarkLoadResponse summarizes a benchmark snapshot swap
type BenchmarkLoadResponse struct {
	Source  string `json:"source"`
	Version string `json:"version"`
	Rows    int    `json:"rows"`
}

// TaxonomyRow is one normalized (sector, segment, sub-segment) entry
type TaxonomyRow struct {
	Sector     string `json:"sector"`
	Segment    string `json:"segment"`
	SubSegment string `json:"sub_segment"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PartialReportResponse is returned when computation failed but findings exist
type PartialReportResponse struct {
	Error         string           `json:"error"`
	Message       string           `json:"message,omitempty"`
	BlockedFields []string         `json:"blocked_fields,omitempty"`
	Report        *ValuationReport `json:"report"`
}
