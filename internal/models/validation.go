package models

// WarningType grades a validation finding. Warnings never block the
// workflow; they feed the summary verdict.
type WarningType string

const (
	WarningMinor WarningType = "minor"
	WarningMajor WarningType = "major"
)

// ValidationWarning is one finding from the case validator.
type ValidationWarning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
	ItemID  string      `json:"itemId,omitempty"`
}

// MDFFieldCheck records presence of one critical MDF field.
type MDFFieldCheck struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Group   string `json:"group"`
	Present bool   `json:"present"`
}

// MDFValidationResult is the field-scan snapshot for a parsed MDF.
type MDFValidationResult struct {
	TotalChecked  int             `json:"totalChecked"`
	TotalPresent  int             `json:"totalPresent"`
	MissingFields []MDFFieldCheck `json:"missingFields"`
	PresentFields []MDFFieldCheck `json:"presentFields"`
	AllFields     []MDFFieldCheck `json:"allFields"`
	Percentage    int             `json:"percentage"`
	IsAcceptable  bool            `json:"isAcceptable"`
}
