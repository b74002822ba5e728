package models

// DocTypeDetection is the outcome of scoring extracted text against the
// known document-type keyword dictionaries.
type DocTypeDetection struct {
	Detected      string `json:"detected,omitempty"`
	DetectedLabel string `json:"detectedLabel,omitempty"`
	Confidence    int    `json:"confidence"`
	IsMatch       bool   `json:"isMatch"`
	Suggestion    string `json:"suggestion,omitempty"`
}

// DuplicateWarning reports one (name, size) pair appearing in more than
// one distinct slot.
type DuplicateWarning struct {
	FileName string   `json:"fileName"`
	FileSize int64    `json:"fileSize"`
	Slots    []string `json:"slots"`
}
