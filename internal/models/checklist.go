package models

// DocumentStatus is derived from the item's file list: "uploaded" iff
// at least one file is attached.
type DocumentStatus string

const (
	StatusMissing  DocumentStatus = "missing"
	StatusUploaded DocumentStatus = "uploaded"
)

// UploadedFile is the checklist-side metadata record for one raw file.
// The raw bytes live in the blob store under the same ID.
type UploadedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// ChecklistTemplate is the static definition of one document slot.
// Templates are immutable; they are defined per case type in the
// embedded template packs.
type ChecklistTemplate struct {
	ID               string   `json:"id" yaml:"id"`
	Label            string   `json:"label" yaml:"label"`
	Category         string   `json:"category" yaml:"category"`
	Required         bool     `json:"required" yaml:"required"`
	ConditionalKey   string   `json:"conditionalKey,omitempty" yaml:"conditionalKey,omitempty"`
	ConditionalLabel string   `json:"conditionalLabel,omitempty" yaml:"conditionalLabel,omitempty"`
	MultiFile        bool     `json:"multiFile,omitempty" yaml:"multiFile,omitempty"`
	Notes            []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	SectionHeader    string   `json:"sectionHeader,omitempty" yaml:"sectionHeader,omitempty"`
}

// ChecklistItem is the runtime instance of a slot template for one case.
type ChecklistItem struct {
	ChecklistTemplate
	Files  []UploadedFile `json:"files"`
	Status DocumentStatus `json:"status"`
}

// Refresh re-derives the status from the file list. Status is never
// settable independently of Files.
func (it *ChecklistItem) Refresh() {
	if len(it.Files) > 0 {
		it.Status = StatusUploaded
	} else {
		it.Status = StatusMissing
	}
}

// IsActive reports whether the item currently counts as required:
// unconditionally required, or conditional with its flag switched on.
func (it *ChecklistItem) IsActive(conditionals map[string]bool) bool {
	if it.Required {
		return true
	}
	return it.ConditionalKey != "" && conditionals[it.ConditionalKey]
}
