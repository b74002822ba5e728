package models

// CaseType identifies which checklist template pack a case uses.
type CaseType string

const (
	CaseTypeLowRisk  CaseType = "low-risk"
	CaseTypeHighRisk CaseType = "high-risk"
	CaseTypeEcom     CaseType = "ecom"
	CaseTypeBranch   CaseType = "branch"
)

// BranchMode selects between the two branch template sets.
type BranchMode string

const (
	BranchWithMain BranchMode = "with-main"
	BranchSeparate BranchMode = "separate"
)

// MerchantInfo holds the merchant identity entered in the wizard.
type MerchantInfo struct {
	LegalName  string     `json:"legalName"`
	DBA        string     `json:"dba"`
	CaseType   CaseType   `json:"caseType"`
	BranchMode BranchMode `json:"branchMode,omitempty"`
}
