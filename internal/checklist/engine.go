package checklist

import (
	"github.com/Followingae/rfm-case-submit/internal/models"
)

// ForCase returns the ordered slot templates for a case type and branch
// mode. The result is a fresh copy on every call; callers may mutate
// the returned slice freely. Unknown case types fall back to the
// low-risk set.
func ForCase(caseType models.CaseType, branchMode models.BranchMode) []models.ChecklistTemplate {
	switch caseType {
	case models.CaseTypeLowRisk:
		return clone(packs[packLowRisk])
	case models.CaseTypeHighRisk:
		return concat(packs[packLowRisk], packs[packHighRiskAdditional])
	case models.CaseTypeEcom:
		return concat(packs[packLowRisk], packs[packEcomAdditional])
	case models.CaseTypeBranch:
		if branchMode == models.BranchSeparate {
			return concat(packs[packBranchWithMain], packs[packBranchSeparateExtra])
		}
		return clone(packs[packBranchWithMain])
	default:
		return clone(packs[packLowRisk])
	}
}

// BuildItems instantiates runtime checklist items from templates, all
// starting with no files and status missing.
func BuildItems(templates []models.ChecklistTemplate) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(templates))
	for _, tpl := range templates {
		item := models.ChecklistItem{
			ChecklistTemplate: tpl,
			Files:             []models.UploadedFile{},
		}
		item.Refresh()
		items = append(items, item)
	}
	return items
}

func clone(pack []models.ChecklistTemplate) []models.ChecklistTemplate {
	out := make([]models.ChecklistTemplate, len(pack))
	copy(out, pack)
	return out
}

func concat(a, b []models.ChecklistTemplate) []models.ChecklistTemplate {
	out := make([]models.ChecklistTemplate, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
