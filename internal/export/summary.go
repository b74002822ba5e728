package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

const separator = "──────────────────────────────────────────────────"

// Verdict phrases. Tests and the processing team grep for the gap
// wording, keep it stable.
const (
	VerdictComplete    = "Case is complete — standard processing"
	VerdictSignificant = "Case has significant gaps — review with sales before submission"
	VerdictMinor       = "Case has minor gaps — may proceed"
)

// Verdict picks the summary verdict from fixed thresholds: complete
// when nothing required is missing, no major warnings, and any MDF scan
// was acceptable; significant when majors exist or more than three
// required documents are missing; minor otherwise.
func Verdict(missingRequired, majorCount int, mdfScan *models.MDFValidationResult) string {
	scanOK := mdfScan == nil || mdfScan.IsAcceptable
	if missingRequired == 0 && majorCount == 0 && scanOK {
		return VerdictComplete
	}
	if majorCount > 0 || missingRequired > 3 {
		return VerdictSignificant
	}
	return VerdictMinor
}

// Summary renders the CaseSummary.txt content placed at the archive
// root.
func Summary(
	merchant models.MerchantInfo,
	items []models.ChecklistItem,
	fileStore map[models.DocKey][]models.UploadedFile,
	shareholders []models.ShareholderKYC,
	warnings []models.ValidationWarning,
	mdfScan *models.MDFValidationResult,
	now time.Time,
) string {
	displayName := merchant.LegalName
	if displayName == "" {
		displayName = merchant.DBA
	}

	lines := []string{
		fmt.Sprintf("Case Summary - %s", displayName),
		fmt.Sprintf("Date: %s", now.Format("02/01/2006")),
		fmt.Sprintf("Case Type: %s", strings.ToUpper(string(merchant.CaseType))),
		"",
		"Documents Included:",
		separator,
	}

	var uploaded, missing, required []models.ChecklistItem
	for _, item := range items {
		if item.Status == models.StatusUploaded {
			uploaded = append(uploaded, item)
		}
		if item.Required {
			required = append(required, item)
			if item.Status == models.StatusMissing {
				missing = append(missing, item)
			}
		}
	}

	for idx, item := range uploaded {
		count := len(fileStore[models.SlotKey(item.ID)])
		plural := ""
		if count > 1 {
			plural = "s"
		}
		lines = append(lines, fmt.Sprintf("  %d. %s (%d file%s)", idx+1, item.Label, count, plural))
	}

	if len(shareholders) > 0 {
		lines = append(lines, "", "Shareholder KYC:", separator)
		for idx, sh := range shareholders {
			name := sh.Name
			if name == "" {
				name = "Unnamed"
			}
			pct := sh.Percentage
			if pct == "" {
				pct = "?"
			}
			lines = append(lines, fmt.Sprintf("  %d. %s (%s%%) — Passport: %d, EID: %d",
				idx+1, name, pct, len(sh.PassportFiles), len(sh.EIDFiles)))
		}
	}

	if len(missing) > 0 {
		lines = append(lines, "", "MISSING REQUIRED DOCUMENTS:", separator)
		for idx, item := range missing {
			lines = append(lines, fmt.Sprintf("  %d. %s", idx+1, item.Label))
		}
	}

	lines = append(lines, processingNotes(missing, shareholders, warnings, mdfScan)...)

	lines = append(lines, "",
		fmt.Sprintf("Total Documents: %d / %d required", len(uploaded), len(required)),
		"Generated by RFM Case Submit Portal")

	return strings.Join(lines, "\n")
}

// processingNotes is the back-office addendum: the gaps restated in one
// place, the MDF scan outcome, incomplete KYC, graded warnings, and the
// verdict.
func processingNotes(
	missing []models.ChecklistItem,
	shareholders []models.ShareholderKYC,
	warnings []models.ValidationWarning,
	mdfScan *models.MDFValidationResult,
) []string {
	lines := []string{"", "PROCESSING TEAM NOTES:", separator}

	if len(missing) == 0 {
		lines = append(lines, "All required documents uploaded.")
	} else {
		lines = append(lines, "Missing required documents:")
		for _, item := range missing {
			lines = append(lines, fmt.Sprintf("  - %s", item.Label))
		}
	}

	if mdfScan == nil {
		lines = append(lines, "MDF field scan: not performed")
	} else {
		grade := "needs re-scan or manual completion"
		if mdfScan.IsAcceptable {
			grade = "acceptable"
		}
		lines = append(lines, fmt.Sprintf("MDF field scan: %d/%d critical fields present (%d%%) — %s",
			mdfScan.TotalPresent, mdfScan.TotalChecked, mdfScan.Percentage, grade))
	}

	var incomplete []string
	for idx, sh := range shareholders {
		if sh.KYCComplete() {
			continue
		}
		name := sh.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Shareholder %d", idx+1)
		}
		var gaps []string
		if len(sh.PassportFiles) == 0 {
			gaps = append(gaps, "Passport missing")
		}
		if len(sh.EIDFiles) == 0 {
			gaps = append(gaps, "EID missing")
		}
		if strings.TrimSpace(sh.Name) == "" {
			gaps = append(gaps, "Name missing")
		}
		incomplete = append(incomplete, fmt.Sprintf("  - %s: %s", name, strings.Join(gaps, ", ")))
	}
	if len(incomplete) > 0 {
		lines = append(lines, "Incomplete shareholder KYC:")
		lines = append(lines, incomplete...)
	}

	var majors, minors []string
	for _, w := range warnings {
		switch w.Type {
		case models.WarningMajor:
			majors = append(majors, fmt.Sprintf("  - %s", w.Message))
		case models.WarningMinor:
			minors = append(minors, fmt.Sprintf("  - %s", w.Message))
		}
	}
	if len(majors) > 0 {
		lines = append(lines, "MAJOR warnings:")
		lines = append(lines, majors...)
	}
	if len(minors) > 0 {
		lines = append(lines, "MINOR warnings:")
		lines = append(lines, minors...)
	}

	lines = append(lines, fmt.Sprintf("VERDICT: %s", Verdict(len(missing), len(majors), mdfScan)))
	return lines
}
