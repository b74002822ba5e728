package export

import (
	"strings"
	"testing"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

func TestVerdictThresholds(t *testing.T) {
	acceptable := &models.MDFValidationResult{IsAcceptable: true}
	poor := &models.MDFValidationResult{IsAcceptable: false}

	tests := []struct {
		name            string
		missingRequired int
		majorCount      int
		scan            *models.MDFValidationResult
		want            string
	}{
		{"clean case no scan", 0, 0, nil, VerdictComplete},
		{"clean case acceptable scan", 0, 0, acceptable, VerdictComplete},
		{"clean docs but poor scan", 0, 0, poor, VerdictMinor},
		{"major warnings", 0, 1, acceptable, VerdictSignificant},
		{"many missing", 4, 0, nil, VerdictSignificant},
		{"few missing no majors", 2, 0, nil, VerdictMinor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Verdict(tc.missingRequired, tc.majorCount, tc.scan); got != tc.want {
				t.Errorf("Verdict(%d, %d) = %q, want %q", tc.missingRequired, tc.majorCount, got, tc.want)
			}
		})
	}
}

func TestSummaryContent(t *testing.T) {
	merchant := models.MerchantInfo{LegalName: "Al Noor Trading LLC", CaseType: models.CaseTypeLowRisk}
	f1 := models.UploadedFile{ID: "f1", Name: "a.pdf"}
	f2 := models.UploadedFile{ID: "f2", Name: "b.pdf"}

	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", f1, f2),
		uploadedItem("trade-license", "Trade License", "Legal"),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{
		models.SlotKey("mdf"): {f1, f2},
	}
	shareholders := []models.ShareholderKYC{
		{ID: "sh-1", Name: "Ahmed", Percentage: "60",
			PassportFiles: []models.UploadedFile{{ID: "p1"}}, EIDFiles: []models.UploadedFile{{ID: "e1"}}},
		{ID: "sh-2", Name: "", Percentage: ""},
	}
	warnings := []models.ValidationWarning{
		{Type: models.WarningMajor, Message: "Missing required: Trade License"},
		{Type: models.WarningMinor, Message: "Doing Business As (DBA) name is missing"},
	}
	scan := &models.MDFValidationResult{TotalChecked: 16, TotalPresent: 12, Percentage: 75, IsAcceptable: true}

	text := Summary(merchant, items, fileStore, shareholders, warnings, scan, testDate)

	for _, want := range []string{
		"Case Summary - Al Noor Trading LLC",
		"Date: 27/08/2026",
		"Case Type: LOW-RISK",
		"  1. MDF (Merchant Details Form) (2 files)",
		"Shareholder KYC:",
		"  1. Ahmed (60%) — Passport: 1, EID: 1",
		"  2. Unnamed (?%) — Passport: 0, EID: 0",
		"MISSING REQUIRED DOCUMENTS:",
		"  1. Trade License",
		"PROCESSING TEAM NOTES:",
		"Missing required documents:",
		"MDF field scan: 12/16 critical fields present (75%) — acceptable",
		"Incomplete shareholder KYC:",
		"MAJOR warnings:",
		"  - Missing required: Trade License",
		"MINOR warnings:",
		"  - Doing Business As (DBA) name is missing",
		"VERDICT: " + VerdictSignificant,
		"Total Documents: 1 / 2 required",
		"Generated by RFM Case Submit Portal",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected summary to contain %q\n---\n%s", want, text)
		}
	}
}

func TestSummaryNoScanNoShareholders(t *testing.T) {
	merchant := models.MerchantInfo{DBA: "Corner Shop", CaseType: models.CaseTypeEcom}
	f := models.UploadedFile{ID: "f1", Name: "a.pdf"}
	items := []models.ChecklistItem{
		uploadedItem("ecom-template", "ECOM Template", "Forms", f),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{
		models.SlotKey("ecom-template"): {f},
	}

	text := Summary(merchant, items, fileStore, nil, nil, nil, testDate)

	if !strings.Contains(text, "Case Summary - Corner Shop") {
		t.Error("Expected DBA fallback in the header")
	}
	if !strings.Contains(text, "  1. ECOM Template (1 file)") {
		t.Error("Expected singular file count wording")
	}
	if strings.Contains(text, "Shareholder KYC:") {
		t.Error("Expected no shareholder block without shareholders")
	}
	if strings.Contains(text, "MISSING REQUIRED DOCUMENTS:") {
		t.Error("Expected no missing block when everything required is uploaded")
	}
	if !strings.Contains(text, "MDF field scan: not performed") {
		t.Error("Expected no-scan note")
	}
	if !strings.Contains(text, "All required documents uploaded.") {
		t.Error("Expected the all-uploaded note")
	}
	if !strings.Contains(text, "VERDICT: "+VerdictComplete) {
		t.Errorf("Expected complete verdict, got\n%s", text)
	}
}

func TestSummaryDeterministic(t *testing.T) {
	merchant := models.MerchantInfo{LegalName: "X", CaseType: models.CaseTypeHighRisk}
	a := Summary(merchant, nil, nil, nil, nil, nil, testDate)
	b := Summary(merchant, nil, nil, nil, nil, nil, testDate)
	if a != b {
		t.Error("Expected byte-identical summaries for identical input")
	}
}
