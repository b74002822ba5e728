package export

import (
	"strings"
	"testing"
	"time"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

var testDate = time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)

func uploadedItem(id, label, category string, files ...models.UploadedFile) models.ChecklistItem {
	item := models.ChecklistItem{
		ChecklistTemplate: models.ChecklistTemplate{ID: id, Label: label, Category: category, Required: true},
		Files:             files,
	}
	item.Refresh()
	return item
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Al Noor Trading LLC", "Al_Noor_Trading_LLC"},
		{"Al-Noor & Sons (Dubai)", "AlNoor_Sons_Dubai"},
		{"  Spaced  Out  ", "Spaced_Out"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileExtension(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"scan.PDF", ".pdf"},
		{"photo.front.JPG", ".jpg"},
		{"noext", ""},
	}
	for _, tc := range cases {
		if got := fileExtension(tc.in); got != tc.want {
			t.Errorf("fileExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMappingsSuffixRules(t *testing.T) {
	merchant := models.MerchantInfo{LegalName: "Al Noor Trading LLC"}
	f1 := models.UploadedFile{ID: "f1", Name: "jan.pdf", Size: 100}
	f2 := models.UploadedFile{ID: "f2", Name: "feb.pdf", Size: 200}
	single := models.UploadedFile{ID: "f3", Name: "license.pdf", Size: 300}

	items := []models.ChecklistItem{
		uploadedItem("bank-statement", "Bank Statement", "Bank", f1, f2),
		uploadedItem("trade-license", "Trade License", "Legal", single),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{
		models.SlotKey("bank-statement"): {f1, f2},
		models.SlotKey("trade-license"):  {single},
	}

	mappings := Mappings(merchant, items, fileStore, nil, testDate)
	if len(mappings) != 3 {
		t.Fatalf("Expected 3 mappings, got %d", len(mappings))
	}

	if mappings[0].NewName != "Al_Noor_Trading_LLC_BankStatement_1M_1_20260827.pdf" {
		t.Errorf("Unexpected first bank statement name: %s", mappings[0].NewName)
	}
	if mappings[1].NewName != "Al_Noor_Trading_LLC_BankStatement_1M_2_20260827.pdf" {
		t.Errorf("Unexpected second bank statement name: %s", mappings[1].NewName)
	}
	// Single file in the slot, no numeric suffix.
	if mappings[2].NewName != "Al_Noor_Trading_LLC_TradeLicense_20260827.pdf" {
		t.Errorf("Unexpected trade license name: %s", mappings[2].NewName)
	}

	if mappings[0].Folder != "04_BankDocuments" {
		t.Errorf("Expected bank folder 04_BankDocuments, got %s", mappings[0].Folder)
	}
	if mappings[2].Folder != "06_LegalDocuments" {
		t.Errorf("Expected legal folder 06_LegalDocuments, got %s", mappings[2].Folder)
	}
	if mappings[0].FileID != "f1" || mappings[0].OriginalName != "jan.pdf" {
		t.Errorf("Unexpected mapping source: %+v", mappings[0])
	}
}

func TestMappingsFallbacks(t *testing.T) {
	// No legal name: DBA is used. Unknown slot id: sanitized label.
	// Unknown category: fallback folder.
	merchant := models.MerchantInfo{DBA: "Corner Shop"}
	f := models.UploadedFile{ID: "f1", Name: "doc.pdf"}
	items := []models.ChecklistItem{
		uploadedItem("custom-slot", "Custom Doc!", "Misc", f),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{
		models.SlotKey("custom-slot"): {f},
	}

	mappings := Mappings(merchant, items, fileStore, nil, testDate)
	if len(mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(mappings))
	}
	if mappings[0].NewName != "Corner_Shop_Custom_Doc_20260827.pdf" {
		t.Errorf("Unexpected fallback name: %s", mappings[0].NewName)
	}
	if mappings[0].Folder != "08_Other" {
		t.Errorf("Expected fallback folder, got %s", mappings[0].Folder)
	}
}

func TestMappingsShareholderFiles(t *testing.T) {
	merchant := models.MerchantInfo{LegalName: "Al Noor"}
	p1 := models.UploadedFile{ID: "p1", Name: "pass1.jpg"}
	p2 := models.UploadedFile{ID: "p2", Name: "pass2.jpg"}
	e1 := models.UploadedFile{ID: "e1", Name: "eid.png"}
	unnamed := models.UploadedFile{ID: "u1", Name: "scan.pdf"}

	shareholders := []models.ShareholderKYC{
		{ID: "sh-1", Name: "Ahmed Al Mansoori", PassportFiles: []models.UploadedFile{p1, p2}, EIDFiles: []models.UploadedFile{e1}},
		{ID: "sh-2", Name: "", PassportFiles: []models.UploadedFile{unnamed}},
	}
	fileStore := map[models.DocKey][]models.UploadedFile{
		models.ShareholderKey("sh-1", models.ShareholderDocPassport): {p1, p2},
		models.ShareholderKey("sh-1", models.ShareholderDocEID):      {e1},
		models.ShareholderKey("sh-2", models.ShareholderDocPassport): {unnamed},
	}

	mappings := Mappings(merchant, nil, fileStore, shareholders, testDate)
	if len(mappings) != 4 {
		t.Fatalf("Expected 4 mappings, got %d", len(mappings))
	}

	want := []string{
		"Al_Noor_Passport_Ahmed_Al_Mansoori_1_20260827.jpg",
		"Al_Noor_Passport_Ahmed_Al_Mansoori_2_20260827.jpg",
		"Al_Noor_EmiratesID_Ahmed_Al_Mansoori_20260827.png",
		"Al_Noor_Passport_Shareholder2_20260827.pdf",
	}
	for i, w := range want {
		if mappings[i].NewName != w {
			t.Errorf("Expected mapping %d name %s, got %s", i, w, mappings[i].NewName)
		}
		if mappings[i].Folder != "03_KYC" {
			t.Errorf("Expected shareholder files in 03_KYC, got %s", mappings[i].Folder)
		}
	}
}

func TestMappingsSkipEmptySlots(t *testing.T) {
	merchant := models.MerchantInfo{LegalName: "Al Noor"}
	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms"),
	}

	mappings := Mappings(merchant, items, map[models.DocKey][]models.UploadedFile{}, nil, testDate)
	if len(mappings) != 0 {
		t.Errorf("Expected no mappings for empty slots, got %d", len(mappings))
	}
}

func TestMappingsDeterministic(t *testing.T) {
	merchant := models.MerchantInfo{LegalName: "Al Noor"}
	f := models.UploadedFile{ID: "f1", Name: "mdf.pdf"}
	items := []models.ChecklistItem{uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", f)}
	fileStore := map[models.DocKey][]models.UploadedFile{models.SlotKey("mdf"): {f}}

	a := Mappings(merchant, items, fileStore, nil, testDate)
	b := Mappings(merchant, items, fileStore, nil, testDate)
	if len(a) != len(b) {
		t.Fatalf("Expected identical runs, got %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Expected identical mapping %d, got %+v vs %+v", i, a[i], b[i])
		}
	}
	if !strings.Contains(a[0].NewName, "_MDF_") {
		t.Errorf("Expected MDF token in name, got %s", a[0].NewName)
	}
}
