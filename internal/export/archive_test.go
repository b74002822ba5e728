package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

type mapBlobs map[string][]byte

func (m mapBlobs) Bytes(fileID string) ([]byte, error) {
	data, ok := m[fileID]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return data, nil
}

func buildArchive(t *testing.T, blobs mapBlobs, items []models.ChecklistItem, fileStore map[models.DocKey][]models.UploadedFile) *zip.Reader {
	t.Helper()
	merchant := models.MerchantInfo{LegalName: "Al Noor", CaseType: models.CaseTypeLowRisk}

	var buf bytes.Buffer
	err := Archive(&buf, blobs, merchant, items, fileStore, nil, nil, nil, testDate)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to reopen archive: %v", err)
	}
	return reader
}

func entryNames(r *zip.Reader) map[string]bool {
	names := make(map[string]bool, len(r.File))
	for _, f := range r.File {
		names[f.Name] = true
	}
	return names
}

func TestArchiveLayout(t *testing.T) {
	mdfFile := models.UploadedFile{ID: "f1", Name: "form.pdf"}
	tlFile := models.UploadedFile{ID: "f2", Name: "license.pdf"}
	bankFile := models.UploadedFile{ID: "f3", Name: "statement.pdf"}

	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", mdfFile),
		uploadedItem("trade-license", "Trade License", "Legal", tlFile),
		uploadedItem("bank-statement", "Bank Statement", "Bank", bankFile),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{
		models.SlotKey("mdf"):            {mdfFile},
		models.SlotKey("trade-license"):  {tlFile},
		models.SlotKey("bank-statement"): {bankFile},
	}
	blobs := mapBlobs{"f1": []byte("mdf"), "f2": []byte("tl"), "f3": []byte("bank")}

	reader := buildArchive(t, blobs, items, fileStore)
	names := entryNames(reader)

	root := "Al_Noor_CasePackage_20260827"
	for _, folder := range []string{"01_MDF", "02_TradeLicense", "03_KYC", "04_BankDocuments", "05_ShopDocuments", "06_LegalDocuments", "07_Forms"} {
		if !names[root+"/"+folder+"/"] {
			t.Errorf("Expected skeleton folder %s", folder)
		}
	}

	// MDF and trade license land in the numbered folders, not their
	// category folders.
	if !names[root+"/01_MDF/Al_Noor_MDF_20260827.pdf"] {
		t.Errorf("Expected MDF file under 01_MDF, entries: %v", names)
	}
	if !names[root+"/02_TradeLicense/Al_Noor_TradeLicense_20260827.pdf"] {
		t.Errorf("Expected trade license under 02_TradeLicense, entries: %v", names)
	}
	if !names[root+"/04_BankDocuments/Al_Noor_BankStatement_1M_20260827.pdf"] {
		t.Errorf("Expected bank statement under 04_BankDocuments, entries: %v", names)
	}
	if !names[root+"/CaseSummary.txt"] {
		t.Error("Expected CaseSummary.txt at the archive root")
	}
}

func TestArchiveSummaryContent(t *testing.T) {
	f := models.UploadedFile{ID: "f1", Name: "form.pdf"}
	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", f),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{models.SlotKey("mdf"): {f}}

	reader := buildArchive(t, mapBlobs{"f1": []byte("data")}, items, fileStore)

	for _, entry := range reader.File {
		if !strings.HasSuffix(entry.Name, "CaseSummary.txt") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("Failed to open summary: %v", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read summary: %v", err)
		}
		if !strings.Contains(string(content), "VERDICT:") {
			t.Error("Expected verdict line in the packaged summary")
		}
		return
	}
	t.Fatal("CaseSummary.txt not found in archive")
}

func TestArchiveFileContentRoundTrip(t *testing.T) {
	f := models.UploadedFile{ID: "f1", Name: "form.pdf"}
	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", f),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{models.SlotKey("mdf"): {f}}

	reader := buildArchive(t, mapBlobs{"f1": []byte("original bytes")}, items, fileStore)

	for _, entry := range reader.File {
		if !strings.HasSuffix(entry.Name, "Al_Noor_MDF_20260827.pdf") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("Failed to open entry: %v", err)
		}
		content, _ := io.ReadAll(rc)
		rc.Close()
		if string(content) != "original bytes" {
			t.Errorf("Expected stored bytes preserved, got %q", content)
		}
		return
	}
	t.Fatal("Renamed MDF entry not found in archive")
}

func TestArchiveMissingBlobFails(t *testing.T) {
	f := models.UploadedFile{ID: "gone", Name: "form.pdf"}
	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", f),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{models.SlotKey("mdf"): {f}}
	merchant := models.MerchantInfo{LegalName: "Al Noor"}

	var buf bytes.Buffer
	err := Archive(&buf, mapBlobs{}, merchant, items, fileStore, nil, nil, nil, testDate)
	if err == nil {
		t.Fatal("Expected error when a stored file cannot be read")
	}
	if !strings.Contains(err.Error(), "gone") {
		t.Errorf("Expected error to name the file id, got %v", err)
	}
}

func TestArchiveDeterministic(t *testing.T) {
	f := models.UploadedFile{ID: "f1", Name: "form.pdf"}
	items := []models.ChecklistItem{
		uploadedItem("mdf", "MDF (Merchant Details Form)", "Forms", f),
	}
	fileStore := map[models.DocKey][]models.UploadedFile{models.SlotKey("mdf"): {f}}
	merchant := models.MerchantInfo{LegalName: "Al Noor", CaseType: models.CaseTypeLowRisk}
	blobs := mapBlobs{"f1": []byte("data")}

	var a, b bytes.Buffer
	if err := Archive(&a, blobs, merchant, items, fileStore, nil, nil, nil, testDate); err != nil {
		t.Fatalf("First archive failed: %v", err)
	}
	if err := Archive(&b, blobs, merchant, items, fileStore, nil, nil, nil, testDate); err != nil {
		t.Fatalf("Second archive failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("Expected byte-identical archives for identical input state")
	}
}

func TestArchiveName(t *testing.T) {
	name := ArchiveName(models.MerchantInfo{LegalName: "Al Noor Trading LLC"}, testDate)
	if name != "Al_Noor_Trading_LLC_CasePackage_20260827.zip" {
		t.Errorf("Unexpected archive name: %s", name)
	}
}
