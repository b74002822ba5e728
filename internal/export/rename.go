// Package export assembles the final case package: deterministic
// rename mappings, the CaseSummary.txt text, and the zip archive the
// processing team receives. Given identical input state and date, the
// output is byte-identical.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Followingae/rfm-case-submit/internal/checklist"
	"github.com/Followingae/rfm-case-submit/internal/models"
)

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// sanitizeName strips punctuation and joins words with underscores so
// the result is safe inside a filename.
func sanitizeName(name string) string {
	s := nonAlnumRe.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	return whitespaceRe.ReplaceAllString(s, "_")
}

// fileExtension returns the lowercased dotted extension, or "" when the
// name has none.
func fileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return "." + strings.ToLower(name[idx+1:])
}

func dateStamp(now time.Time) string {
	return now.Format("20060102")
}

// merchantFileName picks the name embedded in every exported filename:
// legal name, else DBA, else a fixed placeholder.
func merchantFileName(merchant models.MerchantInfo) string {
	name := merchant.LegalName
	if name == "" {
		name = merchant.DBA
	}
	if name == "" {
		name = "Merchant"
	}
	return sanitizeName(name)
}

// Mappings computes the rename plan for every stored file: slot files
// first in checklist order, then per-shareholder passport and EID
// files. Files in a slot holding more than one file get a 1-based
// numeric suffix; single files get none.
func Mappings(
	merchant models.MerchantInfo,
	items []models.ChecklistItem,
	fileStore map[models.DocKey][]models.UploadedFile,
	shareholders []models.ShareholderKYC,
	now time.Time,
) []models.RenameMapping {
	merchantName := merchantFileName(merchant)
	stamp := dateStamp(now)
	mappings := []models.RenameMapping{}

	for _, item := range items {
		if item.Status != models.StatusUploaded {
			continue
		}
		files := fileStore[models.SlotKey(item.ID)]
		if len(files) == 0 {
			continue
		}

		docType, ok := checklist.DocumentTypeMap[item.ID]
		if !ok {
			docType = sanitizeName(item.Label)
		}
		folder, ok := checklist.FolderMap[item.Category]
		if !ok {
			folder = checklist.FallbackFolder
		}

		for idx, f := range files {
			suffix := ""
			if len(files) > 1 {
				suffix = fmt.Sprintf("_%d", idx+1)
			}
			mappings = append(mappings, models.RenameMapping{
				OriginalName: f.Name,
				NewName:      fmt.Sprintf("%s_%s%s_%s%s", merchantName, docType, suffix, stamp, fileExtension(f.Name)),
				Folder:       folder,
				FileID:       f.ID,
			})
		}
	}

	for shIndex, sh := range shareholders {
		shName := sh.Name
		if shName == "" {
			shName = fmt.Sprintf("Shareholder%d", shIndex+1)
		}
		shName = sanitizeName(shName)

		docTypes := []struct {
			docType models.ShareholderDocType
			token   string
		}{
			{models.ShareholderDocPassport, "Passport"},
			{models.ShareholderDocEID, "EmiratesID"},
		}
		for _, dt := range docTypes {
			files := fileStore[models.ShareholderKey(sh.ID, dt.docType)]
			for idx, f := range files {
				suffix := ""
				if len(files) > 1 {
					suffix = fmt.Sprintf("_%d", idx+1)
				}
				mappings = append(mappings, models.RenameMapping{
					OriginalName: f.Name,
					NewName:      fmt.Sprintf("%s_%s_%s%s_%s%s", merchantName, dt.token, shName, suffix, stamp, fileExtension(f.Name)),
					Folder:       "03_KYC",
					FileID:       f.ID,
				})
			}
		}
	}

	return mappings
}
