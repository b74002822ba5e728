package export

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// BlobSource resolves stored file ids back to raw bytes at archive
// time.
type BlobSource interface {
	Bytes(fileID string) ([]byte, error)
}

// skeletonFolders always exist in the package, populated or not, so
// the processing team sees the same layout on every case.
var skeletonFolders = []string{
	"01_MDF",
	"02_TradeLicense",
	"03_KYC",
	"04_BankDocuments",
	"05_ShopDocuments",
	"06_LegalDocuments",
	"07_Forms",
}

// ArchiveName is the downloadable zip filename.
func ArchiveName(merchant models.MerchantInfo, now time.Time) string {
	return fmt.Sprintf("%s_CasePackage_%s.zip", merchantFileName(merchant), dateStamp(now))
}

// Archive writes the full case package zip: the folder skeleton, every
// stored file under its renamed path, and CaseSummary.txt at the root.
// A mapping whose new name carries the MDF or TradeLicense token is
// routed to the matching numbered folder regardless of its category
// folder. Output is deterministic for a fixed input state and date.
func Archive(
	w io.Writer,
	blobs BlobSource,
	merchant models.MerchantInfo,
	items []models.ChecklistItem,
	fileStore map[models.DocKey][]models.UploadedFile,
	shareholders []models.ShareholderKYC,
	warnings []models.ValidationWarning,
	mdfScan *models.MDFValidationResult,
	now time.Time,
) error {
	zw := zip.NewWriter(w)
	root := fmt.Sprintf("%s_CasePackage_%s", merchantFileName(merchant), dateStamp(now))

	for _, folder := range skeletonFolders {
		header := &zip.FileHeader{
			Name:     fmt.Sprintf("%s/%s/", root, folder),
			Modified: now,
		}
		if _, err := zw.CreateHeader(header); err != nil {
			zw.Close()
			return fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
	}

	for _, mapping := range Mappings(merchant, items, fileStore, shareholders, now) {
		data, err := blobs.Bytes(mapping.FileID)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to read stored file %s (%s): %w", mapping.FileID, mapping.OriginalName, err)
		}

		if err := writeEntry(zw, fmt.Sprintf("%s/%s/%s", root, targetFolder(mapping), mapping.NewName), data, now); err != nil {
			zw.Close()
			return err
		}
	}

	summary := Summary(merchant, items, fileStore, shareholders, warnings, mdfScan, now)
	if err := writeEntry(zw, fmt.Sprintf("%s/CaseSummary.txt", root), []byte(summary), now); err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

// targetFolder applies the name-sniffed overrides for the two
// documents the processing team always looks for first.
func targetFolder(mapping models.RenameMapping) string {
	switch {
	case strings.Contains(mapping.NewName, "_MDF_"):
		return "01_MDF"
	case strings.Contains(mapping.NewName, "_TradeLicense_"):
		return "02_TradeLicense"
	default:
		return mapping.Folder
	}
}

func writeEntry(zw *zip.Writer, path string, data []byte, now time.Time) error {
	header := &zip.FileHeader{
		Name:     path,
		Method:   zip.Deflate,
		Modified: now,
	}
	fw, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", path, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", path, err)
	}
	return nil
}
