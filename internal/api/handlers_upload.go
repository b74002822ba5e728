// handlers_upload.go - File attachment endpoints. Every accepted file
// starts its own async processing job.
package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Followingae/rfm-case-submit/internal/models"
	"github.com/Followingae/rfm-case-submit/internal/upload"
)

// maxFileSize caps a single uploaded document.
const maxFileSize = 50 * 1024 * 1024

// HandleUploadSlotFiles accepts multipart files for one checklist slot.
func (h *Handler) HandleUploadSlotFiles(c echo.Context) error {
	id := c.Param("id")
	slotID := c.Param("slotId")

	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}
	if !hasSlot(state.Items, slotID) {
		return NewNotFoundError("checklist slot", slotID)
	}

	return h.startUploadJobs(c, id, models.SlotKey(slotID))
}

// HandleUploadShareholderFiles accepts multipart passport or EID files
// for one shareholder.
func (h *Handler) HandleUploadShareholderFiles(c echo.Context) error {
	id := c.Param("id")
	shareholderID := c.Param("shareholderId")

	docType, err := parseDocType(c.Param("docType"))
	if err != nil {
		return NewBadRequestError(err.Error(), nil)
	}

	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}
	if !hasShareholder(state.Shareholders, shareholderID) {
		return NewNotFoundError("shareholder", shareholderID)
	}

	return h.startUploadJobs(c, id, models.ShareholderKey(shareholderID, docType))
}

// startUploadJobs reads every part of the multipart form and starts one
// job per file.
func (h *Handler) startUploadJobs(c echo.Context, caseID string, key models.DocKey) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("invalid multipart form", err)
	}

	files := form.File["files"]
	if len(files) == 0 {
		return NewBadRequestError("no files in form field 'files'", nil)
	}

	jobs := make([]*upload.Job, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return NewBadRequestError(fmt.Sprintf("file %s exceeds the size limit", fh.Filename), nil)
		}

		src, err := fh.Open()
		if err != nil {
			return NewInternalError("failed to open uploaded file", err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return NewInternalError("failed to read uploaded file", err)
		}

		contentType := fh.Header.Get("Content-Type")
		jobs = append(jobs, h.uploads.StartJob(caseID, key, fh.Filename, contentType, data))
	}

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"jobs": jobs,
	})
}

// HandleRemoveSlotFile detaches one file from a checklist slot.
func (h *Handler) HandleRemoveSlotFile(c echo.Context) error {
	return h.removeFile(c, models.SlotKey(c.Param("slotId")))
}

// HandleRemoveShareholderFile detaches one KYC file from a shareholder.
func (h *Handler) HandleRemoveShareholderFile(c echo.Context) error {
	docType, err := parseDocType(c.Param("docType"))
	if err != nil {
		return NewBadRequestError(err.Error(), nil)
	}
	return h.removeFile(c, models.ShareholderKey(c.Param("shareholderId"), docType))
}

func (h *Handler) removeFile(c echo.Context, key models.DocKey) error {
	id := c.Param("id")
	fileID := c.Param("fileId")

	if !h.cases.RemoveFile(id, key, fileID) {
		return NewNotFoundError("file", fileID)
	}

	// Raw bytes are dropped too; the intake log in the repository keeps
	// its append-only record.
	if err := h.store.Delete(fileID); err != nil {
		c.Logger().Warnf("failed to delete stored file %s: %v", fileID, err)
	}

	state, _ := h.cases.Snapshot(id)
	return c.JSON(http.StatusOK, state)
}

// HandleGetJob returns the status of one upload processing job.
func (h *Handler) HandleGetJob(c echo.Context) error {
	jobID := c.Param("jobId")
	job, ok := h.uploads.GetJob(jobID)
	if !ok {
		return NewNotFoundError("job", jobID)
	}
	return c.JSON(http.StatusOK, job)
}

func hasSlot(items []models.ChecklistItem, slotID string) bool {
	for _, item := range items {
		if item.ID == slotID {
			return true
		}
	}
	return false
}

func hasShareholder(shareholders []*models.ShareholderKYC, id string) bool {
	for _, sh := range shareholders {
		if sh.ID == id {
			return true
		}
	}
	return false
}

func parseDocType(raw string) (models.ShareholderDocType, error) {
	switch raw {
	case string(models.ShareholderDocPassport):
		return models.ShareholderDocPassport, nil
	case string(models.ShareholderDocEID):
		return models.ShareholderDocEID, nil
	default:
		return "", fmt.Errorf("unknown document type %q, want passport or eid", raw)
	}
}
