// handlers_export.go - Rename preview and case package download.
package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Followingae/rfm-case-submit/internal/export"
	"github.com/Followingae/rfm-case-submit/internal/validation"
)

// HandleRenamePreview returns the rename and foldering plan for the
// current case state without building the archive.
func (h *Handler) HandleRenamePreview(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}

	mappings := export.Mappings(state.Merchant, state.Items, state.Files, shareholderValues(state.Shareholders), time.Now())
	return c.JSON(http.StatusOK, mappings)
}

// HandleExport assembles the case package zip and streams it as an
// attachment.
func (h *Handler) HandleExport(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}

	now := time.Now()
	shareholders := shareholderValues(state.Shareholders)
	warnings := validation.ValidateCase(state.Merchant, state.Items, state.Conditionals, shareholders)

	var buf bytes.Buffer
	err := export.Archive(&buf, h.store, state.Merchant, state.Items, state.Files, shareholders, warnings, state.MDFScan, now)
	if err != nil {
		return NewInternalError("failed to build case package", err)
	}

	name := export.ArchiveName(state.Merchant, now)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/zip", buf.Bytes())
}

// HandleSummaryPreview returns the CaseSummary.txt content as plain
// text without building the archive.
func (h *Handler) HandleSummaryPreview(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}

	shareholders := shareholderValues(state.Shareholders)
	warnings := validation.ValidateCase(state.Merchant, state.Items, state.Conditionals, shareholders)
	summary := export.Summary(state.Merchant, state.Items, state.Files, shareholders, warnings, state.MDFScan, time.Now())

	return c.String(http.StatusOK, summary)
}
