package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Followingae/rfm-case-submit/internal/checklist"
	"github.com/Followingae/rfm-case-submit/internal/export"
	"github.com/Followingae/rfm-case-submit/internal/models"
	"github.com/Followingae/rfm-case-submit/internal/repository"
	"github.com/Followingae/rfm-case-submit/internal/session"
	"github.com/Followingae/rfm-case-submit/internal/storage"
	"github.com/Followingae/rfm-case-submit/internal/upload"
	"github.com/Followingae/rfm-case-submit/internal/validation"
)

// Handler handles API requests.
type Handler struct {
	store   storage.Store
	cases   *session.Manager
	uploads *upload.Manager
	repo    repository.Repository
	version string
}

// NewHandler creates a new API handler.
func NewHandler(store storage.Store, cases *session.Manager, uploads *upload.Manager, repo repository.Repository, version string) *Handler {
	return &Handler{
		store:   store,
		cases:   cases,
		uploads: uploads,
		repo:    repo,
		version: version,
	}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	})
}

// HandleCreateCase opens a new case for the given merchant info.
func (h *Handler) HandleCreateCase(c echo.Context) error {
	var merchant models.MerchantInfo
	if err := c.Bind(&merchant); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	state := h.cases.CreateCase(merchant)

	if err := h.repo.SaveCase(c.Request().Context(), state.ID, state.Merchant, state.Conditionals); err != nil {
		c.Logger().Warnf("failed to persist case %s: %v", state.ID, err)
	}

	return c.JSON(http.StatusCreated, state)
}

// HandleGetCase returns the full case state.
func (h *Handler) HandleGetCase(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}
	h.cases.TouchCase(id)
	return c.JSON(http.StatusOK, state)
}

// HandleUpdateMerchant updates merchant info. Changing the case type or
// branch mode resets the checklist and every attachment with it.
func (h *Handler) HandleUpdateMerchant(c echo.Context) error {
	id := c.Param("id")

	var merchant models.MerchantInfo
	if err := c.Bind(&merchant); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	state, ok := h.cases.UpdateMerchant(id, merchant)
	if !ok {
		return NewNotFoundError("case", id)
	}

	if err := h.repo.SaveCase(c.Request().Context(), state.ID, state.Merchant, state.Conditionals); err != nil {
		c.Logger().Warnf("failed to persist case %s: %v", state.ID, err)
	}

	return c.JSON(http.StatusOK, state)
}

// HandleSetConditional flips one conditional document flag.
func (h *Handler) HandleSetConditional(c echo.Context) error {
	id := c.Param("id")

	var req struct {
		Key   string `json:"key"`
		Value bool   `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Key == "" {
		return NewValidationError("key")
	}

	if !h.cases.SetConditional(id, req.Key, req.Value) {
		return NewNotFoundError("case", id)
	}

	state, _ := h.cases.Snapshot(id)
	if err := h.repo.SaveCase(c.Request().Context(), state.ID, state.Merchant, state.Conditionals); err != nil {
		c.Logger().Warnf("failed to persist case %s: %v", state.ID, err)
	}

	return c.JSON(http.StatusOK, state)
}

// HandleAddShareholder appends an empty shareholder row.
func (h *Handler) HandleAddShareholder(c echo.Context) error {
	id := c.Param("id")

	sh, ok := h.cases.AddShareholder(id)
	if !ok {
		return NewNotFoundError("case", id)
	}

	h.persistShareholders(c, id)
	return c.JSON(http.StatusCreated, sh)
}

// HandleUpdateShareholder sets name and percentage for one row.
func (h *Handler) HandleUpdateShareholder(c echo.Context) error {
	id := c.Param("id")
	shareholderID := c.Param("shareholderId")

	var req struct {
		Name       string `json:"name"`
		Percentage string `json:"percentage"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if !h.cases.UpdateShareholder(id, shareholderID, req.Name, req.Percentage) {
		return NewNotFoundError("shareholder", shareholderID)
	}

	h.persistShareholders(c, id)
	state, _ := h.cases.Snapshot(id)
	return c.JSON(http.StatusOK, state.Shareholders)
}

// HandleRemoveShareholder drops a row and its KYC files.
func (h *Handler) HandleRemoveShareholder(c echo.Context) error {
	id := c.Param("id")
	shareholderID := c.Param("shareholderId")

	if !h.cases.RemoveShareholder(id, shareholderID) {
		return NewNotFoundError("shareholder", shareholderID)
	}

	h.persistShareholders(c, id)
	return c.NoContent(http.StatusNoContent)
}

// HandleValidation runs the full case validation and returns the
// warnings together with the verdict the summary would carry.
func (h *Handler) HandleValidation(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}

	warnings := validation.ValidateCase(state.Merchant, state.Items, state.Conditionals, shareholderValues(state.Shareholders))
	minor, major := validation.CountByType(warnings)
	missing := missingRequiredCount(state)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"warnings":        warnings,
		"minorCount":      minor,
		"majorCount":      major,
		"missingRequired": missing,
		"verdict":         export.Verdict(missing, major, state.MDFScan),
		"mdfScan":         state.MDFScan,
	})
}

// HandleDuplicates returns the current duplicate file report.
func (h *Handler) HandleDuplicates(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}
	return c.JSON(http.StatusOK, state.Duplicates)
}

// HandleGetMDF returns the parsed MDF record with its field scan.
func (h *Handler) HandleGetMDF(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}
	if state.MDF == nil {
		return NewNotFoundError("parsed MDF for case", id)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"parsed":     state.MDF,
		"confidence": state.MDFConfidence,
		"scan":       state.MDFScan,
	})
}

// HandleGetTradeLicense returns the parsed trade license record.
func (h *Handler) HandleGetTradeLicense(c echo.Context) error {
	id := c.Param("id")
	state, ok := h.cases.Snapshot(id)
	if !ok {
		return NewNotFoundError("case", id)
	}
	if state.TradeLicense == nil {
		return NewNotFoundError("parsed trade license for case", id)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"parsed":     state.TradeLicense,
		"confidence": state.TLConfidence,
	})
}

// HandleGetDiscrepancies returns the reference discrepancy lists shown
// alongside the checklist.
func (h *Handler) HandleGetDiscrepancies(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"minor": checklist.MinorDiscrepancies,
		"major": checklist.MajorDiscrepancies,
	})
}

// HandleGetReminders returns the reference reminder list.
func (h *Handler) HandleGetReminders(c echo.Context) error {
	return c.JSON(http.StatusOK, checklist.ImportantReminders)
}

func (h *Handler) persistShareholders(c echo.Context, caseID string) {
	state, ok := h.cases.Snapshot(caseID)
	if !ok {
		return
	}
	if err := h.repo.ReplaceShareholders(c.Request().Context(), caseID, shareholderValues(state.Shareholders)); err != nil {
		c.Logger().Warnf("failed to persist shareholders for case %s: %v", caseID, err)
	}
}

func shareholderValues(shareholders []*models.ShareholderKYC) []models.ShareholderKYC {
	out := make([]models.ShareholderKYC, 0, len(shareholders))
	for _, sh := range shareholders {
		out = append(out, *sh)
	}
	return out
}

// missingRequiredCount counts required slots with no files, the same
// definition the exported summary's verdict uses. Conditional-only
// slots are reported through warnings, not this count.
func missingRequiredCount(state *session.CaseState) int {
	count := 0
	for _, item := range state.Items {
		if item.Required && item.Status == models.StatusMissing {
			count++
		}
	}
	return count
}
