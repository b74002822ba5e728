// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Followingae/rfm-case-submit/internal/repository"
	"github.com/Followingae/rfm-case-submit/internal/session"
	"github.com/Followingae/rfm-case-submit/internal/storage"
	"github.com/Followingae/rfm-case-submit/internal/upload"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store   storage.Store
	Cases   *session.Manager
	Uploads *upload.Manager
	Repo    repository.Repository
	Version string
}

// NewHandlers creates the API handler from its dependencies.
func NewHandlers(deps *Dependencies) *Handler {
	return NewHandler(deps.Store, deps.Cases, deps.Uploads, deps.Repo, deps.Version)
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handler) {
	// Health check
	e.GET("/health", h.HandleHealth)

	// Case lifecycle
	caseGroup := e.Group("/api/cases")
	caseGroup.POST("", h.HandleCreateCase)
	caseGroup.GET("/:id", h.HandleGetCase)
	caseGroup.PUT("/:id/merchant", h.HandleUpdateMerchant)
	caseGroup.PUT("/:id/conditionals", h.HandleSetConditional)

	// Shareholder KYC
	caseGroup.POST("/:id/shareholders", h.HandleAddShareholder)
	caseGroup.PUT("/:id/shareholders/:shareholderId", h.HandleUpdateShareholder)
	caseGroup.DELETE("/:id/shareholders/:shareholderId", h.HandleRemoveShareholder)

	// File attachment
	caseGroup.POST("/:id/slots/:slotId/files", h.HandleUploadSlotFiles)
	caseGroup.DELETE("/:id/slots/:slotId/files/:fileId", h.HandleRemoveSlotFile)
	caseGroup.POST("/:id/shareholders/:shareholderId/:docType/files", h.HandleUploadShareholderFiles)
	caseGroup.DELETE("/:id/shareholders/:shareholderId/:docType/files/:fileId", h.HandleRemoveShareholderFile)

	// Analysis views
	caseGroup.GET("/:id/validation", h.HandleValidation)
	caseGroup.GET("/:id/duplicates", h.HandleDuplicates)
	caseGroup.GET("/:id/mdf", h.HandleGetMDF)
	caseGroup.GET("/:id/trade-license", h.HandleGetTradeLicense)

	// Export
	caseGroup.GET("/:id/rename-preview", h.HandleRenamePreview)
	caseGroup.GET("/:id/summary", h.HandleSummaryPreview)
	caseGroup.GET("/:id/export", h.HandleExport)

	// Upload jobs
	e.GET("/api/jobs/:jobId", h.HandleGetJob)

	// Reference lists
	refGroup := e.Group("/api/reference")
	refGroup.GET("/discrepancies", h.HandleGetDiscrepancies)
	refGroup.GET("/reminders", h.HandleGetReminders)
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, wsh *WebSocketHandler) {
	e.GET("/api/ws/jobs", wsh.HandleWebSocket)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
