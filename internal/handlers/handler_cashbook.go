package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// cashbookHandler handles ledger entry and the owner maintenance routines.
type cashbookHandler struct {
	cashbookService portssvc.CashbookSvcFacade
}

func newCashbookHandler(cs portssvc.CashbookSvcFacade) *cashbookHandler {
	return &cashbookHandler{cashbookService: cs}
}

func registerCashbookRoutes(rg *gin.RouterGroup, cashbookService portssvc.CashbookSvcFacade) {
	h := newCashbookHandler(cashbookService)

	cashbook := rg.Group("/cashbook")
	{
		cashbook.POST("", h.createEntry)
		cashbook.GET("", h.listEntries)
		cashbook.GET("/duplicates", middleware.RequireOwner(), h.previewDuplicates)
		cashbook.POST("/duplicates/cleanup", middleware.RequireOwner(), h.cleanupDuplicates)
		cashbook.POST("/repair", middleware.RequireOwner(), h.repairFromTransactions)
	}
}

// createEntry godoc
// @Summary Record a manual cashbook entry
// @Tags cashbook
// @Accept json
// @Produce json
// @Param entry body dto.CreateCashbookEntryRequest true "Entry details"
// @Success 201 {object} dto.CashbookEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashbook [post]
func (h *cashbookHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCashbookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	enteredBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.cashbookService.CreateEntry(c.Request.Context(), req, enteredBy)
	if err != nil {
		logger.Error("Failed to create cashbook entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create cashbook entry"})
		return
	}

	logger.Info("Cashbook entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToCashbookEntryResponse(entry))
}

// listEntries godoc
// @Summary List cashbook entries in a date range
// @Description Defaults to the last 30 days when no range is given.
// @Tags cashbook
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} dto.CashbookEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashbook [get]
func (h *cashbookHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCashbookParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := normalizeDateRange(params.From, params.To)

	entries, err := h.cashbookService.ListEntries(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list cashbook entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list cashbook entries"})
		return
	}

	resp := make([]dto.CashbookEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, dto.ToCashbookEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// previewDuplicates godoc
// @Summary Preview what a duplicate cleanup would remove
// @Description Counts duplicate groups without deleting anything. Owner only.
// @Tags cashbook
// @Produce json
// @Success 200 {object} dto.DuplicatePreviewResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashbook/duplicates [get]
func (h *cashbookHandler) previewDuplicates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	preview, err := h.cashbookService.PreviewDuplicates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to preview duplicates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to preview duplicates"})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// cleanupDuplicates godoc
// @Summary Remove duplicate cashbook entries
// @Description Keeps the oldest entry of each duplicate group and deletes the rest. Owner only.
// @Tags cashbook
// @Produce json
// @Success 200 {object} dto.CleanupResultResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashbook/duplicates/cleanup [post]
func (h *cashbookHandler) cleanupDuplicates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.cashbookService.CleanupDuplicates(c.Request.Context())
	if err != nil {
		logger.Error("Duplicate cleanup failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Duplicate cleanup failed"})
		return
	}

	logger.Info("Duplicate cleanup finished", slog.Int("deleted", result.Deleted), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}

// repairFromTransactions godoc
// @Summary Rebuild missing repayment cashbook entries
// @Description Scans all paid transactions and synthesizes ledger entries for those with no matching line. Owner only.
// @Tags cashbook
// @Produce json
// @Success 200 {object} dto.RepairResultResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashbook/repair [post]
func (h *cashbookHandler) repairFromTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.cashbookService.RepairFromTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Cashbook repair failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Cashbook repair failed"})
		return
	}

	logger.Info("Cashbook repair finished", slog.Int("created", result.Created), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}

// normalizeDateRange fills empty bounds (last 30 days) and stretches the end
// of the range to the end of its day.
func normalizeDateRange(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now()
	} else {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}
