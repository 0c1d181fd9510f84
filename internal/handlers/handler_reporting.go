package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// reportingHandler serves the owner's performance views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/portfolio", h.portfolioSummary)
		reports.GET("/collections", h.officerCollections)
		reports.GET("/cashbook", h.cashbookSummary)
	}
}

// portfolioSummary godoc
// @Summary Loan book totals across all clients
// @Tags reports
// @Produce json
// @Success 200 {object} domain.PortfolioSummary
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/portfolio [get]
func (h *reportingHandler) portfolioSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.PortfolioSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute portfolio summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute portfolio summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// officerCollections godoc
// @Summary Repayment totals per field officer
// @Tags reports
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} domain.OfficerCollection
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/collections [get]
func (h *reportingHandler) officerCollections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	collections, err := h.reportingService.OfficerCollections(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to compute officer collections", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute officer collections"})
		return
	}

	c.JSON(http.StatusOK, collections)
}

// cashbookSummary godoc
// @Summary Ledger income and expense totals over a range
// @Tags reports
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.CashbookSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cashbook [get]
func (h *reportingHandler) cashbookSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseReportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	summary, err := h.reportingService.CashbookSummary(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to compute cashbook summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute cashbook summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseReportRange reads from/to query params, defaulting to the last 30
// days when absent.
func parseReportRange(c *gin.Context) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	to := time.Now()
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	from := to.AddDate(0, 0, -30)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	return from, to, nil
}
