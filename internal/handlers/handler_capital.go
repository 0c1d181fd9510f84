package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gitala/gitala_branch/internal/apperrors"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// capitalHandler handles owner capital movements.
type capitalHandler struct {
	capitalService portssvc.CapitalSvcFacade
}

func newCapitalHandler(cs portssvc.CapitalSvcFacade) *capitalHandler {
	return &capitalHandler{capitalService: cs}
}

func registerCapitalRoutes(rg *gin.RouterGroup, capitalService portssvc.CapitalSvcFacade) {
	h := newCapitalHandler(capitalService)

	capital := rg.Group("/capital", middleware.RequireOwner())
	{
		capital.POST("", h.recordCapital)
		capital.GET("", h.listCapitalTransactions)
	}
}

// recordCapital godoc
// @Summary Record an owner capital injection or withdrawal
// @Description Creates the capital record and its paired cashbook entry. Owner only.
// @Tags capital
// @Accept json
// @Produce json
// @Param capital body dto.RecordCapitalRequest true "Capital movement"
// @Success 201 {object} dto.CapitalTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /capital [post]
func (h *capitalHandler) recordCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	enteredBy, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	capital, err := h.capitalService.RecordCapital(c.Request.Context(), req, enteredBy)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to record capital transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record capital transaction"})
		return
	}

	logger.Info("Capital transaction recorded", slog.String("capital_id", capital.CapitalID), slog.String("type", string(capital.Type)))
	c.JSON(http.StatusCreated, dto.ToCapitalTransactionResponse(capital))
}

// listCapitalTransactions godoc
// @Summary List owner capital movements
// @Tags capital
// @Produce json
// @Success 200 {array} dto.CapitalTransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /capital [get]
func (h *capitalHandler) listCapitalTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.capitalService.ListCapitalTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list capital transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list capital transactions"})
		return
	}

	resp := make([]dto.CapitalTransactionResponse, 0, len(records))
	for i := range records {
		resp = append(resp, dto.ToCapitalTransactionResponse(&records[i]))
	}
	c.JSON(http.StatusOK, resp)
}
