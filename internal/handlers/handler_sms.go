package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// smsHandler triggers payment reminder broadcasts.
type smsHandler struct {
	smsService portssvc.SMSSvcFacade
}

func newSMSHandler(ss portssvc.SMSSvcFacade) *smsHandler {
	return &smsHandler{smsService: ss}
}

func registerSMSRoutes(rg *gin.RouterGroup, smsService portssvc.SMSSvcFacade) {
	h := newSMSHandler(smsService)

	sms := rg.Group("/sms")
	{
		sms.POST("/reminders", h.sendReminders)
	}
}

// sendReminders godoc
// @Summary Send payment reminder SMS messages
// @Description Targets the named clients, or every Active client when none are named. Per-recipient failures do not stop the run.
// @Tags sms
// @Accept json
// @Produce json
// @Param reminders body dto.SendRemindersRequest true "Target clients and message"
// @Success 200 {object} dto.SMSResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sms/reminders [post]
func (h *smsHandler) sendReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	results, err := h.smsService.SendReminders(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to send reminders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send reminders"})
		return
	}

	resp := dto.SMSResultResponse{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Sent++
		} else {
			resp.Failed++
		}
	}
	logger.Info("Reminder run finished", slog.Int("sent", resp.Sent), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}
