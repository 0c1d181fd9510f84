package dto

import "github.com/gitala/gitala_branch/internal/core/domain"

// SendRemindersRequest targets specific clients, or every Active client when
// ClientIDs is empty. Message falls back to the standard reminder text.
type SendRemindersRequest struct {
	ClientIDs []string `json:"clientIDs"`
	Message   string   `json:"message"`
}

// SMSResultResponse is the per-recipient outcome of a reminder run.
type SMSResultResponse struct {
	Results []domain.SMSResult `json:"results"`
	Sent    int                `json:"sent"`
	Failed  int                `json:"failed"`
}
