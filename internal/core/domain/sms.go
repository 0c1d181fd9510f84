package domain

// SMSType labels what kind of message is being sent, for gateway reporting.
type SMSType string

const (
	SMSReceipt  SMSType = "receipt"
	SMSReminder SMSType = "reminder"
)

// SMSRequest is one delivery handed to the SMS gateway.
type SMSRequest struct {
	Recipients []string `json:"recipients"` // local 0-prefixed phone numbers
	Message    string   `json:"message"`
	Type       SMSType  `json:"type"`
	ClientIDs  []string `json:"clientIDs,omitempty"`
}

// SMSFailureHint is the operator-facing classification of a gateway error.
type SMSFailureHint string

const (
	SMSHintInvalidPhone        SMSFailureHint = "invalid phone number"
	SMSHintInsufficientBalance SMSFailureHint = "insufficient SMS balance"
	SMSHintInvalidSender       SMSFailureHint = "invalid sender ID"
	SMSHintMissingCredentials  SMSFailureHint = "SMS credentials not configured"
	SMSHintOther               SMSFailureHint = "SMS delivery failed"
)

// SMSResult reports one delivery attempt.
type SMSResult struct {
	ClientID string         `json:"clientID,omitempty"`
	Phone    string         `json:"phone"`
	Success  bool           `json:"success"`
	Hint     SMSFailureHint `json:"hint,omitempty"`
	Error    string         `json:"error,omitempty"`
}
