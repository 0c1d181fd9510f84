package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
)

// ErrMissingCredentials is returned before any network call when the
// gateway credentials are not configured.
var ErrMissingCredentials = errors.New("sms credentials not configured")

// EgoSMSGateway delivers messages through the EgoSMS JSON API used by the
// branch. It is the only outbound HTTP dependency in the system.
type EgoSMSGateway struct {
	apiURL   string
	username string
	password string
	senderID string
	client   *http.Client
}

// NewEgoSMSGateway creates a gateway. Empty credentials are allowed; sends
// then fail with ErrMissingCredentials so callers can hint the operator.
func NewEgoSMSGateway(apiURL, username, password, senderID string) *EgoSMSGateway {
	return &EgoSMSGateway{
		apiURL:   apiURL,
		username: username,
		password: password,
		senderID: senderID,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

var _ portssvc.SMSGateway = (*EgoSMSGateway)(nil)

type egoRequest struct {
	Method   string       `json:"method"`
	UserData egoUserData  `json:"userdata"`
	MsgData  []egoMessage `json:"msgdata"`
}

type egoUserData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type egoMessage struct {
	Number   string `json:"number"`
	Message  string `json:"message"`
	SenderID string `json:"senderid"`
}

type egoResponse struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
}

// Send delivers one request to every recipient in a single API call.
func (g *EgoSMSGateway) Send(ctx context.Context, req domain.SMSRequest) error {
	if g.username == "" || g.password == "" {
		return ErrMissingCredentials
	}
	if len(req.Recipients) == 0 {
		return errors.New("no recipients")
	}

	msgs := make([]egoMessage, 0, len(req.Recipients))
	for _, phone := range req.Recipients {
		msgs = append(msgs, egoMessage{Number: phone, Message: req.Message, SenderID: g.senderID})
	}
	payload, err := json.Marshal(egoRequest{
		Method:   "SendSms",
		UserData: egoUserData{Username: g.username, Password: g.password},
		MsgData:  msgs,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("failed to read sms gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var egoResp egoResponse
	if err := json.Unmarshal(body, &egoResp); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}
	if egoResp.Status != "OK" {
		return fmt.Errorf("sms gateway rejected message: %s", egoResp.Message)
	}
	return nil
}
