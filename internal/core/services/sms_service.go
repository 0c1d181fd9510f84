package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// smsService sends receipts and payment reminders through the configured
// gateway. Gateway failures are classified into operator hints and never
// propagate as workflow errors.
type smsService struct {
	gateway    portssvc.SMSGateway
	clientRepo portsrepo.ClientRepositoryFacade
	workers    int
}

// NewSMSService creates a new SMSService. workers bounds the reminder
// fan-out pool.
func NewSMSService(gateway portssvc.SMSGateway, clientRepo portsrepo.ClientRepositoryFacade, workers int) portssvc.SMSSvcFacade {
	if workers < 1 {
		workers = 1
	}
	return &smsService{
		gateway:    gateway,
		clientRepo: clientRepo,
		workers:    workers,
	}
}

var _ portssvc.SMSSvcFacade = (*smsService)(nil)

// ClassifySMSError maps a gateway error onto the operator-facing hint shown
// in the UI. The gateway reports failures as free text, so this matches on
// substrings.
func ClassifySMSError(err error) domain.SMSFailureHint {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "credential") || strings.Contains(msg, "username") || strings.Contains(msg, "password") || strings.Contains(msg, "unauthorized"):
		return domain.SMSHintMissingCredentials
	case strings.Contains(msg, "balance") || strings.Contains(msg, "insufficient"):
		return domain.SMSHintInsufficientBalance
	case strings.Contains(msg, "sender"):
		return domain.SMSHintInvalidSender
	case strings.Contains(msg, "number") || strings.Contains(msg, "phone") || strings.Contains(msg, "recipient"):
		return domain.SMSHintInvalidPhone
	default:
		return domain.SMSHintOther
	}
}

// SendReceipt confirms a recorded payment to the client. Best effort.
func (s *smsService) SendReceipt(ctx context.Context, client domain.Client, receipt domain.Receipt) domain.SMSResult {
	message := fmt.Sprintf(
		"Dear %s, we received your payment of UGX %s. Outstanding balance: UGX %s. Thank you. GITALA BRANCH",
		client.FullName, receipt.AmountPaid.String(), receipt.NewOutstandingBalance.String(),
	)
	err := s.gateway.Send(ctx, domain.SMSRequest{
		Recipients: []string{client.Phone},
		Message:    message,
		Type:       domain.SMSReceipt,
		ClientIDs:  []string{client.ClientID},
	})
	result := domain.SMSResult{ClientID: client.ClientID, Phone: client.Phone, Success: err == nil}
	if err != nil {
		result.Hint = ClassifySMSError(err)
		result.Error = err.Error()
	}
	return result
}

// SendReminders fans reminder messages out to the targeted clients through
// a bounded worker pool. Per-recipient failures are reported, not fatal.
func (s *smsService) SendReminders(ctx context.Context, req dto.SendRemindersRequest) ([]domain.SMSResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	targets, err := s.resolveTargets(ctx, req.ClientIDs)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return []domain.SMSResult{}, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMS worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]domain.SMSResult, len(targets))
	var wg sync.WaitGroup
	for i, client := range targets {
		i, client := i, client
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i] = s.sendReminder(ctx, client, req.Message)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = domain.SMSResult{
				ClientID: client.ClientID,
				Phone:    client.Phone,
				Hint:     domain.SMSHintOther,
				Error:    submitErr.Error(),
			}
		}
	}
	wg.Wait()

	sent := 0
	for _, r := range results {
		if r.Success {
			sent++
		}
	}
	logger.Info("Reminder run finished",
		slog.Int("targets", len(targets)),
		slog.Int("sent", sent),
	)
	return results, nil
}

func (s *smsService) sendReminder(ctx context.Context, client domain.Client, message string) domain.SMSResult {
	if message == "" {
		message = fmt.Sprintf(
			"Dear %s, your daily payment of UGX %s is due. Outstanding balance: UGX %s. GITALA BRANCH",
			client.FullName, client.DailyPayment.String(), client.OutstandingBalance.String(),
		)
	}
	err := s.gateway.Send(ctx, domain.SMSRequest{
		Recipients: []string{client.Phone},
		Message:    message,
		Type:       domain.SMSReminder,
		ClientIDs:  []string{client.ClientID},
	})
	result := domain.SMSResult{ClientID: client.ClientID, Phone: client.Phone, Success: err == nil}
	if err != nil {
		result.Hint = ClassifySMSError(err)
		result.Error = err.Error()
	}
	return result
}

// resolveTargets returns the named clients, or every Active client when the
// request names none. Unknown IDs fail the whole request up front; nothing
// has been sent yet at that point.
func (s *smsService) resolveTargets(ctx context.Context, clientIDs []string) ([]domain.Client, error) {
	if len(clientIDs) == 0 {
		clients, err := s.clientRepo.FindClientsByStatus(ctx, domain.ClientActive)
		if err != nil {
			return nil, fmt.Errorf("failed to list active clients: %w", err)
		}
		return clients, nil
	}

	targets := make([]domain.Client, 0, len(clientIDs))
	for _, id := range clientIDs {
		client, err := s.clientRepo.FindClientByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("client %s: %w", id, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to look up client %s: %w", id, err)
		}
		targets = append(targets, *client)
	}
	return targets, nil
}
