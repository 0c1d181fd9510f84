package services

import (
	"context"
	"fmt"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
	"github.com/gitala/gitala_branch/internal/platform/config"
	"github.com/gitala/gitala_branch/internal/utils"
)

// authService authenticates staff against the fixed roster from config.
// There is no user management: the roster is the whole identity system.
type authService struct {
	cfg   *config.Config
	staff map[string]domain.Staff
}

// NewAuthService creates a new AuthService from the configured roster.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	staff := make(map[string]domain.Staff, len(cfg.Staff))
	for _, s := range cfg.Staff {
		staff[s.Username] = s
	}
	return &authService{cfg: cfg, staff: staff}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, ok := s.staff[req.Username]
	if !ok || !utils.CheckPasswordHash(req.Password, member.PasswordHash) {
		// Same error for unknown user and wrong password.
		logger.Warn("Login refused", "username", req.Username)
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(member.Username, string(member.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("Staff logged in", "username", member.Username)
	return &dto.LoginResponse{
		Token:       token,
		Username:    member.Username,
		DisplayName: member.DisplayName,
		Role:        string(member.Role),
	}, nil
}
