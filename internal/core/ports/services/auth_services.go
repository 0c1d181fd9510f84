package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/dto"
)

// AuthSvcFacade authenticates staff against the fixed branch roster and
// issues access tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
