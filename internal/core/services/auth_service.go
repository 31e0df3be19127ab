package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/contabilis/group_ledger_app/internal/apperrors"
	"github.com/contabilis/group_ledger_app/internal/core/domain"
	portssvc "github.com/contabilis/group_ledger_app/internal/core/ports/services"
	"github.com/contabilis/group_ledger_app/internal/dto"
	"github.com/contabilis/group_ledger_app/internal/platform/config"
	"github.com/contabilis/group_ledger_app/internal/utils"
)

// AuthService issues access tokens for authenticated users.
type AuthService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.AuthSvcFacade {
	return &AuthService{
		cfg:         cfg,
		userService: userService,
	}
}

// Ensure AuthService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// Login verifies credentials and returns a signed JWT with the user.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to issue access token", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// VerifyUser confirms the user behind a token subject (or dev header) is
// known and active.
func (s *AuthService) VerifyUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("unknown user identity")
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("user account is inactive")
	}
	return user, nil
}
