package auth

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Me(ctx context.Context, principal user.Principal) (MeResponse, error)
	ChangePassword(ctx context.Context, principal user.Principal, req ChangePasswordRequest) error
}
