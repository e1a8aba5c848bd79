package usecases

import (
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/jwt"
	"studio-ops.backend/pkg/logger"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	verifySecret string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, verifySecret string) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		verifySecret: verifySecret,
	}
}

// VerifyEmail marks an email as allowed to log in
func (u *AuthUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) (*entities.User, error) {
	if u.verifySecret == "" || subtle.ConstantTimeCompare([]byte(input.Secret), []byte(u.verifySecret)) != 1 {
		return nil, domainerrors.BadRequest("Invalid secret")
	}

	user, err := u.userRepo.UpsertVerified(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Email verified", zap.String("user", user.ID.String()))
	return user, nil
}

// Login issues an access token for a verified email
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("Verification needed")
		}
		return nil, err
	}
	if !user.Verified {
		return nil, domainerrors.Forbidden("Verification needed")
	}

	token, err := u.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		User:               user,
		AccessToken:        token.Token,
		AccessTokenExpires: token.ExpiresAt,
	}, nil
}
