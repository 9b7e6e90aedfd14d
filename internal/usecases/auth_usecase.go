package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/domain/repositories"
	"qcars.backend/pkg/crypto"
	"qcars.backend/pkg/jwt"
	"qcars.backend/pkg/utils"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	resetRepo    repositories.PasswordResetRepository
	settingsRepo repositories.SettingsRepository
	uow          repositories.UnitOfWork
	jwtService   *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	resetRepo repositories.PasswordResetRepository,
	settingsRepo repositories.SettingsRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		settingsRepo: settingsRepo,
		uow:          uow,
		jwtService:   jwtService,
	}
}

// Register registers a new showroom account. The very first account ever
// created becomes the platform admin and skips the payment gate; the
// create-count-promote sequence runs in one transaction so concurrent first
// registrations cannot both observe count==1.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	paymentsRequired, err := u.settingsRepo.PaymentsRequired(ctx)
	if err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	status := entities.AccountStatusActive
	if paymentsRequired {
		status = entities.AccountStatusPaymentPending
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	now := time.Now()
	user := &entities.User{
		ID:            utils.GenerateUUIDv7(),
		Email:         input.Email,
		Name:          input.Name,
		ContactNumber: input.ContactNumber,
		Language:      language,
		PasswordHash:  passwordHash,
		Role:          entities.UserRoleUser,
		Status:        status,
		JoinedAt:      now,
		UpdatedAt:     now,
	}

	// Serialized so a racing first registration counts the other's insert;
	// only one can observe count == 1 and win the bootstrap promotion.
	err = u.uow.DoSerialized(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		count, err := u.userRepo.CountAll(txCtx)
		if err != nil {
			return err
		}
		if count != 1 {
			return nil
		}

		// Bootstrap promotion: first account ever becomes admin and is
		// activated regardless of the payment gate.
		user.Role = entities.UserRoleAdmin
		user.Status = entities.AccountStatusActive
		if err := u.userRepo.UpdateRole(txCtx, user.ID, entities.UserRoleAdmin); err != nil {
			return err
		}
		return u.userRepo.UpdateStatus(txCtx, user.ID, entities.AccountStatusActive)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.ErrAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// Re-read the account so a role change since issuance takes effect.
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// ForgotPassword issues a password recovery token for the account. The token
// would normally be delivered by email; it is returned to the caller here and
// the handler decides what to expose.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := crypto.GenerateRecoveryToken()
	if err != nil {
		return "", err
	}

	if err := u.resetRepo.Create(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a recovery token and sets a new password
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	user, err := u.resetRepo.GetUserByToken(ctx, input.Token)
	if err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}
	return u.resetRepo.MarkUsed(ctx, input.Token)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetTokenExpiry exposes the expiry of a token for session bookkeeping
func (u *AuthUsecase) GetTokenExpiry(token string) (int64, error) {
	return u.jwtService.GetTokenExpiry(token)
}
