package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/domain/repositories"
	"qcars.backend/pkg/logger"
	"qcars.backend/pkg/mq"
)

// AccountUsecase owns the role/status state machine: capability checks for
// every gated request, admin-only status and role transitions, and the global
// payments-required flag.
type AccountUsecase struct {
	userRepo     repositories.UserRepository
	settingsRepo repositories.SettingsRepository
	postRepo     repositories.CarPostRepository
	publisher    *mq.Publisher
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	postRepo repositories.CarPostRepository,
	publisher *mq.Publisher,
) *AccountUsecase {
	return &AccountUsecase{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		postRepo:     postRepo,
		publisher:    publisher,
	}
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalAccounts   int64 `json:"totalAccounts"`
	PendingAccounts int64 `json:"pendingAccounts"`
	TotalListings   int64 `json:"totalListings"`
	SoldListings    int64 `json:"soldListings"`
}

// StatusChangedEvent is published when an admin flips an account's status.
type StatusChangedEvent struct {
	UserID    uuid.UUID              `json:"userId"`
	Status    entities.AccountStatus `json:"status"`
	ChangedBy uuid.UUID              `json:"changedBy"`
	ChangedAt time.Time              `json:"changedAt"`
}

// Authorize decides whether the account may exercise the capability. Pure
// function of the account's current state; no side effects.
func (u *AccountUsecase) Authorize(account *entities.User, capability entities.Capability) error {
	if account == nil {
		return domainerrors.ErrUnauthorized
	}

	switch capability {
	case entities.CapabilityViewListings, entities.CapabilityCreateListing:
		if !account.IsActive() {
			return domainerrors.ErrAccountRestricted
		}
		return nil
	case entities.CapabilityAdminPanel:
		if !account.IsAdmin() {
			return domainerrors.ErrForbidden
		}
		return nil
	default:
		return domainerrors.ErrForbidden
	}
}

// SetAccountStatus flips an account between active and payment_pending.
// Admin only; this is the manual payment-verification step.
func (u *AccountUsecase) SetAccountStatus(ctx context.Context, acting *entities.User, targetID uuid.UUID, status entities.AccountStatus) (*entities.User, error) {
	if !acting.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if !status.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}

	if err := u.userRepo.UpdateStatus(ctx, targetID, status); err != nil {
		return nil, err
	}

	updated, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// Best effort: a broker outage must not fail the admin action.
	if err := u.publisher.PublishJSON(ctx, "account.status_changed", StatusChangedEvent{
		UserID:    targetID,
		Status:    status,
		ChangedBy: acting.ID,
		ChangedAt: time.Now(),
	}); err != nil {
		logger.Warn(ctx, "failed to publish status change event", zap.Error(err))
	}

	return updated, nil
}

// SetRole changes an account's role. Admin only; both directions are allowed,
// except an admin demoting themselves, which could leave the platform without
// any admin.
func (u *AccountUsecase) SetRole(ctx context.Context, acting *entities.User, targetID uuid.UUID, role entities.UserRole) (*entities.User, error) {
	if !acting.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if !role.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	if acting.ID == targetID && role != entities.UserRoleAdmin {
		return nil, domainerrors.ErrInvalidInput
	}

	if err := u.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, targetID)
}

// PaymentsRequired reads the global payment gate
func (u *AccountUsecase) PaymentsRequired(ctx context.Context) (bool, error) {
	return u.settingsRepo.PaymentsRequired(ctx)
}

// SetPaymentsRequired toggles the global payment gate consumed by future
// registrations. Admin only; existing accounts are not touched.
func (u *AccountUsecase) SetPaymentsRequired(ctx context.Context, acting *entities.User, value bool) error {
	if !acting.IsAdmin() {
		return domainerrors.ErrForbidden
	}
	return u.settingsRepo.SetPaymentsRequired(ctx, value)
}

// GetStats gathers account and listing counts for the admin dashboard
func (u *AccountUsecase) GetStats(ctx context.Context, acting *entities.User) (*PlatformStats, error) {
	if !acting.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	stats := &PlatformStats{}
	var err error
	if stats.TotalAccounts, err = u.userRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.PendingAccounts, err = u.userRepo.CountByStatus(ctx, entities.AccountStatusPaymentPending); err != nil {
		return nil, err
	}
	if stats.TotalListings, err = u.postRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.SoldListings, err = u.postRepo.CountSold(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// ListAccounts lists all accounts for the admin panel
func (u *AccountUsecase) ListAccounts(ctx context.Context, acting *entities.User, search string) ([]*entities.User, error) {
	if !acting.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	return u.userRepo.List(ctx, search)
}
