package repositories

import (
	"context"

	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// CountAll counts every account ever created, including soft-deleted
	// rows; the first-account bootstrap check depends on it never shrinking.
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.AccountStatus) (int64, error)
	List(ctx context.Context, search string) ([]*entities.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// PasswordResetRepository defines password recovery token operations
type PasswordResetRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string) error
	GetUserByToken(ctx context.Context, token string) (*entities.User, error)
	MarkUsed(ctx context.Context, token string) error
}
