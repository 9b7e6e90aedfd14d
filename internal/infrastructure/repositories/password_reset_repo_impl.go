package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/infrastructure/models"
)

// PasswordResetRepository implements password recovery token operations
type PasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new recovery token valid for 24 hours
func (r *PasswordResetRepository) Create(ctx context.Context, userID uuid.UUID, token string) error {
	m := &models.PasswordReset{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	return r.conn(ctx).Create(m).Error
}

// GetUserByToken resolves an unexpired, unused token to its account
func (r *PasswordResetRepository) GetUserByToken(ctx context.Context, token string) (*entities.User, error) {
	var userModel models.User

	err := r.conn(ctx).
		Table("users").
		Joins("JOIN password_resets pr ON pr.user_id = users.id").
		Where("pr.token = ? AND pr.expires_at > ? AND pr.used_at IS NULL AND pr.deleted_at IS NULL", token, time.Now()).
		First(&userModel).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	users := NewUserRepository(r.db)
	return users.toEntity(&userModel), nil
}

// MarkUsed consumes a recovery token
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, token string) error {
	now := time.Now()
	result := r.conn(ctx).Model(&models.PasswordReset{}).
		Where("token = ? AND used_at IS NULL", token).
		Update("used_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
