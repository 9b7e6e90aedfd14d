package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"qcars.backend/internal/infrastructure/models"
)

const paymentsRequiredKey = "payments_required"

// SettingsRepository persists marketplace settings in an app_settings table
type SettingsRepository struct {
	db *gorm.DB
	// defaultPaymentsRequired seeds the flag when no row exists yet.
	defaultPaymentsRequired bool
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB, defaultPaymentsRequired bool) *SettingsRepository {
	return &SettingsRepository{db: db, defaultPaymentsRequired: defaultPaymentsRequired}
}

func (r *SettingsRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// PaymentsRequired reads the global payment gate flag
func (r *SettingsRepository) PaymentsRequired(ctx context.Context) (bool, error) {
	var m models.AppSetting
	if err := r.conn(ctx).Where("key = ?", paymentsRequiredKey).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.defaultPaymentsRequired, nil
		}
		return false, err
	}
	return m.Value == "true", nil
}

// SetPaymentsRequired writes the global payment gate flag
func (r *SettingsRepository) SetPaymentsRequired(ctx context.Context, value bool) error {
	strValue := "false"
	if value {
		strValue = "true"
	}
	m := &models.AppSetting{
		Key:       paymentsRequiredKey,
		Value:     strValue,
		UpdatedAt: time.Now(),
	}
	return r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(m).Error
}
