package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarPost struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(120);not null"`
	Model       string    `gorm:"type:varchar(120);not null"`
	Condition   string    `gorm:"type:varchar(50);not null"`
	Price       float64   `gorm:"type:numeric;not null"`
	Description string    `gorm:"type:text"`
	// JSON-encoded []string; listings start without images and get them
	// appended once uploads finish.
	ImageURLs string `gorm:"type:text"`
	Sold      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
