package models

import (
	"time"

	"github.com/google/uuid"
)

type FileObject struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Bucket      string    `gorm:"type:varchar(100);not null;index"`
	Name        string    `gorm:"type:varchar(255)"`
	ContentType string    `gorm:"type:varchar(100)"`
	Data        []byte    `gorm:"type:bytea;not null"`
	CreatedAt   time.Time
}
