package models

import "time"

type AppSetting struct {
	Key       string `gorm:"type:varchar(100);primaryKey"`
	Value     string `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time
}
