package models

import "time"

// Um registro por dia da semana (0 = domingo).
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int `gorm:"not null;uniqueIndex" json:"weekday"`

	Open      bool   `json:"open"`
	StartTime string `gorm:"size:5" json:"opening"`
	EndTime   string `gorm:"size:5" json:"closing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
