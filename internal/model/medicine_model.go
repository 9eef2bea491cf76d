package model

import (
	"time"

	"github.com/google/uuid"
)

type Medicine struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Price     float64   `gorm:"not null"`
	ShortDesc string    `gorm:"type:text;not null"`
	Image     string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(100);not null;default:'General';index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Medicine) TableName() string {
	return "medicines"
}
