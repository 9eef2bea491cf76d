package entity

import (
	"time"

	"github.com/google/uuid"
)

type Medicine struct {
	Id        uuid.UUID
	Name      string
	Price     float64
	ShortDesc string
	Image     string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
