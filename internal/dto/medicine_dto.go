package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicineRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	ShortDesc string  `json:"shortDesc"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
}

type UpdateMedicineRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ShortDesc string  `json:"shortDesc"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
}

type MedicineQuery struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

type MedicineResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ShortDesc string    `json:"shortDesc"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type MedicineListResponse struct {
	Data       []*MedicineResponse `json:"data"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Count      int                 `json:"count"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}
