package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id              uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Items           []OrderItem `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`
	TotalPrice      float64     `gorm:"not null"`
	OrderStatus     string      `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus   string      `gorm:"type:varchar(20);not null;default:'pending'"`
	DeliveryDate    time.Time   `gorm:"not null"`
	ShippingAddress string      `gorm:"type:text;not null"`
	StripeSessionId string      `gorm:"type:varchar(255);index"`
	CreatedAt       time.Time   `gorm:"autoCreateTime"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId    uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineId uuid.UUID `gorm:"type:uuid;not null"`
	Quantity   int       `gorm:"not null"`
	UnitPrice  float64   `gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
