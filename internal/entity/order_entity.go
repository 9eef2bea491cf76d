package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type OrderItem struct {
	Id         uuid.UUID
	OrderId    uuid.UUID
	MedicineId uuid.UUID
	Quantity   int
	UnitPrice  float64
}

type Order struct {
	Id              uuid.UUID
	CustomerId      uuid.UUID
	Items           []OrderItem
	TotalPrice      float64
	OrderStatus     string
	PaymentStatus   string
	DeliveryDate    time.Time
	ShippingAddress string
	StripeSessionId string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
