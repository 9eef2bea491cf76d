package dto

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	Id  uuid.UUID `json:"id" validate:"required"`
	Qty int       `json:"qty" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Cart         []CartItem `json:"cart" validate:"required,min=1,dive"`
	Address      string     `json:"address" validate:"required"`
	DeliveryDate string     `json:"deliveryDate"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	MedicineId uuid.UUID `json:"medicineId"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unitPrice"`
}

type OrderResponse struct {
	Id              uuid.UUID            `json:"id"`
	CustomerId      uuid.UUID            `json:"customerId"`
	Items           []*OrderItemResponse `json:"orderItems"`
	TotalPrice      float64              `json:"totalPrice"`
	OrderStatus     string               `json:"orderStatus"`
	PaymentStatus   string               `json:"paymentStatus"`
	DeliveryDate    time.Time            `json:"deliveryDate"`
	ShippingAddress string               `json:"shippingAddress"`
	CreatedAt       time.Time            `json:"createdAt"`
}

type OrderListResponse struct {
	Data       []*OrderResponse `json:"data"`
	Pagination *Pagination      `json:"pagination"`
}
