package dto

import "github.com/google/uuid"

type CreateCheckoutSessionRequest struct {
	OrderId uuid.UUID `json:"orderId" validate:"required"`
}

type CheckoutSessionResponse struct {
	Id string `json:"id"`
}

type PaymentSuccessResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	OrderId uuid.UUID `json:"orderId,omitempty"`
}
