package dto

import "github.com/google/uuid"

// OrderReceiptMessage rides the in-process pipeline from order placement to
// the receipt mail worker.
type OrderReceiptMessage struct {
	OrderId uuid.UUID `json:"order_id"`
}
