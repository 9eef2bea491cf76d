package unitofwork

import (
	"context"

	"healthlink-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AppointmentRepository() contract.AppointmentRepository
	MedicineRepository() contract.MedicineRepository
	OrderRepository() contract.OrderRepository
	ChatRepository() contract.ChatRepository
	NotificationRepository() contract.NotificationRepository
}
