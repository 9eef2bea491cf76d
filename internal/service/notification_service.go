package service

import (
	"context"
	"fmt"
	"strings"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/logger"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"
	"healthlink-be/pkg/events"
	pktNats "healthlink-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, realtime notifications disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry the stream prefix
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	switch typeCode {
	case events.TypeUserRegistered:
		fullName, _ := payload["full_name"].(string)
		return s.notify(ctx, payloadUserID(payload, "user_id"), typeCode,
			"Welcome to HealthLink",
			fmt.Sprintf("Hi %s, your account is ready.", fullName))

	case events.TypeAppointmentBooked:
		date, _ := payload["date"].(string)
		timeSlot, _ := payload["time"].(string)
		if err := s.notify(ctx, payloadUserID(payload, "patient_id"), typeCode,
			"Appointment booked",
			fmt.Sprintf("Your appointment on %s at %s is confirmed.", date, timeSlot)); err != nil {
			return err
		}
		return s.notify(ctx, payloadUserID(payload, "doctor_id"), typeCode,
			"New appointment",
			fmt.Sprintf("A patient booked the %s slot on %s.", timeSlot, date))

	case events.TypeAppointmentCancelled:
		date, _ := payload["date"].(string)
		timeSlot, _ := payload["time"].(string)
		if err := s.notify(ctx, payloadUserID(payload, "patient_id"), typeCode,
			"Appointment cancelled",
			fmt.Sprintf("Your appointment on %s at %s was cancelled.", date, timeSlot)); err != nil {
			return err
		}
		return s.notify(ctx, payloadUserID(payload, "doctor_id"), typeCode,
			"Appointment cancelled",
			fmt.Sprintf("The %s slot on %s is free again.", timeSlot, date))

	case events.TypeOrderPlaced:
		orderID, _ := payload["order_id"].(string)
		return s.notify(ctx, payloadUserID(payload, "user_id"), typeCode,
			"Order placed",
			fmt.Sprintf("Order %s has been placed and is awaiting payment.", orderID))

	case events.TypeOrderPaid:
		orderID, _ := payload["order_id"].(string)
		return s.notify(ctx, payloadUserID(payload, "user_id"), typeCode,
			"Payment received",
			fmt.Sprintf("Payment for order %s was successful.", orderID))

	default:
		// Unknown codes are acked, not retried.
		s.logger.Warn("NotificationService", fmt.Sprintf("No handler for event code '%s'", typeCode), nil)
		return nil
	}
}

// notify persists a notification row and pushes it over the hub. A missing
// target id in the payload is logged and skipped.
func (s *NotificationService) notify(ctx context.Context, userID uuid.UUID, typeCode, title, message string) error {
	if userID == uuid.Nil {
		s.logger.Warn("NotificationService", "Event payload missing target user id", map[string]interface{}{"type": typeCode})
		return nil
	}

	notification := entity.Notification{
		Id:      uuid.New(),
		UserId:  userID,
		Type:    typeCode,
		Title:   title,
		Message: message,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notification); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notification)
	}
	return nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.NotificationRepository().Count(ctx, specification.FilterBy{Field: "user_id", Value: userID})
	if err != nil {
		return nil, 0, err
	}

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.FilterBy{Field: "user_id", Value: userID},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().Count(ctx,
		specification.FilterBy{Field: "user_id", Value: userID},
		specification.FilterBy{Field: "is_read", Value: false},
	)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userID)
}

func payloadUserID(payload map[string]interface{}, key string) uuid.UUID {
	raw, _ := payload[key].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
