package service

import (
	"context"
	"encoding/json"
	"log"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/pkg/mailer"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the order pipeline and mails receipts. It runs for
// the life of the process.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.OrderReceiptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal receipt message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Sending receipt for OrderId: %s", payload.OrderId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: payload.OrderId})
	if err != nil {
		log.Printf("[ERROR] Failed to load order %s: %v", payload.OrderId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if order == nil {
		log.Printf("[ERROR] Order not found: %s", payload.OrderId)
		msg.Ack() // Order deleted? Ack.
		return
	}

	customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.CustomerId})
	if err != nil {
		log.Printf("[ERROR] Failed to load customer %s: %v", order.CustomerId, err)
		msg.Nack()
		return
	}
	if customer == nil {
		log.Printf("[ERROR] Customer not found for order %s", payload.OrderId)
		msg.Ack()
		return
	}

	if err := cs.emailService.SendOrderReceipt(customer.Email, order.Id.String(), order.TotalPrice); err != nil {
		log.Printf("[ERROR] Failed to send receipt for order %s: %v", payload.OrderId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Receipt sent for OrderId: %s", payload.OrderId)
	msg.Ack()
}
