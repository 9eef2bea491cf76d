package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"
	"healthlink-be/pkg/events"
	pktNats "healthlink-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
)

// CheckoutSessions is the slice of the Stripe API the payment flow touches.
// Satisfied by client.API.CheckoutSessions; swapped for a stub in tests.
type CheckoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type IPaymentService interface {
	CreateCheckoutSession(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutSessionRequest) (*dto.CheckoutSessionResponse, error)
	HandlePaymentSuccess(ctx context.Context, sessionId string) (*dto.PaymentSuccessResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       CheckoutSessions
	frontendURL    string
	eventPublisher *pktNats.Publisher
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, sessions CheckoutSessions, frontendURL string, eventPublisher *pktNats.Publisher) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		frontendURL:    frontendURL,
		eventPublisher: eventPublisher,
	}
}

// CreateCheckoutSession builds Stripe line items from the order's persisted
// items. Amounts come from the stored unit prices, never from the client.
func (s *paymentService) CreateCheckoutSession(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	if order.CustomerId != userId {
		return nil, apperror.AccessDenied("You do not have access to this order")
	}
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return nil, apperror.Validation("Order is already paid")
	}

	customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.CustomerId})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.MedicineId
	}
	medicines, err := uow.MedicineRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.Medicine, len(medicines))
	for _, m := range medicines {
		byId[m.Id] = m
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Items))
	for _, item := range order.Items {
		name := "Medicine"
		description := ""
		if m, ok := byId[item.MedicineId]; ok {
			name = m.Name
			description = m.ShortDesc
		}
		if description == "" {
			description = fmt.Sprintf("Medicine: %s", name)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyINR)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(name),
					Description: stripe.String(description),
				},
				UnitAmount: stripe.Int64(int64(math.Round(item.UnitPrice * 100))),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(s.frontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.frontendURL + "/cancel"),
	}
	params.AddMetadata("orderId", order.Id.String())
	params.AddMetadata("address", order.ShippingAddress)
	params.AddMetadata("orderTotal", fmt.Sprintf("%.2f", order.TotalPrice))
	if customer != nil {
		params.AddMetadata("customerEmail", customer.Email)
	}

	session, err := s.sessions.New(params)
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutSessionResponse{Id: session.ID}, nil
}

// HandlePaymentSuccess is the post-payment callback: retrieve the session,
// and if Stripe says paid, confirm the order it was created for.
func (s *paymentService) HandlePaymentSuccess(ctx context.Context, sessionId string) (*dto.PaymentSuccessResponse, error) {
	session, err := s.sessions.Get(sessionId, nil)
	if err != nil {
		return nil, err
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return &dto.PaymentSuccessResponse{
			Success: false,
			Message: "Payment not completed",
		}, nil
	}

	orderId, err := uuid.Parse(session.Metadata["orderId"])
	if err != nil {
		return nil, apperror.Validation("session has no order reference")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}

	order.OrderStatus = entity.OrderStatusConfirmed
	order.PaymentStatus = entity.PaymentStatusPaid
	order.StripeSessionId = sessionId
	order.UpdatedAt = time.Now()

	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.NewEvent(events.TypeOrderPaid, map[string]interface{}{
			"order_id": order.Id.String(),
			"user_id":  order.CustomerId.String(),
			"total":    order.TotalPrice,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish ORDER_PAID event: %v\n", err)
		}
	}

	return &dto.PaymentSuccessResponse{
		Success: true,
		Message: "Payment successful",
		OrderId: order.Id,
	}, nil
}
