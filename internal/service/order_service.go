package service

import (
	"context"
	"encoding/json"
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
)

type IOrderService interface {
	Create(ctx context.Context, customerId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.OrderResponse, error)
	ListByUser(ctx context.Context, userId uuid.UUID, status string, page, limit int) (*dto.OrderListResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.OrderResponse, error)
}

type orderService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewOrderService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService, eventPublisher *pktNats.Publisher) IOrderService {
	return &orderService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// Create validates every cart line against the catalog and computes the
// total server-side. Client-supplied prices are never trusted.
func (s *orderService) Create(ctx context.Context, customerId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	orderId := uuid.New()
	var totalPrice float64
	items := make([]entity.OrderItem, 0, len(req.Cart))
	names := make(map[uuid.UUID]string, len(req.Cart))

	for _, line := range req.Cart {
		medicine, err := uow.MedicineRepository().FindOne(ctx, specification.ByID{ID: line.Id})
		if err != nil {
			return nil, err
		}
		if medicine == nil {
			return nil, apperror.NotFound(fmt.Sprintf("Medicine with ID %s not found", line.Id))
		}

		totalPrice += medicine.Price * float64(line.Qty)
		names[medicine.Id] = medicine.Name
		items = append(items, entity.OrderItem{
			Id:         uuid.New(),
			OrderId:    orderId,
			MedicineId: medicine.Id,
			Quantity:   line.Qty,
			UnitPrice:  medicine.Price,
		})
	}
	totalPrice = math.Round(totalPrice*100) / 100

	deliveryDate := time.Now().Add(7 * 24 * time.Hour)
	if req.DeliveryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, apperror.Validation("deliveryDate must be YYYY-MM-DD")
		}
		deliveryDate = parsed
	}

	order := &entity.Order{
		Id:              orderId,
		CustomerId:      customerId,
		Items:           items,
		TotalPrice:      totalPrice,
		OrderStatus:     entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		DeliveryDate:    deliveryDate,
		ShippingAddress: req.Address,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Receipt mail rides the in-process pipeline so order placement never
	// waits on SMTP.
	if s.publisherService != nil {
		msgPayload, err := json.Marshal(dto.OrderReceiptMessage{OrderId: order.Id})
		if err == nil {
			if err := s.publisherService.Publish(ctx, msgPayload); err != nil {
				fmt.Printf("[WARN] Failed to queue order receipt: %v\n", err)
			}
		}
	}

	if s.eventPublisher != nil {
		event := events.NewEvent(events.TypeOrderPlaced, map[string]interface{}{
			"order_id": order.Id.String(),
			"user_id":  order.CustomerId.String(),
			"total":    order.TotalPrice,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish ORDER_PLACED event: %v\n", err)
		}
	}

	return orderToResponse(order, names), nil
}

func (s *orderService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	if order.CustomerId != userId {
		return nil, apperror.AccessDenied("You do not have access to this order")
	}
	return orderToResponse(order, s.medicineNames(ctx, order)), nil
}

func (s *orderService) ListByUser(ctx context.Context, userId uuid.UUID, status string, page, limit int) (*dto.OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.FilterBy{Field: "customer_id", Value: userId},
	}
	if status != "" {
		specs = append(specs, specification.FilterBy{Field: "order_status", Value: status})
	}

	total, err := uow.OrderRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	orders, err := uow.OrderRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = orderToResponse(order, s.medicineNames(ctx, order))
	}

	return &dto.OrderListResponse{
		Data: responses,
		Pagination: &dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *orderService) Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}
	if order.CustomerId != userId {
		return nil, apperror.AccessDenied("You do not have access to this order")
	}
	if order.OrderStatus == entity.OrderStatusDelivered {
		return nil, apperror.Validation("Cannot cancel delivered order")
	}
	if order.OrderStatus == entity.OrderStatusCancelled {
		return nil, apperror.Validation("Order Already cancelled")
	}

	order.OrderStatus = entity.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return orderToResponse(order, s.medicineNames(ctx, order)), nil
}

// medicineNames resolves display names for the order's line items. A lookup
// failure just leaves names blank; it never fails the order call.
func (s *orderService) medicineNames(ctx context.Context, order *entity.Order) map[uuid.UUID]string {
	ids := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.MedicineId
	}
	if len(ids) == 0 {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	medicines, err := uow.MedicineRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil
	}

	names := make(map[uuid.UUID]string, len(medicines))
	for _, m := range medicines {
		names[m.Id] = m.Name
	}
	return names
}
