package service

import (
	"context"
	"testing"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMedicine(t *testing.T, factory *fakeFactory, name string, price float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	repo := factory.NewUnitOfWork(context.Background()).MedicineRepository()
	require.NoError(t, repo.Create(context.Background(), &entity.Medicine{
		Id:       id,
		Name:     name,
		Price:    price,
		Category: "General",
	}))
	return id
}

func TestCreateOrderComputesTotalServerSide(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOrderService(factory, nil, nil)
	customerId := uuid.New()

	paracetamol := seedMedicine(t, factory, "Paracetamol", 2.50)
	syrup := seedMedicine(t, factory, "Cough Syrup", 3.75)

	res, err := svc.Create(context.Background(), customerId, &dto.CreateOrderRequest{
		Cart: []dto.CartItem{
			{Id: paracetamol, Qty: 2},
			{Id: syrup, Qty: 1},
		},
		Address: "123 Main Street",
	})
	require.NoError(t, err)

	assert.Equal(t, 8.75, res.TotalPrice)
	assert.Equal(t, entity.OrderStatusPending, res.OrderStatus)
	assert.Equal(t, entity.PaymentStatusPending, res.PaymentStatus)
	require.Len(t, res.Items, 2)

	byName := map[string]*dto.OrderItemResponse{}
	for _, item := range res.Items {
		byName[item.Name] = item
	}
	require.Contains(t, byName, "Paracetamol")
	assert.Equal(t, 2, byName["Paracetamol"].Quantity)
	assert.Equal(t, 2.50, byName["Paracetamol"].UnitPrice)
}

func TestCreateOrderUnknownMedicine(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOrderService(factory, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateOrderRequest{
		Cart:    []dto.CartItem{{Id: uuid.New(), Qty: 1}},
		Address: "123 Main Street",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCreateOrderRejectsBadDeliveryDate(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOrderService(factory, nil, nil)
	medicine := seedMedicine(t, factory, "Paracetamol", 2.50)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateOrderRequest{
		Cart:         []dto.CartItem{{Id: medicine, Qty: 1}},
		Address:      "123 Main Street",
		DeliveryDate: "tomorrow",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGetOrderOwnerOnly(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOrderService(factory, nil, nil)
	customerId := uuid.New()
	medicine := seedMedicine(t, factory, "Paracetamol", 2.50)

	res, err := svc.Create(context.Background(), customerId, &dto.CreateOrderRequest{
		Cart:    []dto.CartItem{{Id: medicine, Qty: 1}},
		Address: "123 Main Street",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), customerId, res.Id)
	require.NoError(t, err)
	assert.Equal(t, res.Id, got.Id)

	_, err = svc.Get(context.Background(), uuid.New(), res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindAccessDenied))

	_, err = svc.Get(context.Background(), customerId, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOrderService(factory, nil, nil)
	customerId := uuid.New()
	medicine := seedMedicine(t, factory, "Paracetamol", 2.50)

	first, err := svc.Create(context.Background(), customerId, &dto.CreateOrderRequest{
		Cart:    []dto.CartItem{{Id: medicine, Qty: 1}},
		Address: "123 Main Street",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), customerId, &dto.CreateOrderRequest{
		Cart:    []dto.CartItem{{Id: medicine, Qty: 2}},
		Address: "123 Main Street",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), customerId, first.Id)
	require.NoError(t, err)

	all, err := svc.ListByUser(context.Background(), customerId, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
	assert.Equal(t, int64(2), all.Pagination.Total)

	cancelled, err := svc.ListByUser(context.Background(), customerId, entity.OrderStatusCancelled, 1, 10)
	require.NoError(t, err)
	require.Len(t, cancelled.Data, 1)
	assert.Equal(t, first.Id, cancelled.Data[0].Id)
}

func TestCancelOrderGuards(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOrderService(factory, nil, nil)
	customerId := uuid.New()
	medicine := seedMedicine(t, factory, "Paracetamol", 2.50)

	res, err := svc.Create(context.Background(), customerId, &dto.CreateOrderRequest{
		Cart:    []dto.CartItem{{Id: medicine, Qty: 1}},
		Address: "123 Main Street",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), customerId, res.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.OrderStatus)

	_, err = svc.Cancel(context.Background(), customerId, res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.Cancel(context.Background(), uuid.New(), res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindAccessDenied))
}
