package mapper

import (
	"healthlink-be/internal/entity"
	"healthlink-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToModel(e *entity.Order) *model.Order {
	items := make([]model.OrderItem, len(e.Items))
	for i, it := range e.Items {
		items[i] = model.OrderItem{
			Id:         it.Id,
			OrderId:    it.OrderId,
			MedicineId: it.MedicineId,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		}
	}
	return &model.Order{
		Id:              e.Id,
		CustomerId:      e.CustomerId,
		Items:           items,
		TotalPrice:      e.TotalPrice,
		OrderStatus:     e.OrderStatus,
		PaymentStatus:   e.PaymentStatus,
		DeliveryDate:    e.DeliveryDate,
		ShippingAddress: e.ShippingAddress,
		StripeSessionId: e.StripeSessionId,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (m *OrderMapper) ToEntity(mo *model.Order) *entity.Order {
	items := make([]entity.OrderItem, len(mo.Items))
	for i, it := range mo.Items {
		items[i] = entity.OrderItem{
			Id:         it.Id,
			OrderId:    it.OrderId,
			MedicineId: it.MedicineId,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		}
	}
	return &entity.Order{
		Id:              mo.Id,
		CustomerId:      mo.CustomerId,
		Items:           items,
		TotalPrice:      mo.TotalPrice,
		OrderStatus:     mo.OrderStatus,
		PaymentStatus:   mo.PaymentStatus,
		DeliveryDate:    mo.DeliveryDate,
		ShippingAddress: mo.ShippingAddress,
		StripeSessionId: mo.StripeSessionId,
		CreatedAt:       mo.CreatedAt,
		UpdatedAt:       mo.UpdatedAt,
	}
}

func (m *OrderMapper) ToEntities(models []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
