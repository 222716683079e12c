package mapper

import (
	"encoding/json"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"

	"gorm.io/datatypes"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	items := make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = entity.OrderItem{
			Id:          it.Id,
			OrderId:     it.OrderId,
			ProductId:   it.ProductId,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		}
	}
	return &entity.Order{
		Id:              o.Id,
		CustomerId:      o.CustomerId,
		Status:          entity.OrderStatus(o.Status),
		Source:          entity.OrderSource(o.Source),
		PaymentStatus:   entity.PaymentStatus(o.PaymentStatus),
		PaymentToken:    o.PaymentToken,
		PaymentURL:      o.PaymentURL,
		ReceiptNumber:   o.ReceiptNumber,
		DeliveryName:    o.DeliveryName,
		DeliveryPhone:   o.DeliveryPhone,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		DeliverySlot:    o.DeliverySlot,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	items := make([]model.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = model.OrderItem{
			Id:          it.Id,
			OrderId:     it.OrderId,
			ProductId:   it.ProductId,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		}
	}
	return &model.Order{
		Id:              o.Id,
		CustomerId:      o.CustomerId,
		Status:          string(o.Status),
		Source:          string(o.Source),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentToken:    o.PaymentToken,
		PaymentURL:      o.PaymentURL,
		ReceiptNumber:   o.ReceiptNumber,
		DeliveryName:    o.DeliveryName,
		DeliveryPhone:   o.DeliveryPhone,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		DeliverySlot:    o.DeliverySlot,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (m *OrderMapper) ToEntities(orders []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, len(orders))
	for i, o := range orders {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

// RouteToJSON serializes delivery waypoints for the jsonb column.
func (m *OrderMapper) RouteToJSON(route []entity.RouteWaypoint) datatypes.JSON {
	if len(route) == 0 {
		return nil
	}
	data, err := json.Marshal(route)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func (m *OrderMapper) RouteFromJSON(data datatypes.JSON) []entity.RouteWaypoint {
	if len(data) == 0 {
		return nil
	}
	var route []entity.RouteWaypoint
	if err := json.Unmarshal(data, &route); err != nil {
		return nil
	}
	return route
}
