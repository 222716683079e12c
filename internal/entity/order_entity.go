package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string
type OrderSource string
type PaymentStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"

	OrderSourceOnline OrderSource = "online"
	OrderSourcePOS    OrderSource = "pos"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// validTransitions pins the order lifecycle. Cancellation is only
// reachable from pending; delivered and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Order struct {
	Id            uuid.UUID
	CustomerId    uuid.UUID
	Status        OrderStatus
	Source        OrderSource
	PaymentStatus PaymentStatus
	PaymentToken  *string
	PaymentURL    *string
	ReceiptNumber *string

	// Delivery address snapshot, copied from the address book at checkout
	// so later address edits do not rewrite order history.
	DeliveryName    string
	DeliveryPhone   string
	DeliveryAddress string

	DeliveryDate *time.Time
	DeliverySlot *string // e.g. "08:00-12:00"

	Subtotal    float64
	DeliveryFee float64
	Total       float64

	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	Id          uuid.UUID
	OrderId     uuid.UUID
	ProductId   uuid.UUID
	ProductName string
	UnitPrice   float64
	Quantity    int
}

// RouteWaypoint is one point of the canned delivery route used by the
// client-side tracking animation. No real GPS feed exists.
type RouteWaypoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
