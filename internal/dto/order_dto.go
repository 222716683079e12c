package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	AddressId    uuid.UUID `json:"addressId" validate:"required"`
	DeliveryDate string    `json:"deliveryDate" validate:"required"` // YYYY-MM-DD
	DeliverySlot string    `json:"deliverySlot" validate:"required,oneof=08:00-12:00 12:00-16:00 16:00-20:00"`
}

type CheckoutResponse struct {
	Order      OrderResponse `json:"order"`
	PaymentURL string        `json:"paymentUrl,omitempty"`
}

type OrderItemResponse struct {
	ProductId   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	UnitPrice   float64   `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
}

type OrderResponse struct {
	Id              uuid.UUID           `json:"id"`
	CustomerId      uuid.UUID           `json:"customerId"`
	Status          string              `json:"status"`
	Source          string              `json:"source"`
	PaymentStatus   string              `json:"paymentStatus"`
	PaymentURL      *string             `json:"paymentUrl,omitempty"`
	ReceiptNumber   *string             `json:"receiptNumber,omitempty"`
	DeliveryName    string              `json:"deliveryName,omitempty"`
	DeliveryPhone   string              `json:"deliveryPhone,omitempty"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`
	DeliveryDate    *time.Time          `json:"deliveryDate,omitempty"`
	DeliverySlot    *string             `json:"deliverySlot,omitempty"`
	Subtotal        float64             `json:"subtotal"`
	DeliveryFee     float64             `json:"deliveryFee"`
	Total           float64             `json:"total"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed out_for_delivery delivered cancelled"`
}

// POSSaleRequest records an in-store sale at the counter.
type POSSaleRequest struct {
	Items []POSSaleItem `json:"items" validate:"required,min=1,dive"`
	// Optional walk-in customer; the sale is booked against the admin
	// account when absent.
	CustomerId *uuid.UUID `json:"customerId"`
}

type POSSaleItem struct {
	ProductId uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// MidtransWebhookRequest is the payment gateway's notification payload.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

type DashboardResponse struct {
	TotalCustomers int64            `json:"totalCustomers"`
	TotalOrders    int64            `json:"totalOrders"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	Revenue        float64          `json:"revenue"`
}
