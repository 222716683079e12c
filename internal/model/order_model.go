package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Order struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId    uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_customer_created,priority:1"`
	Status        string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	Source        string    `gorm:"type:varchar(10);not null;default:'online'"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentToken  *string   `gorm:"type:varchar(255)"`
	PaymentURL    *string   `gorm:"type:text"`
	ReceiptNumber *string   `gorm:"type:varchar(50);uniqueIndex"`

	DeliveryName    string `gorm:"type:varchar(255)"`
	DeliveryPhone   string `gorm:"type:varchar(30)"`
	DeliveryAddress string `gorm:"type:text"`

	DeliveryDate *time.Time
	DeliverySlot *string `gorm:"type:varchar(20)"`

	// Canned waypoints for the client-side tracking animation.
	Route datatypes.JSON `gorm:"type:jsonb"`

	Subtotal    float64 `gorm:"not null"`
	DeliveryFee float64 `gorm:"not null;default:0"`
	Total       float64 `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderId"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_orders_customer_created,priority:2"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductId   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	UnitPrice   float64   `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
