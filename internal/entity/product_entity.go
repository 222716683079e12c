package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is one sellable LPG cylinder SKU.
type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	SizeKg      float64
	Price       float64
	Stock       int
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CartItem struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ProductId uuid.UUID
	Quantity  int
	Product   *Product
	CreatedAt time.Time
	UpdatedAt time.Time
}
