package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	SizeKg      float64 `json:"sizeKg" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}

type ProductResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SizeKg      float64   `json:"sizeKg"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
