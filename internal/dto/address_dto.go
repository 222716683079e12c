package dto

import (
	"github.com/google/uuid"
)

type AddressRequest struct {
	Label         string  `json:"label"`
	RecipientName string  `json:"recipientName" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Line1         string  `json:"line1" validate:"required"`
	Line2         *string `json:"line2"`
	City          string  `json:"city" validate:"required"`
	PostalCode    string  `json:"postalCode"`
	IsDefault     bool    `json:"isDefault"`
}

type AddressResponse struct {
	Id            uuid.UUID `json:"id"`
	Label         string    `json:"label,omitempty"`
	RecipientName string    `json:"recipientName"`
	Phone         string    `json:"phone"`
	Line1         string    `json:"line1"`
	Line2         *string   `json:"line2,omitempty"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postalCode,omitempty"`
	IsDefault     bool      `json:"isDefault"`
}
