package dto

import "github.com/google/uuid"

type AddCartItemRequest struct {
	ProductId uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type CartItemResponse struct {
	ProductId uuid.UUID        `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
	LineTotal float64          `json:"lineTotal"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal float64            `json:"subtotal"`
}
