package dto

import "github.com/google/uuid"

// Email job kinds carried on the in-process queue.
const (
	EmailJobOrderConfirmation = "order_confirmation"
	EmailJobOrderStatusUpdate = "order_status_update"
)

type EmailJobMessage struct {
	Kind    string    `json:"kind"`
	To      string    `json:"to"`
	OrderId uuid.UUID `json:"orderId"`
	Status  string    `json:"status,omitempty"`
	Total   float64   `json:"total,omitempty"`
}
