package entity

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending straight to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"confirmed to out for delivery", OrderStatusConfirmed, OrderStatusOutForDelivery, true},
		{"confirmed to cancelled", OrderStatusConfirmed, OrderStatusCancelled, true},
		{"confirmed back to pending", OrderStatusConfirmed, OrderStatusPending, false},
		{"out for delivery to delivered", OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{"out for delivery cancelled", OrderStatusOutForDelivery, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusConfirmed, false},
		{"same status is not a transition", OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
