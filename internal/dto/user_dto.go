package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}
