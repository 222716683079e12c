package entity

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Label         string
	RecipientName string
	Phone         string
	Line1         string
	Line2         *string
	City          string
	PostalCode    string
	IsDefault     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
