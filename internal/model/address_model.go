package model

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Label         string    `gorm:"type:varchar(50)"`
	RecipientName string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(30);not null"`
	Line1         string    `gorm:"type:varchar(255);not null"`
	Line2         *string   `gorm:"type:varchar(255)"`
	City          string    `gorm:"type:varchar(100);not null"`
	PostalCode    string    `gorm:"type:varchar(20)"`
	IsDefault     bool      `gorm:"default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Address) TableName() string {
	return "addresses"
}
