package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	SizeKg      float64   `gorm:"not null"`
	Price       float64   `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	ImageURL    *string   `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type CartItem struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int       `gorm:"not null;default:1"`
	Product   *Product  `gorm:"foreignKey:ProductId"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
