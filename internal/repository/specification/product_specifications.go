package specification

import "gorm.io/gorm"

type ActiveProducts struct{}

func (s ActiveProducts) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type InStock struct{}

func (s InStock) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stock > 0")
}
