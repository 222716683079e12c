package mapper

import (
	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		SizeKg:      p.SizeKg,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		SizeKg:      p.SizeKg,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *ProductMapper) CartItemToEntity(c *model.CartItem) *entity.CartItem {
	if c == nil {
		return nil
	}
	return &entity.CartItem{
		Id:        c.Id,
		UserId:    c.UserId,
		ProductId: c.ProductId,
		Quantity:  c.Quantity,
		Product:   m.ToEntity(c.Product),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ProductMapper) CartItemToModel(c *entity.CartItem) *model.CartItem {
	if c == nil {
		return nil
	}
	return &model.CartItem{
		Id:        c.Id,
		UserId:    c.UserId,
		ProductId: c.ProductId,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ProductMapper) CartItemsToEntities(items []*model.CartItem) []*entity.CartItem {
	entities := make([]*entity.CartItem, len(items))
	for i, c := range items {
		entities[i] = m.CartItemToEntity(c)
	}
	return entities
}
