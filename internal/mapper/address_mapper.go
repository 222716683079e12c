package mapper

import (
	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"
)

type AddressMapper struct{}

func NewAddressMapper() *AddressMapper {
	return &AddressMapper{}
}

func (m *AddressMapper) ToEntity(a *model.Address) *entity.Address {
	if a == nil {
		return nil
	}
	return &entity.Address{
		Id:            a.Id,
		UserId:        a.UserId,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		PostalCode:    a.PostalCode,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (m *AddressMapper) ToModel(a *entity.Address) *model.Address {
	if a == nil {
		return nil
	}
	return &model.Address{
		Id:            a.Id,
		UserId:        a.UserId,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		PostalCode:    a.PostalCode,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (m *AddressMapper) ToEntities(addresses []*model.Address) []*entity.Address {
	entities := make([]*entity.Address, len(addresses))
	for i, a := range addresses {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
