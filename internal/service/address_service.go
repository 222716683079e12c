package service

import (
	"context"
	"errors"
	"time"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("address not found")

type IAddressService interface {
	ListAddresses(ctx context.Context, userId uuid.UUID) ([]*dto.AddressResponse, error)
	CreateAddress(ctx context.Context, userId uuid.UUID, req *dto.AddressRequest) (*dto.AddressResponse, error)
	UpdateAddress(ctx context.Context, addressId, userId uuid.UUID, req *dto.AddressRequest) (*dto.AddressResponse, error)
	DeleteAddress(ctx context.Context, addressId, userId uuid.UUID) error
}

type addressService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAddressService(uowFactory unitofwork.RepositoryFactory) IAddressService {
	return &addressService{uowFactory: uowFactory}
}

func (s *addressService) ListAddresses(ctx context.Context, userId uuid.UUID) ([]*dto.AddressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	addresses, err := uow.AddressRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		res = append(res, toAddressResponse(a))
	}
	return res, nil
}

func (s *addressService) CreateAddress(ctx context.Context, userId uuid.UUID, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	address := &entity.Address{
		Id:            uuid.New(),
		UserId:        userId,
		Label:         req.Label,
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		Line1:         req.Line1,
		Line2:         req.Line2,
		City:          req.City,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.IsDefault {
		if err := uow.AddressRepository().ClearDefault(ctx, userId); err != nil {
			return nil, err
		}
	}

	if err := uow.AddressRepository().Create(ctx, address); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toAddressResponse(address), nil
}

func (s *addressService) UpdateAddress(ctx context.Context, addressId, userId uuid.UUID, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	address := &entity.Address{
		Id:            addressId,
		UserId:        userId,
		Label:         req.Label,
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		Line1:         req.Line1,
		Line2:         req.Line2,
		City:          req.City,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
		UpdatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.IsDefault {
		if err := uow.AddressRepository().ClearDefault(ctx, userId); err != nil {
			return nil, err
		}
	}

	affected, err := uow.AddressRepository().Update(ctx, address)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAddressNotFound
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toAddressResponse(address), nil
}

func (s *addressService) DeleteAddress(ctx context.Context, addressId, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.AddressRepository().Delete(ctx, addressId, userId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func toAddressResponse(a *entity.Address) *dto.AddressResponse {
	return &dto.AddressResponse{
		Id:            a.Id,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		PostalCode:    a.PostalCode,
		IsDefault:     a.IsDefault,
	}
}
