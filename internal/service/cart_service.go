package service

import (
	"context"
	"errors"
	"time"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/specification"
	"gasflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type ICartService interface {
	GetCart(ctx context.Context, userId uuid.UUID) (*dto.CartResponse, error)
	AddItem(ctx context.Context, userId uuid.UUID, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, userId, productId uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userId, productId uuid.UUID) (*dto.CartResponse, error)
}

type cartService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCartService(uowFactory unitofwork.RepositoryFactory) ICartService {
	return &cartService{uowFactory: uowFactory}
}

func (s *cartService) GetCart(ctx context.Context, userId uuid.UUID) (*dto.CartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := uow.CartRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toCartResponse(items), nil
}

func (s *cartService) AddItem(ctx context.Context, userId uuid.UUID, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: req.ProductId}, specification.ActiveProducts{})
	if err != nil || product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < req.Quantity {
		return nil, errors.New("insufficient stock")
	}

	item := &entity.CartItem{
		Id:        uuid.New(),
		UserId:    userId,
		ProductId: req.ProductId,
		Quantity:  req.Quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.CartRepository().Upsert(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userId)
}

func (s *cartService) UpdateItem(ctx context.Context, userId, productId uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.CartRepository().UpdateQuantity(ctx, userId, productId, req.Quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}

	return s.GetCart(ctx, userId)
}

func (s *cartService) RemoveItem(ctx context.Context, userId, productId uuid.UUID) (*dto.CartResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.CartRepository().Remove(ctx, userId, productId); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userId)
}

func toCartResponse(items []*entity.CartItem) *dto.CartResponse {
	res := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items))}
	for _, item := range items {
		line := dto.CartItemResponse{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.Product = toProductResponse(item.Product)
			line.LineTotal = item.Product.Price * float64(item.Quantity)
		}
		res.Items = append(res.Items, line)
		res.Subtotal += line.LineTotal
	}
	return res
}
