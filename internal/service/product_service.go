package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/repository/specification"
	"gasflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "gasflow:catalog:active"
	catalogCacheTTL = 5 * time.Minute
)

var ErrProductNotFound = errors.New("product not found")

type IProductService interface {
	ListCatalog(ctx context.Context) ([]*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
	log        logger.ILogger
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, log logger.ILogger) IProductService {
	return &productService{
		uowFactory: uowFactory,
		rdb:        rdb,
		log:        log,
	}
}

// ListCatalog serves the storefront. Cache-aside over Redis: the active
// catalog rarely changes and is read on every page load.
func (s *productService) ListCatalog(ctx context.Context) ([]*dto.ProductResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var res []*dto.ProductResponse
			if err := json.Unmarshal(cached, &res); err == nil {
				return res, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specification.ActiveProducts{})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(res); err == nil {
			if err := s.rdb.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
				s.log.Warn("product", "failed to cache catalog", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return res, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || product == nil {
		return nil, ErrProductNotFound
	}
	return toProductResponse(product), nil
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		SizeKg:      req.SizeKg,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return toProductResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || product == nil {
		return nil, ErrProductNotFound
	}

	product.Name = req.Name
	product.Description = req.Description
	product.SizeKg = req.SizeKg
	product.Price = req.Price
	product.Stock = req.Stock
	product.ImageURL = req.ImageURL
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || product == nil {
		return ErrProductNotFound
	}

	if err := uow.ProductRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	return nil
}

func (s *productService) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.log.Warn("product", "failed to invalidate catalog cache", map[string]interface{}{"error": err.Error()})
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		SizeKg:      p.SizeKg,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}
