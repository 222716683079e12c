package implementation

import (
	"context"
	"errors"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/mapper"
	"gasflow-be/internal/model"
	"gasflow-be/internal/repository/contract"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var ms []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...).Order("size_kg ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *ProductRepositoryImpl) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return result.RowsAffected, result.Error
}

type CartRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewCartRepository(db *gorm.DB) contract.CartRepository {
	return &CartRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *CartRepositoryImpl) Upsert(ctx context.Context, item *entity.CartItem) error {
	var existing model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserId, item.ProductId).
		First(&existing).Error
	if err == nil {
		existing.Quantity += item.Quantity
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(r.mapper.CartItemToModel(item)).Error
}

func (r *CartRepositoryImpl) UpdateQuantity(ctx context.Context, userId, productId uuid.UUID, qty int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userId, productId).
		Update("quantity", qty)
	return result.RowsAffected, result.Error
}

func (r *CartRepositoryImpl) Remove(ctx context.Context, userId, productId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userId, productId).
		Delete(&model.CartItem{}).Error
}

func (r *CartRepositoryImpl) Clear(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.CartItem{}).Error
}

func (r *CartRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.CartItem, error) {
	var ms []*model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userId).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.CartItemsToEntities(ms), nil
}
