package implementation

import (
	"context"
	"errors"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/mapper"
	"gasflow-be/internal/model"
	"gasflow-be/internal/repository/contract"
	"gasflow-be/internal/repository/scope"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Items"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var ms []*model.Order
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Items"), specs...).Scopes(scope.OrderByCreatedDesc)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *OrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Order{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *OrderRepositoryImpl) UpdatePayment(ctx context.Context, id uuid.UUID, paymentStatus string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("payment_status", paymentStatus).Error
}

func (r *OrderRepositoryImpl) SetPaymentDetails(ctx context.Context, id uuid.UUID, token, url string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_token": token,
			"payment_url":   url,
		}).Error
}

func (r *OrderRepositoryImpl) SetRoute(ctx context.Context, id uuid.UUID, routeJSON []byte) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("route", datatypes.JSON(routeJSON)).Error
}

func (r *OrderRepositoryImpl) GetRoute(ctx context.Context, id uuid.UUID) ([]entity.RouteWaypoint, error) {
	var m model.Order
	err := r.db.WithContext(ctx).Select("route").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RouteFromJSON(m.Route), nil
}

func (r *OrderRepositoryImpl) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", string(entity.PaymentStatusPaid)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}
