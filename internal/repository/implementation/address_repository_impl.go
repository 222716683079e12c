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

type AddressRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AddressMapper
}

func NewAddressRepository(db *gorm.DB) contract.AddressRepository {
	return &AddressRepositoryImpl{
		db:     db,
		mapper: mapper.NewAddressMapper(),
	}
}

func (r *AddressRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AddressRepositoryImpl) Create(ctx context.Context, address *entity.Address) error {
	m := r.mapper.ToModel(address)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*address = *r.mapper.ToEntity(m)
	return nil
}

// Update writes only rows owned by the address's user; zero rows means not found.
func (r *AddressRepositoryImpl) Update(ctx context.Context, address *entity.Address) (int64, error) {
	m := r.mapper.ToModel(address)
	result := r.db.WithContext(ctx).Model(&model.Address{}).
		Where("id = ? AND user_id = ?", m.Id, m.UserId).
		Updates(map[string]interface{}{
			"label":          m.Label,
			"recipient_name": m.RecipientName,
			"phone":          m.Phone,
			"line1":          m.Line1,
			"line2":          m.Line2,
			"city":           m.City,
			"postal_code":    m.PostalCode,
			"is_default":     m.IsDefault,
		})
	return result.RowsAffected, result.Error
}

func (r *AddressRepositoryImpl) Delete(ctx context.Context, id, userId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.Address{})
	return result.RowsAffected, result.Error
}

func (r *AddressRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Address, error) {
	var m model.Address
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AddressRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Address, error) {
	var ms []*model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("is_default DESC, created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}

func (r *AddressRepositoryImpl) ClearDefault(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userId, true).
		Update("is_default", false).Error
}
