package contract

import (
	"context"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)

	// DecrementStock atomically reduces stock, failing when the remaining
	// stock would go negative. Returns rows affected.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int64, error)
}

type CartRepository interface {
	Upsert(ctx context.Context, item *entity.CartItem) error
	UpdateQuantity(ctx context.Context, userId, productId uuid.UUID, qty int) (int64, error)
	Remove(ctx context.Context, userId, productId uuid.UUID) error
	Clear(ctx context.Context, userId uuid.UUID) error
	FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.CartItem, error)
}
