package contract

import (
	"context"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateStatus moves an order to a new status. The transition has been
	// validated by the service; this is the bare write.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, paymentStatus string) error
	SetPaymentDetails(ctx context.Context, id uuid.UUID, token, url string) error
	SetRoute(ctx context.Context, id uuid.UUID, routeJSON []byte) error
	GetRoute(ctx context.Context, id uuid.UUID) ([]entity.RouteWaypoint, error)

	// SumRevenue totals paid orders for the dashboard.
	SumRevenue(ctx context.Context) (float64, error)
}

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	Update(ctx context.Context, address *entity.Address) (int64, error)
	Delete(ctx context.Context, id, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Address, error)
	FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Address, error)
	ClearDefault(ctx context.Context, userId uuid.UUID) error
}
