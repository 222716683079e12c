package service

import (
	"context"
	"encoding/json"
	"testing"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	routes       map[uuid.UUID][]entity.RouteWaypoint
	getRouteHits int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{routes: make(map[uuid.UUID][]entity.RouteWaypoint)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error { return nil }
func (r *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	return 1, nil
}
func (r *fakeOrderRepo) UpdatePayment(ctx context.Context, id uuid.UUID, paymentStatus string) error {
	return nil
}
func (r *fakeOrderRepo) SetPaymentDetails(ctx context.Context, id uuid.UUID, token, url string) error {
	return nil
}

func (r *fakeOrderRepo) SetRoute(ctx context.Context, id uuid.UUID, routeJSON []byte) error {
	var route []entity.RouteWaypoint
	if err := json.Unmarshal(routeJSON, &route); err != nil {
		return err
	}
	r.routes[id] = route
	return nil
}

func (r *fakeOrderRepo) GetRoute(ctx context.Context, id uuid.UUID) ([]entity.RouteWaypoint, error) {
	r.getRouteHits++
	return r.routes[id], nil
}

func (r *fakeOrderRepo) SumRevenue(ctx context.Context) (float64, error) { return 0, nil }

func TestEnsureRouteGeneratesAndPersists(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewDeliveryService(repo)
	orderId := uuid.New()

	route, err := svc.EnsureRoute(context.Background(), orderId)
	require.NoError(t, err)
	require.Len(t, route, routeWaypointCount)

	// The route starts at the depot and was written through to storage.
	assert.Equal(t, depotLat, route[0].Lat)
	assert.Equal(t, depotLng, route[0].Lng)
	assert.Equal(t, route, repo.routes[orderId])
}

func TestEnsureRouteIsIdempotent(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewDeliveryService(repo)
	orderId := uuid.New()

	first, err := svc.EnsureRoute(context.Background(), orderId)
	require.NoError(t, err)

	second, err := svc.EnsureRoute(context.Background(), orderId)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetRouteServesFromCache(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewDeliveryService(repo)
	orderId := uuid.New()

	_, err := svc.EnsureRoute(context.Background(), orderId)
	require.NoError(t, err)
	hits := repo.getRouteHits

	route, err := svc.GetRoute(context.Background(), orderId)
	require.NoError(t, err)
	assert.Len(t, route, routeWaypointCount)
	assert.Equal(t, hits, repo.getRouteHits, "cached read must not hit the repository")
}

func TestGenerateRouteIsDeterministic(t *testing.T) {
	orderId := uuid.New()

	assert.Equal(t, generateRoute(orderId), generateRoute(orderId))
	assert.NotEqual(t, generateRoute(orderId), generateRoute(uuid.New()))
}
