package service

import (
	"context"
	"encoding/json"
	"time"

	"gasflow-be/internal/entity"
	"gasflow-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Depot coordinates the demo routes start from.
const (
	depotLat = -6.2000
	depotLng = 106.8166

	routeWaypointCount = 10
)

// IDeliveryService produces the canned delivery route a client animates
// while an order is out for delivery. There is no GPS feed; the route is
// generated once per order and served from cache afterwards.
type IDeliveryService interface {
	EnsureRoute(ctx context.Context, orderId uuid.UUID) ([]entity.RouteWaypoint, error)
	GetRoute(ctx context.Context, orderId uuid.UUID) ([]entity.RouteWaypoint, error)
}

type deliveryService struct {
	orderRepo contract.OrderRepository
	routes    *cache.Cache
}

func NewDeliveryService(orderRepo contract.OrderRepository) IDeliveryService {
	return &deliveryService{
		orderRepo: orderRepo,
		routes:    cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (s *deliveryService) EnsureRoute(ctx context.Context, orderId uuid.UUID) ([]entity.RouteWaypoint, error) {
	existing, err := s.orderRepo.GetRoute(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		s.routes.Set(orderId.String(), existing, cache.DefaultExpiration)
		return existing, nil
	}

	route := generateRoute(orderId)

	data, err := json.Marshal(route)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.SetRoute(ctx, orderId, data); err != nil {
		return nil, err
	}

	s.routes.Set(orderId.String(), route, cache.DefaultExpiration)
	return route, nil
}

func (s *deliveryService) GetRoute(ctx context.Context, orderId uuid.UUID) ([]entity.RouteWaypoint, error) {
	if x, found := s.routes.Get(orderId.String()); found {
		return x.([]entity.RouteWaypoint), nil
	}

	route, err := s.orderRepo.GetRoute(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if len(route) > 0 {
		s.routes.Set(orderId.String(), route, cache.DefaultExpiration)
	}
	return route, nil
}

// generateRoute interpolates a straight line from the depot to a
// destination derived deterministically from the order id, so the same
// order always animates the same path.
func generateRoute(orderId uuid.UUID) []entity.RouteWaypoint {
	b := orderId[:]
	destLat := depotLat + (float64(b[0])-128)/2560.0
	destLng := depotLng + (float64(b[1])-128)/2560.0

	route := make([]entity.RouteWaypoint, 0, routeWaypointCount)
	for i := 0; i < routeWaypointCount; i++ {
		t := float64(i) / float64(routeWaypointCount-1)
		route = append(route, entity.RouteWaypoint{
			Lat: depotLat + (destLat-depotLat)*t,
			Lng: depotLng + (destLng-depotLng)*t,
		})
	}
	return route
}
