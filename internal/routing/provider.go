package routing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrRouteUnavailable is returned when the provider cannot resolve a route.
var ErrRouteUnavailable = errors.New("routing: route unavailable")

// Provider resolves driving distance and raw car travel time between two
// postal codes. Travel time may be zero when the upstream omits a duration;
// callers must proceed with zero.
type Provider interface {
	Route(ctx context.Context, originPostal, destinationPostal string) (distanceKm, travelTimeHours decimal.Decimal, err error)
}

// FixedProvider returns a constant route, for development and tests.
type FixedProvider struct {
	DistanceKm      decimal.Decimal
	TravelTimeHours decimal.Decimal
}

// NewFixedProvider constructs a fixed provider.
func NewFixedProvider(distanceKm, travelTimeHours decimal.Decimal) (*FixedProvider, error) {
	if distanceKm.IsNegative() || travelTimeHours.IsNegative() {
		return nil, errors.New("routing: negative fixed route")
	}
	return &FixedProvider{DistanceKm: distanceKm, TravelTimeHours: travelTimeHours}, nil
}

// Route returns the configured constant route.
func (p *FixedProvider) Route(ctx context.Context, originPostal, destinationPostal string) (decimal.Decimal, decimal.Decimal, error) {
	_ = ctx
	_ = originPostal
	_ = destinationPostal
	return p.DistanceKm, p.TravelTimeHours, nil
}
