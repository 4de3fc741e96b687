package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	company "movequote-cloud/internal/company/domain"
	pricing "movequote-cloud/internal/pricing/domain"
	quoting "movequote-cloud/internal/quoting/domain"
	"movequote-cloud/internal/routing"
)

var (
	// ErrMissingVolume is returned when neither a volume, an apartment size
	// nor an inventory list is supplied.
	ErrMissingVolume = errors.New("quote service: volume_m3, apartment_size or inventory required")
	// ErrUnknownApartmentSize is returned for an unrecognized apartment size tag.
	ErrUnknownApartmentSize = errors.New("quote service: unknown apartment size")
)

// apartmentSizeVolumes maps coarse apartment sizes to default volume estimates.
var apartmentSizeVolumes = map[string]decimal.Decimal{
	"studio": decimal.NewFromInt(15),
	"1br":    decimal.NewFromInt(25),
	"2br":    decimal.NewFromInt(40),
	"3br":    decimal.NewFromInt(60),
	"4br+":   decimal.NewFromInt(80),
}

// CompanyRepository loads tenant companies.
type CompanyRepository interface {
	FindBySlug(ctx context.Context, tenantID, slug string) (*company.Company, error)
}

// QuoteRepository persists quote records.
type QuoteRepository interface {
	Create(ctx context.Context, quote *quoting.Quote) error
	Get(ctx context.Context, tenantID, id string) (*quoting.Quote, error)
	List(ctx context.Context, tenantID string, limit int) ([]*quoting.Quote, error)
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// CalculateInput is the instant-estimate request.
type CalculateInput struct {
	CompanySlug       string
	OriginPostal      string
	DestinationPostal string
	ApartmentSize     string
	VolumeM3          decimal.Decimal
	OriginFloor       int
	OriginElevator    bool
	DestFloor         int
	DestElevator      bool
	Services          []pricing.Service
	Inventory         []pricing.InventoryItem
	MoveDate          time.Time
}

// SubmitInput is the full quote submission.
type SubmitInput struct {
	CalculateInput
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// QuoteService orchestrates rate resolution, routing and the pricing engine.
type QuoteService struct {
	quotes        QuoteRepository
	companies     CompanyRepository
	routes        routing.Provider
	clock         Clock
	logger        *log.Logger
	baseOverrides map[string]any
}

// Option customizes the service.
type Option func(*QuoteService)

// WithBaseOverrides layers server-level rate overrides under every company's
// own overrides.
func WithBaseOverrides(overrides map[string]any) Option {
	return func(s *QuoteService) {
		s.baseOverrides = overrides
	}
}

// NewQuoteService constructs the service.
func NewQuoteService(quotes QuoteRepository, companies CompanyRepository, routes routing.Provider, clock Clock, logger *log.Logger, opts ...Option) (*QuoteService, error) {
	if routes == nil {
		return nil, errors.New("quote service: nil route provider")
	}
	if clock == nil {
		return nil, errors.New("quote service: nil clock")
	}
	service := &QuoteService{quotes: quotes, companies: companies, routes: routes, clock: clock, logger: logger}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Calculate produces an instant estimate without persisting anything.
func (s *QuoteService) Calculate(ctx context.Context, tenantID string, input CalculateInput) (*pricing.QuoteResult, error) {
	engine, err := s.engineFor(ctx, tenantID, input.CompanySlug)
	if err != nil {
		return nil, err
	}

	distance, travel, err := s.routes.Route(ctx, input.OriginPostal, input.DestinationPostal)
	if err != nil {
		return nil, err
	}

	volume, err := resolveVolume(input)
	if err != nil {
		return nil, err
	}

	return engine.Quote(pricing.MoveRequest{
		VolumeM3:        volume,
		DistanceKm:      distance,
		TravelTimeHours: travel,
		Origin:          pricing.Endpoint{PostalCode: input.OriginPostal, Floor: input.OriginFloor, HasElevator: input.OriginElevator},
		Destination:     pricing.Endpoint{PostalCode: input.DestinationPostal, Floor: input.DestFloor, HasElevator: input.DestElevator},
		Services:        input.Services,
		Inventory:       input.Inventory,
		MoveDate:        input.MoveDate,
	})
}

// Submit calculates and persists a full quote record.
func (s *QuoteService) Submit(ctx context.Context, tenantID string, input SubmitInput) (*quoting.Quote, error) {
	if s.quotes == nil {
		return nil, errors.New("quote service: nil quote repository")
	}
	if input.CustomerEmail == "" {
		return nil, errors.New("quote service: customer email required")
	}

	result, err := s.Calculate(ctx, tenantID, input.CalculateInput)
	if err != nil {
		return nil, err
	}

	quote := &quoting.Quote{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		CompanySlug:  input.CompanySlug,
		CustomerName: input.CustomerName,
		CustomerMail: input.CustomerEmail,
		CustomerTel:  input.CustomerPhone,
		Origin:       pricing.Endpoint{PostalCode: input.OriginPostal, Floor: input.OriginFloor, HasElevator: input.OriginElevator},
		Destination:  pricing.Endpoint{PostalCode: input.DestinationPostal, Floor: input.DestFloor, HasElevator: input.DestElevator},
		DistanceKm:   result.DistanceKm,
		VolumeM3:     result.VolumeM3,
		MoveDate:     input.MoveDate,
		Inventory:    input.Inventory,
		Services:     input.Services,
		Result:       *result,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Printf("quote submitted: tenant=%s id=%s net=(%s, %s)", tenantID, quote.ID, result.NetMin, result.NetMax)
	}
	return quote, nil
}

// Get returns one quote for the tenant.
func (s *QuoteService) Get(ctx context.Context, tenantID, id string) (*quoting.Quote, error) {
	if s.quotes == nil {
		return nil, errors.New("quote service: nil quote repository")
	}
	if id == "" {
		return nil, quoting.ErrEmptyID
	}
	return s.quotes.Get(ctx, tenantID, id)
}

// List returns recent quotes for the tenant.
func (s *QuoteService) List(ctx context.Context, tenantID string, limit int) ([]*quoting.Quote, error) {
	if s.quotes == nil {
		return nil, errors.New("quote service: nil quote repository")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.quotes.List(ctx, tenantID, limit)
}

// engineFor builds an engine from the company's pricing overrides. A missing
// company (or no company repository) falls back to pure defaults.
func (s *QuoteService) engineFor(ctx context.Context, tenantID, slug string) (*pricing.Engine, error) {
	overrides := make(map[string]any, len(s.baseOverrides))
	for key, value := range s.baseOverrides {
		overrides[key] = value
	}
	if s.companies != nil && slug != "" {
		found, err := s.companies.FindBySlug(ctx, tenantID, slug)
		switch {
		case errors.Is(err, company.ErrNotFound):
			// Base overrides only.
		case err != nil:
			return nil, err
		default:
			if found != nil {
				for key, value := range found.PricingConfig {
					overrides[key] = value
				}
			}
		}
	}
	rates, err := pricing.ResolveRates(overrides)
	if err != nil {
		return nil, err
	}
	return pricing.NewEngine(rates), nil
}

func resolveVolume(input CalculateInput) (decimal.Decimal, error) {
	if input.VolumeM3.IsPositive() {
		return input.VolumeM3, nil
	}
	if input.ApartmentSize != "" {
		volume, ok := apartmentSizeVolumes[input.ApartmentSize]
		if !ok {
			return decimal.Zero, ErrUnknownApartmentSize
		}
		return volume, nil
	}
	if len(input.Inventory) > 0 {
		// The engine aggregates the inventory itself.
		return decimal.Zero, nil
	}
	return decimal.Zero, ErrMissingVolume
}
