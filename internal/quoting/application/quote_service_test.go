package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	company "movequote-cloud/internal/company/domain"
	pricing "movequote-cloud/internal/pricing/domain"
	quoting "movequote-cloud/internal/quoting/domain"
	"movequote-cloud/internal/routing"
)

type stubCompanyRepo struct {
	company *company.Company
	err     error
}

func (s stubCompanyRepo) FindBySlug(_ context.Context, _ string, _ string) (*company.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.company, nil
}

type stubQuoteRepo struct {
	created *quoting.Quote
}

func (s *stubQuoteRepo) Create(_ context.Context, quote *quoting.Quote) error {
	s.created = quote
	return nil
}

func (s *stubQuoteRepo) Get(_ context.Context, _ string, id string) (*quoting.Quote, error) {
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, quoting.ErrQuoteNotFound
}

func (s *stubQuoteRepo) List(_ context.Context, _ string, _ int) ([]*quoting.Quote, error) {
	if s.created == nil {
		return nil, nil
	}
	return []*quoting.Quote{s.created}, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newFixedRoutes(t *testing.T, distance string) routing.Provider {
	t.Helper()
	provider, err := routing.NewFixedProvider(decimal.RequireFromString(distance), decimal.Zero)
	if err != nil {
		t.Fatalf("fixed provider: %v", err)
	}
	return provider
}

func TestCalculate_DefaultsWhenCompanyMissing(t *testing.T) {
	service, err := NewQuoteService(
		&stubQuoteRepo{},
		stubCompanyRepo{err: company.ErrNotFound},
		newFixedRoutes(t, "50"),
		fixedClock{at: time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)},
		nil,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := service.Calculate(context.Background(), "tenant-a", CalculateInput{
		CompanySlug:       "ghost",
		OriginPostal:      "10115",
		DestinationPostal: "80331",
		VolumeM3:          decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !result.NetMin.Equal(decimal.RequireFromString("1378")) {
		t.Fatalf("expected default-rate net 1378, got %s", result.NetMin)
	}
}

func TestCalculate_CompanyOverridesApplied(t *testing.T) {
	tenant := &company.Company{
		Slug:          "premium",
		PricingConfig: map[string]any{"base_rate_per_m3_min": 30, "base_rate_per_m3_max": 30},
	}
	service, err := NewQuoteService(nil, stubCompanyRepo{company: tenant}, newFixedRoutes(t, "0"), fixedClock{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := service.Calculate(context.Background(), "tenant-a", CalculateInput{
		CompanySlug: "premium",
		VolumeM3:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !result.Breakdown.VolumeCost.Min.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected overridden volume cost 1200, got %s", result.Breakdown.VolumeCost.Min)
	}
	if !result.Breakdown.VolumeCost.Max.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected overridden volume cost 1200, got %s", result.Breakdown.VolumeCost.Max)
	}
}

func TestCalculate_BaseOverridesUnderCompanyConfig(t *testing.T) {
	tenant := &company.Company{
		Slug:          "premium",
		PricingConfig: map[string]any{"base_rate_per_m3_min": 30},
	}
	service, err := NewQuoteService(nil, stubCompanyRepo{company: tenant}, newFixedRoutes(t, "0"), fixedClock{}, nil,
		WithBaseOverrides(map[string]any{"base_rate_per_m3_min": 20, "base_rate_per_m3_max": 30}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := service.Calculate(context.Background(), "tenant-a", CalculateInput{
		CompanySlug: "premium",
		VolumeM3:    decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// Company config wins for min, server base applies for max.
	if !result.Breakdown.VolumeCost.Min.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected company min rate, got %s", result.Breakdown.VolumeCost.Min)
	}
	if !result.Breakdown.VolumeCost.Max.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected base max rate, got %s", result.Breakdown.VolumeCost.Max)
	}
}

func TestCalculate_ApartmentSizeFallback(t *testing.T) {
	service, err := NewQuoteService(nil, nil, newFixedRoutes(t, "10"), fixedClock{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	result, err := service.Calculate(context.Background(), "tenant-a", CalculateInput{ApartmentSize: "2br"})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !result.VolumeM3.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected 2br volume 40, got %s", result.VolumeM3)
	}

	_, err = service.Calculate(context.Background(), "tenant-a", CalculateInput{ApartmentSize: "castle"})
	if !errors.Is(err, ErrUnknownApartmentSize) {
		t.Fatalf("expected ErrUnknownApartmentSize, got %v", err)
	}
}

func TestCalculate_MissingVolume(t *testing.T) {
	service, err := NewQuoteService(nil, nil, newFixedRoutes(t, "10"), fixedClock{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	_, err = service.Calculate(context.Background(), "tenant-a", CalculateInput{})
	if !errors.Is(err, ErrMissingVolume) {
		t.Fatalf("expected ErrMissingVolume, got %v", err)
	}
}

func TestSubmit_PersistsQuoteRecord(t *testing.T) {
	repo := &stubQuoteRepo{}
	now := time.Date(2026, time.April, 7, 9, 30, 0, 0, time.UTC)
	service, err := NewQuoteService(repo, nil, newFixedRoutes(t, "25"), fixedClock{at: now}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	quote, err := service.Submit(context.Background(), "tenant-a", SubmitInput{
		CalculateInput: CalculateInput{
			OriginPostal:      "10115",
			DestinationPostal: "10117",
			Inventory: []pricing.InventoryItem{
				{Name: "sofa", VolumeM3: decimal.RequireFromString("1.5"), Quantity: 2},
			},
		},
		CustomerEmail: "kunde@example.com",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if repo.created == nil || repo.created.ID != quote.ID {
		t.Fatalf("quote not persisted")
	}
	if !quote.CreatedAt.Equal(now) {
		t.Fatalf("expected clock timestamp, got %s", quote.CreatedAt)
	}
	if !quote.VolumeM3.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected aggregated volume 3, got %s", quote.VolumeM3)
	}

	fetched, err := service.Get(context.Background(), "tenant-a", quote.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.CustomerMail != "kunde@example.com" {
		t.Fatalf("unexpected customer email: %s", fetched.CustomerMail)
	}
}

func TestSubmit_RequiresEmail(t *testing.T) {
	service, err := NewQuoteService(&stubQuoteRepo{}, nil, newFixedRoutes(t, "25"), fixedClock{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	_, err = service.Submit(context.Background(), "tenant-a", SubmitInput{
		CalculateInput: CalculateInput{VolumeM3: decimal.NewFromInt(10)},
	})
	if err == nil {
		t.Fatalf("expected error for missing email")
	}
}
