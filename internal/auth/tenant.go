package auth

import (
	"context"
	"database/sql"
	"errors"

	company "movequote-cloud/internal/company/domain"
	companyrepo "movequote-cloud/internal/company/infrastructure/postgres"
)

var (
	// ErrTenantMismatch indicates resource belongs to a different tenant.
	ErrTenantMismatch = errors.New("tenant mismatch")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("resource not found")
)

// CompanyTenantChecker validates company tenant ownership.
type CompanyTenantChecker interface {
	EnsureCompanyTenant(ctx context.Context, tenantID, slug string) error
}

// CompanyChecker checks company ownership against the company store.
type CompanyChecker struct {
	repo *companyrepo.CompanyRepository
}

// NewCompanyChecker constructs a CompanyChecker.
func NewCompanyChecker(db *sql.DB) *CompanyChecker {
	if db == nil {
		return nil
	}
	return &CompanyChecker{repo: companyrepo.NewCompanyRepository(db)}
}

// EnsureCompanyTenant verifies the company slug belongs to tenant.
func (c *CompanyChecker) EnsureCompanyTenant(ctx context.Context, tenantID, slug string) error {
	if c == nil || c.repo == nil {
		return nil
	}
	if tenantID == "" || slug == "" {
		return nil
	}
	found, err := c.repo.FindBySlug(ctx, tenantID, slug)
	if errors.Is(err, company.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if found == nil {
		return ErrNotFound
	}
	if found.TenantID != tenantID {
		return ErrTenantMismatch
	}
	return nil
}
