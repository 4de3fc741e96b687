package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	company "movequote-cloud/internal/company/domain"
)

// CompanyRepository loads tenant companies and their pricing overrides.
type CompanyRepository struct {
	db *sql.DB
}

// NewCompanyRepository constructs a repository.
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindBySlug returns the company for a tenant and slug.
func (r *CompanyRepository) FindBySlug(ctx context.Context, tenantID, slug string) (*company.Company, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("company repo: nil db")
	}
	if slug == "" {
		return nil, company.ErrEmptySlug
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, tenant_id, name, slug, COALESCE(logo_url, ''), COALESCE(pricing_config, '{}'), created_at
FROM companies
WHERE tenant_id = $1 AND slug = $2`, tenantID, slug)

	var c company.Company
	var rawConfig []byte
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.LogoURL, &rawConfig, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}
		return nil, err
	}
	if len(rawConfig) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(rawConfig))
		decoder.UseNumber()
		if err := decoder.Decode(&c.PricingConfig); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
