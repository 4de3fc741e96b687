package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	quoting "movequote-cloud/internal/quoting/domain"
)

// QuoteRepository persists quote records. Endpoints, inventory, services and
// the engine result snapshot are stored as JSON columns.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository constructs a repository.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create inserts a quote record.
func (r *QuoteRepository) Create(ctx context.Context, quote *quoting.Quote) error {
	if r == nil || r.db == nil {
		return errors.New("quote repo: nil db")
	}
	if quote == nil {
		return errors.New("quote repo: nil quote")
	}

	origin, err := json.Marshal(quote.Origin)
	if err != nil {
		return err
	}
	destination, err := json.Marshal(quote.Destination)
	if err != nil {
		return err
	}
	inventory, err := json.Marshal(quote.Inventory)
	if err != nil {
		return err
	}
	services, err := json.Marshal(quote.Services)
	if err != nil {
		return err
	}
	result, err := json.Marshal(quote.Result)
	if err != nil {
		return err
	}

	var moveDate any
	if !quote.MoveDate.IsZero() {
		moveDate = quote.MoveDate
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO quotes (
	id, tenant_id, company_slug, customer_name, customer_email, customer_phone,
	origin, destination, distance_km, volume_m3, move_date,
	inventory, services, result, created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15
)`,
		quote.ID, quote.TenantID, quote.CompanySlug, quote.CustomerName, quote.CustomerMail, quote.CustomerTel,
		origin, destination, quote.DistanceKm.String(), quote.VolumeM3.String(), moveDate,
		inventory, services, result, quote.CreatedAt)
	return err
}

// Get returns one quote by id scoped to the tenant.
func (r *QuoteRepository) Get(ctx context.Context, tenantID, id string) (*quoting.Quote, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("quote repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, tenant_id, company_slug, customer_name, customer_email, customer_phone,
	origin, destination, distance_km, volume_m3, move_date,
	inventory, services, result, created_at
FROM quotes
WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	quote, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, quoting.ErrQuoteNotFound
	}
	return quote, err
}

// List returns the most recent quotes for the tenant.
func (r *QuoteRepository) List(ctx context.Context, tenantID string, limit int) ([]*quoting.Quote, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("quote repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, tenant_id, company_slug, customer_name, customer_email, customer_phone,
	origin, destination, distance_km, volume_m3, move_date,
	inventory, services, result, created_at
FROM quotes
WHERE tenant_id = $1
ORDER BY created_at DESC
LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*quoting.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*quoting.Quote, error) {
	var quote quoting.Quote
	var origin, destination, inventory, services, result []byte
	var distanceKm, volumeM3 string
	var moveDate sql.NullTime

	err := row.Scan(
		&quote.ID, &quote.TenantID, &quote.CompanySlug, &quote.CustomerName, &quote.CustomerMail, &quote.CustomerTel,
		&origin, &destination, &distanceKm, &volumeM3, &moveDate,
		&inventory, &services, &result, &quote.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(origin, &quote.Origin); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(destination, &quote.Destination); err != nil {
		return nil, err
	}
	if len(inventory) > 0 {
		if err := json.Unmarshal(inventory, &quote.Inventory); err != nil {
			return nil, err
		}
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &quote.Services); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(result, &quote.Result); err != nil {
		return nil, err
	}
	if quote.DistanceKm, err = parseDecimal(distanceKm); err != nil {
		return nil, err
	}
	if quote.VolumeM3, err = parseDecimal(volumeM3); err != nil {
		return nil, err
	}
	if moveDate.Valid {
		quote.MoveDate = moveDate.Time
	}
	return &quote, nil
}
