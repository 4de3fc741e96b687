package quoting

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	pricing "movequote-cloud/internal/pricing/domain"
)

var (
	// ErrQuoteNotFound is returned when a quote id does not exist for the tenant.
	ErrQuoteNotFound = errors.New("quoting: quote not found")
	// ErrEmptyID is returned when a lookup id is empty.
	ErrEmptyID = errors.New("quoting: empty quote id")
)

// Quote is a persisted quote record: the customer contact, the request
// parameters and a snapshot of the engine result at submission time.
// Quotes have no status lifecycle here; they are immutable once written.
type Quote struct {
	ID           string
	TenantID     string
	CompanySlug  string
	CustomerName string
	CustomerMail string
	CustomerTel  string

	Origin      pricing.Endpoint
	Destination pricing.Endpoint
	DistanceKm  decimal.Decimal
	VolumeM3    decimal.Decimal
	MoveDate    time.Time

	Inventory []pricing.InventoryItem
	Services  []pricing.Service

	Result pricing.QuoteResult

	CreatedAt time.Time
}
