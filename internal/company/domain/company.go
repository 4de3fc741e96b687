package company

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no company matches the slug.
	ErrNotFound = errors.New("company: not found")
	// ErrEmptySlug is returned when a lookup slug is empty.
	ErrEmptySlug = errors.New("company: empty slug")
)

// Company is a white-label tenant. PricingConfig is the raw override map
// merged onto the global rate defaults when quoting for this company.
type Company struct {
	ID            string
	TenantID      string
	Name          string
	Slug          string
	LogoURL       string
	PricingConfig map[string]any
	CreatedAt     time.Time
}
