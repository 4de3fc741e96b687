package audit

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repository writes audit entries to the quote audit log table.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs an audit repository.
func NewRepository(db *sql.DB) *Repository {
	if db == nil {
		return nil
	}
	return &Repository{db: db}
}

// Log writes an audit entry, filling in id, timestamp and digest when absent.
func (r *Repository) Log(ctx context.Context, entry Entry) error {
	if r == nil || r.db == nil {
		return errors.New("audit repo: nil db")
	}
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Digest == "" {
		entry.Digest = DigestPayload(entry.Details)
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO quote_audit_log (
	id, tenant_id, actor, actor_role, action, quote_id, company_slug,
	details, digest, ip, user_agent, created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
)`, entry.ID, entry.TenantID, entry.Actor, entry.ActorRole, entry.Action, entry.QuoteID, entry.CompanySlug,
		entry.Details, entry.Digest, entry.IP, entry.UserAgent, entry.CreatedAt)
	return err
}
