package audit

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Entry records one action against a quote: who did it, for which company,
// and a digest of the details payload for tamper checks.
type Entry struct {
	ID          string
	TenantID    string
	Actor       string
	ActorRole   string
	Action      string
	QuoteID     string
	CompanySlug string
	Details     json.RawMessage
	Digest      string
	IP          string
	UserAgent   string
	CreatedAt   time.Time
}

// Logger writes audit entries.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// NewID generates a random audit id.
func NewID() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return "log-" + hex.EncodeToString(buf)
}

// DigestPayload computes a SHA256 hex digest of the details payload.
func DigestPayload(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
