package auth

import "context"

// Identity is the authenticated staff principal attached to a request.
// Companies optionally narrows the principal to specific company slugs;
// empty means the whole tenant.
type Identity struct {
	TenantID  string
	Subject   string
	Role      Role
	Companies []string
}

// AllowsCompany reports whether the identity may act for the company slug.
func (i Identity) AllowsCompany(slug string) bool {
	if len(i.Companies) == 0 {
		return true
	}
	for _, allowed := range i.Companies {
		if allowed == slug {
			return true
		}
	}
	return false
}

type identityKey struct{}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the request identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// TenantIDFromContext returns the authenticated tenant id, or "" for
// anonymous customer traffic.
func TenantIDFromContext(ctx context.Context) string {
	identity, _ := IdentityFromContext(ctx)
	return identity.TenantID
}

// SubjectFromContext returns the authenticated user id, or "".
func SubjectFromContext(ctx context.Context) string {
	identity, _ := IdentityFromContext(ctx)
	return identity.Subject
}

// RoleFromContext returns the authenticated role, or "".
func RoleFromContext(ctx context.Context) Role {
	identity, _ := IdentityFromContext(ctx)
	return identity.Role
}
