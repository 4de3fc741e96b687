package auth

import (
	"net/http"
	"strings"
)

// Middleware authenticates staff tokens and enforces the route policy.
type Middleware struct {
	secret []byte
	policy Policy
}

// NewMiddleware constructs an auth middleware.
func NewMiddleware(secret []byte, policy Policy) *Middleware {
	return &Middleware{secret: secret, policy: policy}
}

// Wrap applies auth and RBAC to the handler. Public quote routes pass
// through, but a valid token riding along is still parsed so the request
// runs under the caller's tenant instead of the server default.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.policy.IsExempt(r) {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		required, protected := m.policy.RequiredRole(r)
		if !protected {
			if token != "" {
				if identity, err := ParseStaffToken(token, m.secret); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), identity))
				}
			}
			next.ServeHTTP(w, r)
			return
		}

		identity, err := ParseStaffToken(token, m.secret)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !identity.Role.Allows(required) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func bearerToken(r *http.Request) string {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
