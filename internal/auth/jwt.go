package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims are the token claims issued to back-office users.
type StaffClaims struct {
	TenantID  string   `json:"tenant_id"`
	Role      string   `json:"role"`
	Companies []string `json:"companies,omitempty"`
	jwt.RegisteredClaims
}

// ParseStaffToken validates an HS256 token and returns the identity it
// carries. Tokens without an expiry are rejected.
func ParseStaffToken(tokenString string, secret []byte) (Identity, error) {
	if tokenString == "" {
		return Identity{}, errors.New("auth: no token presented")
	}
	if len(secret) == 0 {
		return Identity{}, errors.New("auth: signing secret not configured")
	}

	claims := &StaffClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("auth: %w", err)
	}
	if !token.Valid {
		return Identity{}, errors.New("auth: token rejected")
	}
	if claims.TenantID == "" {
		return Identity{}, errors.New("auth: token carries no tenant")
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return Identity{}, fmt.Errorf("auth: unknown role %q", claims.Role)
	}
	return Identity{
		TenantID:  claims.TenantID,
		Subject:   claims.Subject,
		Role:      role,
		Companies: claims.Companies,
	}, nil
}
