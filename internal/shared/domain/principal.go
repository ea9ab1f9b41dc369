package domain

import (
	"context"

	"github.com/google/uuid"
)

// Roles conocidos.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// HasRole reports whether the principal holds one of roles.
func (p *Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// PrincipalLoader resolves the account behind a verified token.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, id uuid.UUID) (*Principal, error)
}
