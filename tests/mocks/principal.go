package mocks

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/auth"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Principals es un PrincipalLoader en memoria.
type Principals map[uuid.UUID]*sharedDomain.Principal

func (p Principals) LoadPrincipal(ctx context.Context, id uuid.UUID) (*sharedDomain.Principal, error) {
	principal, ok := p[id]
	if !ok {
		return nil, errors.New("principal not found")
	}
	return principal, nil
}

// TestAuth prepara un middleware.Auth real con un usuario y un admin.
type TestAuth struct {
	Auth   *middleware.Auth
	Tokens *auth.TokenManager
	User   *sharedDomain.Principal
	Admin  *sharedDomain.Principal
}

func NewTestAuth() *TestAuth {
	user := &sharedDomain.Principal{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Role: sharedDomain.RoleUser}
	admin := &sharedDomain.Principal{ID: uuid.New(), Name: "Root", Email: "root@example.com", Role: sharedDomain.RoleAdmin}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &TestAuth{
		Auth:   middleware.NewAuth(tokens, Principals{user.ID: user, admin.ID: admin}, zap.NewNop()),
		Tokens: tokens,
		User:   user,
		Admin:  admin,
	}
}

// AuthorizeAs añade la cabecera Bearer de p a req.
func (a *TestAuth) AuthorizeAs(t *testing.T, req *http.Request, p *sharedDomain.Principal) {
	t.Helper()
	token, err := a.Tokens.Issue(p.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
