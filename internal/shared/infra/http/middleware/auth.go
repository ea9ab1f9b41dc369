package middleware

import (
	"strings"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	principalContextKey = "principal"
	// TokenCookie es la cookie httpOnly que fija el login.
	TokenCookie = "token"
)

var ErrLoginFirst = sharedDomain.Unauthorized("Login first to access this resource.")

// TokenVerifier valida un token y devuelve el id de la cuenta.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Auth construye los middlewares de autenticación y autorización.
type Auth struct {
	verifier TokenVerifier
	loader   sharedDomain.PrincipalLoader
	log      *zap.Logger
}

func NewAuth(verifier TokenVerifier, loader sharedDomain.PrincipalLoader, log *zap.Logger) *Auth {
	return &Auth{verifier: verifier, loader: loader, log: log}
}

// Authenticated exige un token válido (cabecera Bearer o cookie) de una cuenta existente.
func (a *Auth) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abort(c, ErrLoginFirst)
			return
		}

		id, err := a.verifier.Verify(token)
		if err != nil {
			a.log.Debug("Token rejected", zap.Error(err))
			abort(c, ErrLoginFirst)
			return
		}

		principal, err := a.loader.LoadPrincipal(c.Request.Context(), id)
		if err != nil {
			a.log.Debug("Principal not loaded", zap.String("id", id.String()), zap.Error(err))
			abort(c, ErrLoginFirst)
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// Roles debe ir detrás de Authenticated.
func (a *Auth) Roles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abort(c, ErrLoginFirst)
			return
		}
		if !principal.HasRole(roles...) {
			abort(c, sharedDomain.Forbidden("Role ("+principal.Role+") is not allowed to access this"))
			return
		}
		c.Next()
	}
}

// CurrentPrincipal devuelve la cuenta autenticada de la petición.
func CurrentPrincipal(c *gin.Context) (*sharedDomain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return nil, false
	}
	principal, ok := val.(*sharedDomain.Principal)
	return principal, ok
}

// SetPrincipal lo usan los tests de handlers para saltarse la verificación del token.
func SetPrincipal(principal *sharedDomain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
