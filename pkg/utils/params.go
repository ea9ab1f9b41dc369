package utils

import (
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseID lee el parámetro de ruta name como UUID. Si no es válido registra
// ErrInvalidID en el contexto y devuelve false.
func ParseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(sharedDomain.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
