package domain

import (
	"context"
	"fmt"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var ErrProductNotFound = sharedDomain.NotFound("Product not found")

// ---------- Tamaños de página ----------
const (
	PageSize          = 4
	NewCollectionSize = 8
	AdminPageSize     = 100
	PopularSize       = 4
)

// Schema indica cómo convertir los valores de filtro de la query string.
var Schema = sharedQuery.Schema{
	"price":     sharedQuery.Number,
	"new_price": sharedQuery.Number,
	"ratings":   sharedQuery.Number,
	"stock":     sharedQuery.Number,
	"createdAt": sharedQuery.Time,
}

// ---------- Ports ----------

// ProductRepository define las operaciones persistentes para Product.
type ProductRepository interface {
	// NewQuery devuelve un descriptor "find all" que List sabe ejecutar.
	NewQuery() sharedQuery.Descriptor
	List(ctx context.Context, q sharedQuery.Descriptor) ([]*Product, error)
	// Count devuelve el total de productos, sin filtros.
	Count(ctx context.Context) (int64, error)

	// Debe devolver ErrProductNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	// Debe devolver ErrProductNotFound si no existe.
	Update(ctx context.Context, p *Product) error
	// Debe devolver ErrProductNotFound si no existe.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// Usados por el seeder.
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []*Product) error
}

// CacheKeyByID forma una key consistente para cache usando ID.
func CacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("product:id:%s", id.String())
}
