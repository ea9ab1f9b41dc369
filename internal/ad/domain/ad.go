package domain

import (
	"context"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

const EnableDefault = "enabled"

// Ad es un anuncio publicado por un usuario.
type Ad struct {
	ID          uuid.UUID `json:"_id"`
	User        uuid.UUID `json:"user"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Enable      string    `json:"enable"`
}

func NewAd(owner uuid.UUID, image, description string) *Ad {
	return &Ad{
		ID:          uuid.New(),
		User:        owner,
		Image:       image,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Enable:      EnableDefault,
	}
}

type Patch struct {
	Image       *string
	Description *string
	Enable      *string
}

func (a *Ad) Apply(patch Patch) {
	if patch.Image != nil {
		a.Image = *patch.Image
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Enable != nil {
		a.Enable = *patch.Enable
	}
}

var ErrAdNotFound = sharedDomain.NotFound("Ad not found")

const (
	PageSize          = 4
	NewCollectionSize = 8
	PopularSize       = 4
	AdminPageSize     = 100
	// Los anuncios se buscan por descripción.
	SearchField = "description"
)

var Schema = sharedQuery.Schema{"createdAt": sharedQuery.Time}

// AdRepository define las operaciones persistentes para Ad.
type AdRepository interface {
	NewQuery() sharedQuery.Descriptor
	List(ctx context.Context, q sharedQuery.Descriptor) ([]*Ad, error)
	Count(ctx context.Context) (int64, error)
	// Debe devolver ErrAdNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Ad, error)
	Create(ctx context.Context, a *Ad) error
	Update(ctx context.Context, a *Ad) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
