package application

import (
	"context"
	"errors"
	"net/url"
	"time"

	productDomain "github.com/davicafu/storefront/internal/product/domain"
	sharedCache "github.com/davicafu/storefront/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/storefront/internal/shared/infra/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Page es una página de productos junto al total de la colección.
type Page struct {
	Products []*productDomain.Product
	Total    int64
}

// ProductService define los casos de uso del catálogo de productos.
type ProductService struct {
	repo     productDomain.ProductRepository
	cache    sharedCache.Cache
	cacheTTL int
	log      *zap.Logger
}

func NewProductService(repo productDomain.ProductRepository, cache sharedCache.Cache, cacheTTL time.Duration, log *zap.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		cache:    cache,
		cacheTTL: int(cacheTTL.Seconds()),
		log:      log,
	}
}

func (s *ProductService) features(params url.Values) *sharedQuery.Features {
	return sharedQuery.NewFeatures(s.repo.NewQuery(), params, sharedQuery.WithSchema(productDomain.Schema))
}

// ListProducts aplica búsqueda por nombre, filtros y paginación de 4.
func (s *ProductService) ListProducts(ctx context.Context, params url.Values) (*Page, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	f := s.features(params).Search().Filter().Pagination(productDomain.PageSize)
	products, err := s.repo.List(ctx, f.Query())
	if err != nil {
		return nil, err
	}
	return &Page{Products: products, Total: total}, nil
}

// NewCollection devuelve los 8 productos más nuevos que cumplen búsqueda y filtros.
func (s *ProductService) NewCollection(ctx context.Context, params url.Values) ([]*productDomain.Product, error) {
	f := s.features(params).Search().Filter().Sort(sharedQuery.Desc("createdAt"))
	return s.repo.List(ctx, f.Query().Limit(productDomain.NewCollectionSize))
}

// ListAll pagina de 100 en 100, los más nuevos primero.
func (s *ProductService) ListAll(ctx context.Context, params url.Values) (*Page, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	f := s.features(params).Sort(sharedQuery.Desc("createdAt")).Pagination(productDomain.AdminPageSize)
	products, err := s.repo.List(ctx, f.Query())
	if err != nil {
		return nil, err
	}
	return &Page{Products: products, Total: total}, nil
}

// Popular devuelve los 4 productos mejor valorados.
func (s *ProductService) Popular(ctx context.Context) ([]*productDomain.Product, error) {
	q := s.repo.NewQuery().Sort(sharedQuery.Desc("ratings"), sharedQuery.Desc("createdAt")).Limit(productDomain.PopularSize)
	return s.repo.List(ctx, q)
}

// GetProduct obtiene un producto (primero intenta desde cache).
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	key := productDomain.CacheKeyByID(id)

	if s.cache != nil {
		var p productDomain.Product
		if ok, err := s.cache.Get(ctx, key, &p); ok {
			return &p, nil
		} else if err != nil {
			s.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	var product *productDomain.Product
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		product, err = s.repo.GetByID(ctx, id)
		if errors.Is(err, productDomain.ErrProductNotFound) {
			return sharedUtils.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, key, product, s.cacheTTL, s.log)
	return product, nil
}

// CreateProduct guarda un producto cuyo dueño es owner.
func (s *ProductService) CreateProduct(ctx context.Context, owner uuid.UUID, input productDomain.Patch) (*productDomain.Product, error) {
	product := productDomain.NewProduct(owner, "", "")
	product.Apply(input)

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("Product created", zap.String("id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct aplica patch e invalida la caché.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, patch productDomain.Patch) (*productDomain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Apply(patch)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheDelete(s.cache, productDomain.CacheKeyByID(id), s.log)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	sharedCache.AsyncCacheDelete(s.cache, productDomain.CacheKeyByID(id), s.log)
	return nil
}

// Seed borra todos los productos e inserta los recibidos con owner como dueño.
func (s *ProductService) Seed(ctx context.Context, owner uuid.UUID, products []*productDomain.Product) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("Products are deleted", zap.Int64("count", deleted))

	now := time.Now().UTC()
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.Enable == "" {
			p.Enable = productDomain.EnableDefault
		}
		if p.Images == nil {
			p.Images = []productDomain.Image{}
		}
		p.User = owner
	}

	if err := s.repo.InsertMany(ctx, products); err != nil {
		return 0, err
	}
	s.log.Info("All Products are added", zap.Int("count", len(products)))
	return deleted, nil
}
