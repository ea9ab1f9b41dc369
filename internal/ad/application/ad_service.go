package application

import (
	"context"
	"net/url"

	adDomain "github.com/davicafu/storefront/internal/ad/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Page es una página de anuncios junto al total de la colección.
type Page struct {
	Ads   []*adDomain.Ad
	Total int64
}

type AdService struct {
	repo adDomain.AdRepository
	log  *zap.Logger
}

func NewAdService(repo adDomain.AdRepository, log *zap.Logger) *AdService {
	return &AdService{repo: repo, log: log}
}

func (s *AdService) features(params url.Values) *sharedQuery.Features {
	return sharedQuery.NewFeatures(s.repo.NewQuery(), params,
		sharedQuery.WithSearchField(adDomain.SearchField),
		sharedQuery.WithSchema(adDomain.Schema),
	)
}

func (s *AdService) page(ctx context.Context, f *sharedQuery.Features) (*Page, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	ads, err := s.repo.List(ctx, f.Query())
	if err != nil {
		return nil, err
	}
	return &Page{Ads: ads, Total: total}, nil
}

// ListAds busca por descripción, filtra y pagina de 4 en 4.
func (s *AdService) ListAds(ctx context.Context, params url.Values) (*Page, error) {
	return s.page(ctx, s.features(params).Search().Filter().Pagination(adDomain.PageSize))
}

// NewCollection devuelve los 8 anuncios más recientes que cumplen búsqueda y filtros.
func (s *AdService) NewCollection(ctx context.Context, params url.Values) ([]*adDomain.Ad, error) {
	f := s.features(params).Search().Filter().Sort(sharedQuery.Desc("createdAt"))
	return s.repo.List(ctx, f.Query().Limit(adDomain.NewCollectionSize))
}

// Popular no tiene métrica de popularidad: devuelve los 4 más recientes.
func (s *AdService) Popular(ctx context.Context) ([]*adDomain.Ad, error) {
	return s.repo.List(ctx, s.repo.NewQuery().Sort(sharedQuery.Desc("createdAt")).Limit(adDomain.PopularSize))
}

// ListAll pagina de 100 en 100, los más nuevos primero.
func (s *AdService) ListAll(ctx context.Context, params url.Values) (*Page, error) {
	return s.page(ctx, s.features(params).Sort(sharedQuery.Desc("createdAt")).Pagination(adDomain.AdminPageSize))
}

func (s *AdService) GetAd(ctx context.Context, id uuid.UUID) (*adDomain.Ad, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AdService) CreateAd(ctx context.Context, owner uuid.UUID, image, description string) (*adDomain.Ad, error) {
	ad := adDomain.NewAd(owner, image, description)
	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, err
	}
	s.log.Info("Ad created", zap.String("id", ad.ID.String()), zap.String("user", owner.String()))
	return ad, nil
}

func (s *AdService) UpdateAd(ctx context.Context, id uuid.UUID, patch adDomain.Patch) (*adDomain.Ad, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ad.Apply(patch)
	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *AdService) DeleteAd(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}
