package application

import (
	"context"
	"net/url"

	scheduleDomain "github.com/davicafu/storefront/internal/schedule/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Page struct {
	Schedules []*scheduleDomain.Schedule
	Total     int64
}

// ScheduleService define los casos de uso de la agenda.
type ScheduleService struct {
	repo scheduleDomain.ScheduleRepository
	log  *zap.Logger
}

func NewScheduleService(repo scheduleDomain.ScheduleRepository, log *zap.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, log: log}
}

func (s *ScheduleService) features(params url.Values) *sharedQuery.Features {
	return sharedQuery.NewFeatures(s.repo.NewQuery(), params,
		sharedQuery.WithSearchField(scheduleDomain.SearchField),
		sharedQuery.WithSchema(scheduleDomain.Schema),
	)
}

func (s *ScheduleService) page(ctx context.Context, f *sharedQuery.Features) (*Page, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	schedules, err := s.repo.List(ctx, f.Query())
	if err != nil {
		return nil, err
	}
	return &Page{Schedules: schedules, Total: total}, nil
}

func (s *ScheduleService) ListSchedules(ctx context.Context, params url.Values) (*Page, error) {
	return s.page(ctx, s.features(params).Search().Filter().Pagination(scheduleDomain.PageSize))
}

func (s *ScheduleService) NewCollection(ctx context.Context, params url.Values) ([]*scheduleDomain.Schedule, error) {
	f := s.features(params).Search().Filter().Sort(sharedQuery.Desc("createdAt"))
	return s.repo.List(ctx, f.Query().Limit(scheduleDomain.NewCollectionSize))
}

// Popular devuelve los 4 más recientes.
func (s *ScheduleService) Popular(ctx context.Context) ([]*scheduleDomain.Schedule, error) {
	q := s.repo.NewQuery().Sort(sharedQuery.Desc("createdAt")).Limit(scheduleDomain.PopularSize)
	return s.repo.List(ctx, q)
}

func (s *ScheduleService) ListAll(ctx context.Context, params url.Values) (*Page, error) {
	return s.page(ctx, s.features(params).Sort(sharedQuery.Desc("createdAt")).Pagination(scheduleDomain.AdminPageSize))
}

func (s *ScheduleService) GetSchedule(ctx context.Context, id uuid.UUID) (*scheduleDomain.Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, owner uuid.UUID, patch scheduleDomain.Patch) (*scheduleDomain.Schedule, error) {
	schedule := scheduleDomain.NewSchedule(owner, "", "")
	schedule.Apply(patch)
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	s.log.Info("Schedule created", zap.String("id", schedule.ID.String()), zap.String("date", schedule.Date))
	return schedule, nil
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, id uuid.UUID, patch scheduleDomain.Patch) (*scheduleDomain.Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule.Apply(patch)
	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}
