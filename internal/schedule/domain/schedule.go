package domain

import (
	"context"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"github.com/google/uuid"
)

const (
	Enabled  = "enabled"
	Disabled = "disabled"
)

// Schedule es una franja de reserva publicada por un usuario. Date se guarda tal cual llega.
type Schedule struct {
	ID            uuid.UUID `json:"_id"`
	User          uuid.UUID `json:"user"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"createdAt"`
	Enable        string    `json:"enable"`
	Canceled      string    `json:"canceled"`
	FullDayBooked string    `json:"fullDayBooked"`
}

func NewSchedule(owner uuid.UUID, description, date string) *Schedule {
	return &Schedule{
		ID:            uuid.New(),
		User:          owner,
		Description:   description,
		Date:          date,
		CreatedAt:     time.Now().UTC(),
		Enable:        Enabled,
		Canceled:      Disabled,
		FullDayBooked: Disabled,
	}
}

type Patch struct {
	Description   *string
	Date          *string
	Enable        *string
	Canceled      *string
	FullDayBooked *string
}

func (s *Schedule) Apply(patch Patch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Description, patch.Description)
	set(&s.Date, patch.Date)
	set(&s.Enable, patch.Enable)
	set(&s.Canceled, patch.Canceled)
	set(&s.FullDayBooked, patch.FullDayBooked)
}

var ErrScheduleNotFound = sharedDomain.NotFound("Schedule not found")

const (
	PageSize          = 4
	NewCollectionSize = 8
	PopularSize       = 4
	AdminPageSize     = 100
	SearchField       = "description"
)

var Schema = sharedQuery.Schema{"createdAt": sharedQuery.Time}

// ScheduleRepository define las operaciones persistentes para Schedule.
type ScheduleRepository interface {
	NewQuery() sharedQuery.Descriptor
	List(ctx context.Context, q sharedQuery.Descriptor) ([]*Schedule, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	Create(ctx context.Context, s *Schedule) error
	Update(ctx context.Context, s *Schedule) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
