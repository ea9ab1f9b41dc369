package application

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	scheduleDomain "github.com/davicafu/storefront/internal/schedule/domain"
	"github.com/davicafu/storefront/tests/mocks"
)

func TestListSchedules_SearchAndFilter(t *testing.T) {
	// Arrange
	morning := scheduleDomain.NewSchedule(uuid.New(), "Morning slaughter", "2024-05-01")
	evening := scheduleDomain.NewSchedule(uuid.New(), "Evening slaughter", "2024-05-01")
	booked := scheduleDomain.NewSchedule(uuid.New(), "Morning delivery", "2024-05-02")
	booked.FullDayBooked = scheduleDomain.Enabled
	svc := NewScheduleService(mocks.NewInMemoryScheduleRepo(morning, evening, booked), zap.NewNop())

	// Act
	page, err := svc.ListSchedules(context.Background(), url.Values{
		"keyword":       {"morning"},
		"fullDayBooked": {"disabled"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Schedules, 1)
	assert.Equal(t, morning.ID, page.Schedules[0].ID)
}

func TestListSchedules_FilterByDate(t *testing.T) {
	a := scheduleDomain.NewSchedule(uuid.New(), "a", "2024-05-01")
	b := scheduleDomain.NewSchedule(uuid.New(), "b", "2024-05-02")
	c := scheduleDomain.NewSchedule(uuid.New(), "c", "2024-05-03")
	svc := NewScheduleService(mocks.NewInMemoryScheduleRepo(a, b, c), zap.NewNop())

	page, err := svc.ListSchedules(context.Background(), url.Values{"date": {"2024-05-01", "2024-05-03"}})

	require.NoError(t, err)
	assert.Len(t, page.Schedules, 2)
}

func TestCreateSchedule_Defaults(t *testing.T) {
	repo := mocks.NewInMemoryScheduleRepo()
	svc := NewScheduleService(repo, zap.NewNop())
	owner := uuid.New()
	desc, date := "Eid", "2024-06-16"

	schedule, err := svc.CreateSchedule(context.Background(), owner, scheduleDomain.Patch{Description: &desc, Date: &date})

	require.NoError(t, err)
	assert.Equal(t, owner, schedule.User)
	assert.Equal(t, scheduleDomain.Enabled, schedule.Enable)
	assert.Equal(t, scheduleDomain.Disabled, schedule.Canceled)
	assert.Equal(t, scheduleDomain.Disabled, schedule.FullDayBooked)
	assert.True(t, repo.Has(schedule.ID))
}

func TestUpdateSchedule_CancelKeepsOtherFields(t *testing.T) {
	s := scheduleDomain.NewSchedule(uuid.New(), "slot", "2024-05-01")
	svc := NewScheduleService(mocks.NewInMemoryScheduleRepo(s), zap.NewNop())
	canceled := scheduleDomain.Enabled

	updated, err := svc.UpdateSchedule(context.Background(), s.ID, scheduleDomain.Patch{Canceled: &canceled})

	require.NoError(t, err)
	assert.Equal(t, scheduleDomain.Enabled, updated.Canceled)
	assert.Equal(t, "2024-05-01", updated.Date)
}

func TestDeleteSchedule_NotFound(t *testing.T) {
	svc := NewScheduleService(mocks.NewInMemoryScheduleRepo(), zap.NewNop())

	err := svc.DeleteSchedule(context.Background(), uuid.New())

	assert.ErrorIs(t, err, scheduleDomain.ErrScheduleNotFound)
}
