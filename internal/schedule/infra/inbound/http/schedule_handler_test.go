package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/storefront/internal/schedule/application"
	scheduleDomain "github.com/davicafu/storefront/internal/schedule/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/tests/mocks"
)

type scheduleBody struct {
	Success       bool                       `json:"success"`
	Count         int                        `json:"count"`
	ScheduleCount int64                      `json:"scheduleCount"`
	Schedules     []*scheduleDomain.Schedule `json:"schedules"`
	Schedule      *scheduleDomain.Schedule   `json:"schedule"`
	Message       string                     `json:"message"`
}

func setupRouter(t *testing.T, schedules ...*scheduleDomain.Schedule) (*gin.Engine, *mocks.InMemoryScheduleRepo, *mocks.TestAuth) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := mocks.NewInMemoryScheduleRepo(schedules...)
	testAuth := mocks.NewTestAuth()

	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop(), false))
	handler := NewScheduleHandler(application.NewScheduleService(repo, zap.NewNop()))
	RegisterScheduleRoutes(r.Group("/v1"), handler, testAuth.Auth)
	return r, repo, testAuth
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, scheduleBody) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body scheduleBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestGetSchedules_Envelope(t *testing.T) {
	r, _, _ := setupRouter(t,
		scheduleDomain.NewSchedule(uuid.New(), "a", "2024-05-01"),
		scheduleDomain.NewSchedule(uuid.New(), "b", "2024-05-02"),
	)

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/v1/schedules?date=2024-05-02", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, int64(2), body.ScheduleCount)
	require.Len(t, body.Schedules, 1)
	assert.Equal(t, "b", body.Schedules[0].Description)
}

func TestCreateSchedule(t *testing.T) {
	r, repo, testAuth := setupRouter(t)

	testCases := []struct {
		name    string
		payload string
		status  int
		message string
	}{
		{"sin descripción", `{"date":"2024-05-01"}`, http.StatusBadRequest, "Please enter schedule description"},
		{"sin fecha", `{"description":"x"}`, http.StatusBadRequest, "Please enter the date"},
		{"estado inválido", `{"description":"x","date":"d","canceled":"maybe"}`, http.StatusBadRequest, "Please select correct Canceled"},
		{"válido", `{"description":"x","date":"2024-05-01"}`, http.StatusCreated, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/schedule/new", bytes.NewReader([]byte(tc.payload)))
			req.Header.Set("Content-Type", "application/json")
			testAuth.AuthorizeAs(t, req, testAuth.User)

			w, body := serve(r, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, body.Message)
		})
	}
	assert.Equal(t, int64(1), repo.Len())
}

func TestUpdateSchedule_AdminOnly(t *testing.T) {
	s := scheduleDomain.NewSchedule(uuid.New(), "slot", "2024-05-01")
	r, _, testAuth := setupRouter(t, s)
	payload := []byte(`{"fullDayBooked":"enabled"}`)

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/schedule/"+s.ID.String(), bytes.NewReader(payload))
	testAuth.AuthorizeAs(t, req, testAuth.User)
	w, _ := serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodPut, "/v1/admin/schedule/"+s.ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	testAuth.AuthorizeAs(t, req, testAuth.Admin)
	w, body := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, scheduleDomain.Enabled, body.Schedule.FullDayBooked)
}

func TestDeleteSchedule(t *testing.T) {
	s := scheduleDomain.NewSchedule(uuid.New(), "slot", "2024-05-01")
	r, _, testAuth := setupRouter(t, s)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/schedule/"+s.ID.String(), nil)
	testAuth.AuthorizeAs(t, req, testAuth.Admin)
	w, body := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Schedule deleted successfully", body.Message)

	req = httptest.NewRequest(http.MethodDelete, "/v1/admin/schedule/"+s.ID.String(), nil)
	testAuth.AuthorizeAs(t, req, testAuth.Admin)
	w, body = serve(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Schedule not found", body.Message)
}
