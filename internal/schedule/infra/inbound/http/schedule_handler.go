package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/storefront/internal/schedule/application"
	scheduleDomain "github.com/davicafu/storefront/internal/schedule/domain"
	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
	"github.com/davicafu/storefront/pkg/utils"
)

type ScheduleHandler struct {
	service *application.ScheduleService
}

func NewScheduleHandler(service *application.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

type scheduleRequest struct {
	Description   *string `json:"description"`
	Date          *string `json:"date"`
	Enable        *string `json:"enable" binding:"omitempty,oneof=enabled disabled"`
	Canceled      *string `json:"canceled" binding:"omitempty,oneof=enabled disabled"`
	FullDayBooked *string `json:"fullDayBooked" binding:"omitempty,oneof=enabled disabled"`
}

func (r scheduleRequest) toPatch() scheduleDomain.Patch {
	return scheduleDomain.Patch{
		Description:   r.Description,
		Date:          r.Date,
		Enable:        r.Enable,
		Canceled:      r.Canceled,
		FullDayBooked: r.FullDayBooked,
	}
}

var (
	errScheduleDescription = sharedDomain.BadRequest("Please enter schedule description")
	errScheduleDate        = sharedDomain.BadRequest("Please enter the date")
)

func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	page, err := h.service.ListSchedules(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendPage(c, page)
}

func (h *ScheduleHandler) GetNewCollection(c *gin.Context) {
	schedules, err := h.service.NewCollection(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(schedules), "schedules": schedules})
}

func (h *ScheduleHandler) GetPopular(c *gin.Context) {
	schedules, err := h.service.Popular(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"count": len(schedules), "schedules": schedules})
}

func (h *ScheduleHandler) GetAllSchedules(c *gin.Context) {
	page, err := h.service.ListAll(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendPage(c, page)
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	schedule, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"schedule": schedule})
}

func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	switch {
	case req.Description == nil || *req.Description == "":
		_ = c.Error(errScheduleDescription)
		return
	case req.Date == nil || *req.Date == "":
		_ = c.Error(errScheduleDate)
		return
	}

	principal, _ := middleware.CurrentPrincipal(c)
	schedule, err := h.service.CreateSchedule(c.Request.Context(), principal.ID, req.toPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, gin.H{"schedule": schedule})
}

func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	schedule, err := h.service.UpdateSchedule(c.Request.Context(), id, req.toPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, gin.H{"schedule": schedule})
}

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteSchedule(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "Schedule deleted successfully")
}

func sendPage(c *gin.Context, page *application.Page) {
	utils.SendSuccess(c, http.StatusOK, gin.H{
		"count":         len(page.Schedules),
		"scheduleCount": page.Total,
		"schedules":     page.Schedules,
	})
}
