package http

import (
	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
)

// RegisterScheduleRoutes registra las rutas HTTP de la agenda.
func RegisterScheduleRoutes(r gin.IRouter, handler *ScheduleHandler, auth *middleware.Auth) {
	r.GET("/schedules", handler.GetSchedules)
	r.GET("/schedule/:id", handler.GetSchedule)
	r.GET("/newcollectionschedules", handler.GetNewCollection)
	r.GET("/popularschedules", handler.GetPopular)
	r.GET("/allschedules", handler.GetAllSchedules)

	r.POST("/schedule/new", auth.Authenticated(), handler.CreateSchedule)

	isAdmin := []gin.HandlerFunc{auth.Authenticated(), auth.Roles(sharedDomain.RoleAdmin)}
	r.GET("/allschedulesad", append(isAdmin, handler.GetAllSchedules)...)
	r.PUT("/admin/schedule/:id", append(isAdmin, handler.UpdateSchedule)...)
	r.DELETE("/admin/schedule/:id", append(isAdmin, handler.DeleteSchedule)...)
}
