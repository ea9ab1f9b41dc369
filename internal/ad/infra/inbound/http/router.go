package http

import (
	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
)

func RegisterAdRoutes(r gin.IRouter, handler *AdHandler, auth *middleware.Auth) {
	r.GET("/ads", handler.GetAds)
	r.GET("/ad/:id", handler.GetAd)
	r.GET("/newcollectionads", handler.GetNewCollection)
	r.GET("/popularads", handler.GetPopular)
	r.GET("/allads", handler.GetAllAds)

	r.POST("/ad/new", auth.Authenticated(), handler.CreateAd)

	isAdmin := []gin.HandlerFunc{auth.Authenticated(), auth.Roles(sharedDomain.RoleAdmin)}
	r.GET("/alladsad", append(isAdmin, handler.GetAllAds)...)
	r.PUT("/admin/ad/:id", append(isAdmin, handler.UpdateAd)...)
	r.DELETE("/admin/ad/:id", append(isAdmin, handler.DeleteAd)...)
}
