package http

import (
	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
)

// RegisterOrderRoutes registra las rutas HTTP de pedidos.
func RegisterOrderRoutes(r gin.IRouter, handler *OrderHandler, auth *middleware.Auth) {
	user := r.Group("", auth.Authenticated())
	{
		user.POST("/order/new", handler.CreateOrder)
		user.GET("/order/:id", handler.GetOrder)
		user.GET("/orders", handler.MyOrders)
	}

	admin := r.Group("/admin", auth.Authenticated(), auth.Roles(sharedDomain.RoleAdmin))
	{
		admin.POST("/orders", handler.AllOrders)
		admin.GET("/orders/stats", handler.OrderStats)
		admin.PUT("/order/:id", handler.UpdateOrder)
		admin.DELETE("/order/:id", handler.DeleteOrder)
	}
}
