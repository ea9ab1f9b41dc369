package http

import (
	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
)

// RegisterProductRoutes registra las rutas HTTP del catálogo de productos.
func RegisterProductRoutes(r gin.IRouter, handler *ProductHandler, auth *middleware.Auth) {
	r.GET("/products", handler.GetProducts)
	r.GET("/newcollection", handler.GetNewCollection)
	r.GET("/allproducts", handler.GetAllProducts)
	r.GET("/popular", handler.GetPopular)
	r.GET("/product/:id", handler.GetProduct)

	admin := r.Group("/admin", auth.Authenticated(), auth.Roles(sharedDomain.RoleAdmin))
	{
		admin.POST("/allproducts", handler.GetAllProducts)
		admin.POST("/product/new", handler.CreateProduct)
		admin.PUT("/product/:id", handler.UpdateProduct)
		admin.DELETE("/product/:id", handler.DeleteProduct)
	}
}
