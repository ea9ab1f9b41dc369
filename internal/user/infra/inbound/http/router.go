package http

import (
	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/davicafu/storefront/internal/shared/infra/http/middleware"
)

// RegisterUserRoutes registra las rutas de cuentas. limiter protege las rutas
// sin sesión; puede ser nil.
func RegisterUserRoutes(r gin.IRouter, handler *UserHandler, auth *middleware.Auth, limiter *middleware.RateLimiter) {
	public := r.Group("")
	if limiter != nil {
		public.Use(limiter.Middleware())
	}
	{
		public.POST("/register", handler.Register)
		public.POST("/login", handler.Login)
		public.POST("/password/forgot", handler.ForgotPassword)
		public.PUT("/password/reset/:token", handler.ResetPassword)
	}
	r.GET("/logout", handler.Logout)

	me := r.Group("", auth.Authenticated())
	{
		me.GET("/me", handler.Me)
		me.PUT("/password/update", handler.UpdatePassword)
		me.PUT("/me/update", handler.UpdateProfile)
	}

	admin := r.Group("/admin", auth.Authenticated(), auth.Roles(sharedDomain.RoleAdmin))
	{
		admin.GET("/users", handler.AllUsers)
		admin.GET("/user/:id", handler.GetUser)
		admin.PUT("/user/:id", handler.UpdateUser)
		admin.DELETE("/user/:id", handler.DeleteUser)
	}
}
