package auth

import (
	"go-wfm/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/register", middleware.AuthMiddleware(), middleware.RoleMiddleware("ADMIN", "MANAGER"), h.Register)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}
