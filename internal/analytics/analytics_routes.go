package analytics

import (
	"go-wfm/internal/middleware"
	"go-wfm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	stats := r.Group("/analytics")
	stats.Use(middleware.AuthMiddleware())
	{
		stats.GET("/snapshot", middleware.RBACAuthorize(rbacService, "analytics", "read"), h.GetSnapshot)
		stats.POST("/refresh", middleware.RBACAuthorize(rbacService, "analytics", "read"), h.Refresh)
		stats.GET("/corrections", middleware.RBACAuthorize(rbacService, "analytics", "read"), h.GetCorrectionStats)
	}
}
