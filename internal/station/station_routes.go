package station

import (
	"go-wfm/internal/middleware"
	"go-wfm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	stations := r.Group("/stations")
	stations.Use(middleware.AuthMiddleware())
	{
		stations.POST("", middleware.RBACAuthorize(rbacService, "station", "create"), h.Create)
		stations.GET("", middleware.RBACAuthorize(rbacService, "station", "read"), h.GetAll)
		stations.GET("/:id", middleware.RBACAuthorize(rbacService, "station", "read"), h.GetByID)
		stations.PATCH("/:id", middleware.RBACAuthorize(rbacService, "station", "update"), h.Update)
		stations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "station", "delete"), h.Deactivate)
	}
}
