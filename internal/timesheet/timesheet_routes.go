package timesheet

import (
	"go-wfm/internal/middleware"
	"go-wfm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	sheets := r.Group("/timesheets")
	sheets.Use(middleware.AuthMiddleware())
	{
		sheets.GET("/daily", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.GetDaily)
		sheets.GET("/weekly", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.GetWeekly)
		sheets.GET("/export", middleware.RBACAuthorize(rbacService, "timesheet", "export"), h.Export)
	}
}
