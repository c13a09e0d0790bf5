package timelog

import (
	"go-wfm/internal/middleware"
	"go-wfm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	logs := r.Group("/time-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.POST("/clock-in", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.ClockIn)
		logs.POST("/clock-out", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.ClockOut)
		logs.POST("/start-break", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.StartBreak)
		logs.POST("/end-break", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.EndBreak)
		logs.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "timelog", "read"), h.GetByEmployee)
		logs.PATCH("/:id", middleware.RBACAuthorize(rbacService, "timelog", "update"), h.UpdateEntry)

		corrections := logs.Group("/corrections")
		{
			corrections.POST("", middleware.RBACAuthorize(rbacService, "timelog", "correct"), h.CreateCorrection)
			corrections.POST("/bulk", middleware.RBACAuthorize(rbacService, "timelog", "correct"), h.BulkCreateCorrections)
			corrections.PATCH("/:id", middleware.RBACAuthorize(rbacService, "timelog", "correct"), h.EditCorrection)
			corrections.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timelog", "correct"), h.DeleteCorrection)
		}
	}
}
