package rbac

import (
	"github.com/gin-gonic/gin"
)

// The auth middleware is injected to keep this package free of a dependency
// cycle with internal/middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc) {
	roles := r.Group("/rbac")
	roles.Use(authMW)
	{
		roles.GET("/roles", h.ListRoles)
		roles.POST("/assign", h.AssignRole)
		roles.POST("/revoke", h.RevokeRole)
	}
}
