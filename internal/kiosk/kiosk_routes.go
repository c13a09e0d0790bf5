package kiosk

import (
	"go-wfm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the terminal endpoints. Terminals retry aggressively
// on flaky warehouse wifi, so every mutation sits behind the idempotency
// middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, idempotency gin.HandlerFunc) {
	kiosk := r.Group("/kiosk")
	kiosk.Use(middleware.KioskAuth())
	if idempotency != nil {
		kiosk.Use(idempotency)
	}
	{
		kiosk.POST("/clock-in", h.ClockIn)
		kiosk.POST("/clock-out", h.ClockOut)
		kiosk.POST("/pin-toggle", h.PinToggle)
		kiosk.POST("/start-break", h.StartBreak)
		kiosk.POST("/end-break", h.EndBreak)
		kiosk.POST("/delete-time-log", h.DeleteTimeLog)
	}
}
