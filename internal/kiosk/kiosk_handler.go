package kiosk

import (
	"net/http"

	"go-wfm/internal/shared/apperror"
	"go-wfm/internal/timelog"

	"github.com/gin-gonic/gin"
)

// Handler adapts the time-log service to the kiosk terminals. It reuses the
// same service the back office uses, only the envelope differs.
type Handler struct {
	timelogs timelog.Service
}

func NewHandler(timelogs timelog.Service) *Handler {
	return &Handler{timelogs: timelogs}
}

func writeKioskError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	c.JSON(httpErr.Status, KioskResponse{Success: false, Error: httpErr.Message})
}

func writeKioskBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	c.JSON(http.StatusBadRequest, KioskResponse{Success: false, Error: httpErr.Message})
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeKioskBindError(c, err)
		return
	}

	resp, err := h.timelogs.ClockIn(c.Request.Context(), req.EmployeeID, req.StationID, req.Method)
	if err != nil {
		writeKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, KioskResponse{Success: true, Message: resp.Message})
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeKioskBindError(c, err)
		return
	}

	resp, err := h.timelogs.ClockOut(c.Request.Context(), req.LogID)
	if err != nil {
		writeKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, KioskResponse{Success: true, Message: resp.Message})
}

func (h *Handler) PinToggle(c *gin.Context) {
	var req PinToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeKioskBindError(c, err)
		return
	}

	resp, err := h.timelogs.PinToggle(c.Request.Context(), req.Pin, req.StationID)
	if err != nil {
		writeKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, KioskResponse{Success: true, Message: resp.Message})
}

func (h *Handler) StartBreak(c *gin.Context) {
	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeKioskBindError(c, err)
		return
	}

	resp, err := h.timelogs.StartBreak(c.Request.Context(), req.EmployeeID)
	if err != nil {
		writeKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, KioskResponse{Success: true, Message: resp.Message})
}

func (h *Handler) EndBreak(c *gin.Context) {
	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeKioskBindError(c, err)
		return
	}

	resp, err := h.timelogs.EndBreak(c.Request.Context(), req.EmployeeID)
	if err != nil {
		writeKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, KioskResponse{Success: true, Message: resp.Message})
}

func (h *Handler) DeleteTimeLog(c *gin.Context) {
	var req DeleteTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeKioskBindError(c, err)
		return
	}

	if err := h.timelogs.DeleteCorrection(c.Request.Context(), req.ActorID, req.LogID, req.Reason); err != nil {
		writeKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, KioskResponse{Success: true, Message: "Time log deleted"})
}
