package timesheet

import (
	"fmt"
	"net/http"
	"time"

	"go-wfm/internal/shared/apperror"
	"go-wfm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// parseRange reads from/to query params (RFC3339), defaulting to the last
// 7 days.
func parseRange(c *gin.Context) (time.Time, time.Time, *string, bool) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "from must be RFC3339", nil)
			return time.Time{}, time.Time{}, nil, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "to must be RFC3339", nil)
			return time.Time{}, time.Time{}, nil, false
		}
		to = parsed
	}

	var employeeID *string
	if v := c.Query("employee_id"); v != "" {
		employeeID = &v
	}
	return from, to, employeeID, true
}

func (h *Handler) GetDaily(c *gin.Context) {
	from, to, employeeID, ok := parseRange(c)
	if !ok {
		return
	}

	resp, err := h.service.GetDaily(c.Request.Context(), employeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetWeekly(c *gin.Context) {
	from, to, employeeID, ok := parseRange(c)
	if !ok {
		return
	}

	resp, err := h.service.GetWeekly(c.Request.Context(), employeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Export(c *gin.Context) {
	from, to, employeeID, ok := parseRange(c)
	if !ok {
		return
	}

	buf, filename, err := h.service.ExportXLSX(c.Request.Context(), employeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
