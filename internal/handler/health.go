package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of the health endpoint.  Status reports
// process liveness only and is "healthy" even when MySQL is down.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Port      string `json:"port"`
	Server    string `json:"server"`
}

// Health writes the health document.  It never touches the database.
func (h *VisitHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(timeLayout),
		Port:      h.Cfg.Port,
		Server:    h.Hostname,
	})
}
