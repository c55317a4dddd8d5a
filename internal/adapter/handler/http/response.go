package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/access"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
)

const (
	severitySuccess = "success"
	severityInfo    = "info"
	severityWarn    = "warn"
	severityError   = "error"
)

// notification is what the console shows as a toast.
type notification struct {
	Severity string `json:"severity" example:"error"`
	Summary  string `json:"summary" example:"Error"`
	Detail   string `json:"detail" example:"No se pudo cargar los vehículos"`
}

type validationResponse struct {
	notification
	Fields []validation.FieldError `json:"fields"`
}

type dataResponse struct {
	Data         interface{}   `json:"data"`
	Notification *notification `json:"notification,omitempty"`
}

func newNotification(c *gin.Context, status int, severity, summary, detail string) {
	c.AbortWithStatusJSON(status, notification{Severity: severity, Summary: summary, Detail: detail})
}

// newDataResponse sends data with an optional toast. An empty detail sends none.
func newDataResponse(c *gin.Context, status int, data interface{}, severity, detail string) {
	resp := dataResponse{Data: data}
	if detail != "" {
		resp.Notification = &notification{Severity: severity, Summary: "Éxito", Detail: detail}
	}
	c.JSON(status, resp)
}

// handleError turns a service failure into a response. fallback is the
// message shown when the failure carries none the user can act on.
func handleError(c *gin.Context, logger ports.LoggerPort, err error, fallback string) {
	fields := map[string]interface{}{
		"error":      err.Error(),
		"route":      c.FullPath(),
		"request_id": c.GetString(requestIDKey),
	}

	var verr *validation.Error
	var reqErr *domain.RequestFailedError
	var netErr *domain.NetworkFailedError

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		logger.Warn("Session rejected by fleet API", fields)
		c.Redirect(http.StatusSeeOther, access.LoginRoute)
		c.Abort()
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, validationResponse{
			notification: notification{Severity: severityError, Summary: "Error", Detail: verr.Error()},
			Fields:       verr.Fields,
		})
	case errors.As(err, &reqErr):
		logger.Error(fallback, fields)
		status := reqErr.Status
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		newNotification(c, status, severityError, "Error", reqErr.Message)
	case errors.As(err, &netErr):
		logger.Error(fallback, fields)
		newNotification(c, http.StatusServiceUnavailable, severityError, "Error", "No se pudo conectar con el servidor")
	default:
		logger.Error(fallback, fields)
		newNotification(c, http.StatusInternalServerError, severityError, "Error", fallback)
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		newNotification(c, http.StatusBadRequest, severityError, "Error", "Identificador inválido")
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, logger ports.LoggerPort, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		logger.Warn("Failed JSON parse", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		newNotification(c, http.StatusBadRequest, severityError, "Error", "Formato JSON inválido")
		return false
	}
	return true
}
