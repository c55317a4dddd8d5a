package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/access"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	rolesKey        = "session_roles"
	tokenKey        = "session_token"
)

// RequestIDMiddleware keeps a caller supplied X-Request-ID or issues a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GateMiddleware applies the route guard before any handler runs. The token it
// read and the roles it decoded stay on the context for the handlers.
func GateMiddleware(session ports.SessionPort, logger ports.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token, authenticated := session.Token(ctx)
		roles := session.Roles(ctx)

		decision := access.Decide(c.Request.URL.Path, authenticated, roles)
		if !decision.Allow {
			logger.Info("Navigation redirected", map[string]interface{}{
				"path":        c.Request.URL.Path,
				"redirect_to": decision.RedirectTo,
				"request_id":  c.GetString(requestIDKey),
			})
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}

		c.Set(tokenKey, token)
		c.Set(rolesKey, roles)
		c.Next()
	}
}

// RequireEditor hides write actions from users that cannot edit. The fleet API
// still decides on its own.
func RequireEditor(logger ports.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.CanEdit(rolesFrom(c)) {
			logger.Warn("Write attempt without editing role", map[string]interface{}{
				"route":      c.FullPath(),
				"request_id": c.GetString(requestIDKey),
			})
			newNotification(c, http.StatusForbidden, severityError, "No Autorizado", "No tienes permisos para realizar esta acción")
			return
		}
		c.Next()
	}
}

func rolesFrom(c *gin.Context) domain.Roles {
	if v, ok := c.Get(rolesKey); ok {
		if roles, ok := v.(domain.Roles); ok {
			return roles
		}
	}
	return domain.NewRoles()
}
