package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/access"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	session     ports.SessionPort
	logger      ports.LoggerPort
}

// SessionView describes the signed in user to the console.
type SessionView struct {
	Authenticated bool              `json:"authenticated"`
	Email         string            `json:"email,omitempty" example:"admin@flota.ec"`
	Roles         []string          `json:"roles"`
	CanEdit       bool              `json:"canEdit"`
	IsAdmin       bool              `json:"isAdmin"`
	Menu          []access.MenuItem `json:"menu"`
	RedirectTo    string            `json:"redirectTo,omitempty" example:"/dashboard"`
}

func NewAuthHandler(authService ports.AuthService, session ports.SessionPort, logger ports.LoggerPort) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
		logger:      logger,
	}
}

func newSessionView(authenticated bool, roles domain.Roles) SessionView {
	return SessionView{
		Authenticated: authenticated,
		Roles:         roles.List(),
		CanEdit:       access.CanEdit(roles),
		IsAdmin:       access.IsAdmin(roles),
		Menu:          access.Menu(authenticated, roles),
	}
}

// @Summary Vista de inicio de sesión
// @Description Redirige al dashboard si ya existe una sesión.
// @Tags auth
// @Produce json
// @Success 200 {object} dataResponse{data=SessionView}
// @Success 302 "Sesión activa"
// @Router /auth/login [get]
func (h *AuthHandler) LoginView(c *gin.Context) {
	if h.session.IsAuthenticated(c.Request.Context()) {
		c.Redirect(http.StatusFound, access.LandingRoute)
		return
	}
	newDataResponse(c, http.StatusOK, newSessionView(false, domain.NewRoles()), "", "")
}

// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.Credentials true "Credenciales"
// @Success 200 {object} dataResponse{data=SessionView}
// @Failure 401 {object} notification
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var creds domain.Credentials
	if !bindJSON(c, h.logger, &creds) {
		return
	}

	result, err := h.authService.Login(upstream(c), creds)
	if errors.Is(err, domain.ErrUnauthorized) {
		newNotification(c, http.StatusUnauthorized, severityError, "Error", "Credenciales incorrectas")
		return
	}
	if err != nil {
		handleError(c, h.logger, err, "Error al iniciar sesión")
		return
	}

	view := newSessionView(true, h.session.Roles(c.Request.Context()))
	view.Email = result.Email
	view.RedirectTo = access.LandingRoute
	newDataResponse(c, http.StatusOK, view, severitySuccess, "Inicio de sesión exitoso")
}

// @Summary Registrarse
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.Registration true "Datos de registro"
// @Success 201 {object} dataResponse{data=domain.User}
// @Failure 400 {object} validationResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var reg domain.Registration
	if !bindJSON(c, h.logger, &reg) {
		return
	}
	user, err := h.authService.Register(upstream(c), reg)
	if err != nil {
		handleError(c, h.logger, err, "Error al registrar el usuario")
		return
	}
	newDataResponse(c, http.StatusCreated, user, severitySuccess, "Registro exitoso, por favor inicia sesión")
}

// @Summary Cerrar sesión
// @Tags auth
// @Success 303 "Redirige al inicio de sesión"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		handleError(c, h.logger, err, "Error al cerrar sesión")
		return
	}
	c.Redirect(http.StatusSeeOther, access.LoginRoute)
}

// @Summary Menú de navegación
// @Tags auth
// @Produce json
// @Success 200 {object} dataResponse{data=SessionView}
// @Router /menu [get]
func (h *AuthHandler) Menu(c *gin.Context) {
	newDataResponse(c, http.StatusOK, newSessionView(true, rolesFrom(c)), "", "")
}

// @Summary Ver perfil
// @Tags perfil
// @Produce json
// @Success 200 {object} dataResponse{data=domain.User}
// @Router /perfil [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.Profile(upstream(c))
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar el perfil")
		return
	}
	newDataResponse(c, http.StatusOK, user, "", "")
}

// @Summary Actualizar perfil
// @Description Una contraseña vacía deja la actual.
// @Tags perfil
// @Accept json
// @Produce json
// @Param request body domain.UserInput true "Campos a actualizar"
// @Success 200 {object} dataResponse{data=domain.User}
// @Failure 400 {object} validationResponse
// @Router /perfil [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in domain.UserInput
	if !bindJSON(c, h.logger, &in) {
		return
	}

	ctx := upstream(c)
	profile, err := h.authService.Profile(ctx)
	if err == nil && profile == nil {
		err = domain.ErrUnauthorized
	}
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar el perfil")
		return
	}
	user, err := h.authService.UpdateProfile(ctx, profile.ID, &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al actualizar el perfil")
		return
	}
	newDataResponse(c, http.StatusOK, user, severitySuccess, "Perfil actualizado correctamente")
}
