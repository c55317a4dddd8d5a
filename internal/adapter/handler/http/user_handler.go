package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	logger      ports.LoggerPort
	guard       *ActionGuard
}

func NewUserHandler(userService ports.UserService, logger ports.LoggerPort, guard *ActionGuard) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		guard:       guard,
	}
}

// @Summary Listar usuarios
// @Description Solo administradores.
// @Tags configuracion
// @Produce json
// @Success 200 {object} dataResponse{data=[]domain.User}
// @Router /configuracion/usuarios [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := load(h.guard, c, loadUsers, func() ([]domain.User, error) {
		return h.userService.FindAll(upstream(c))
	})
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar los usuarios")
		return
	}
	newDataResponse(c, http.StatusOK, users, "", "")
}

// @Summary Obtener usuario
// @Tags configuracion
// @Produce json
// @Param id path int true "ID del usuario"
// @Success 200 {object} dataResponse{data=domain.User}
// @Router /configuracion/usuarios/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.FindByID(upstream(c), id)
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar el usuario")
		return
	}
	newDataResponse(c, http.StatusOK, user, "", "")
}

// @Summary Actualizar usuario
// @Description La contraseña no se modifica desde aquí.
// @Tags configuracion
// @Accept json
// @Produce json
// @Param id path int true "ID del usuario"
// @Param request body domain.UserInput true "Campos a actualizar"
// @Success 200 {object} dataResponse{data=domain.User}
// @Failure 400 {object} validationResponse
// @Router /configuracion/usuarios/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in domain.UserInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	user, err := h.userService.Update(upstream(c), id, &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al actualizar el usuario")
		return
	}
	newDataResponse(c, http.StatusOK, user, severitySuccess, "Usuario actualizado")
}

// @Summary Asignar rol
// @Tags configuracion
// @Produce json
// @Param id path int true "ID del usuario"
// @Param rolId path int true "ID del rol"
// @Success 200 {object} dataResponse{data=domain.User}
// @Router /configuracion/usuarios/{id}/roles/{rolId} [post]
func (h *UserHandler) AssignRole(c *gin.Context) {
	h.changeRole(c, true)
}

// @Summary Quitar rol
// @Tags configuracion
// @Produce json
// @Param id path int true "ID del usuario"
// @Param rolId path int true "ID del rol"
// @Success 200 {object} dataResponse{data=domain.User}
// @Router /configuracion/usuarios/{id}/roles/{rolId} [delete]
func (h *UserHandler) RemoveRole(c *gin.Context) {
	h.changeRole(c, false)
}

func (h *UserHandler) changeRole(c *gin.Context, assign bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	roleID, ok := parseID(c, "rolId")
	if !ok {
		return
	}

	var (
		user *domain.User
		err  error
	)
	if assign {
		user, err = h.userService.AssignRole(upstream(c), id, roleID)
	} else {
		user, err = h.userService.RemoveRole(upstream(c), id, roleID)
	}
	if err != nil {
		handleError(c, h.logger, err, "Error al actualizar los roles")
		return
	}
	newDataResponse(c, http.StatusOK, user, severitySuccess, "Roles actualizados")
}

// @Summary Listar roles
// @Tags configuracion
// @Produce json
// @Success 200 {object} dataResponse{data=[]domain.Role}
// @Router /configuracion/roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := load(h.guard, c, loadRoles, func() ([]domain.Role, error) {
		return h.userService.Roles(upstream(c))
	})
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar los roles")
		return
	}
	newDataResponse(c, http.StatusOK, roles, "", "")
}
