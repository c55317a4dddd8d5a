package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

type VehicleHandler struct {
	vehicleService ports.VehicleService
	logger         ports.LoggerPort
	guard          *ActionGuard
}

func NewVehicleHandler(vehicleService ports.VehicleService, logger ports.LoggerPort, guard *ActionGuard) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
		guard:          guard,
	}
}

// @Summary Listar vehículos
// @Tags vehiculos
// @Produce json
// @Success 200 {object} dataResponse{data=[]domain.Vehicle}
// @Failure 303 "Sesión expirada"
// @Failure 502 {object} notification
// @Router /vehiculos [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := load(h.guard, c, loadVehicles, func() ([]domain.Vehicle, error) {
		return h.vehicleService.FindAll(upstream(c))
	})
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar los vehículos")
		return
	}
	newDataResponse(c, http.StatusOK, vehicles, "", "")
}

// @Summary Obtener vehículo
// @Tags vehiculos
// @Produce json
// @Param id path int true "ID del vehículo"
// @Success 200 {object} dataResponse{data=domain.Vehicle}
// @Failure 404 {object} notification
// @Router /vehiculos/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vehicle, err := h.vehicleService.FindByID(upstream(c), id)
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar el vehículo")
		return
	}
	newDataResponse(c, http.StatusOK, vehicle, "", "")
}

// @Summary Crear vehículo
// @Tags vehiculos
// @Accept json
// @Produce json
// @Param request body domain.VehicleInput true "Datos del vehículo"
// @Success 201 {object} dataResponse{data=domain.Vehicle}
// @Failure 400 {object} validationResponse
// @Failure 403 {object} notification
// @Failure 409 {object} notification
// @Router /vehiculos [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var in domain.VehicleInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	vehicle, err := h.vehicleService.Create(upstream(c), &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al guardar el vehículo")
		return
	}
	newDataResponse(c, http.StatusCreated, vehicle, severitySuccess, "Vehículo guardado correctamente")
}

// @Summary Actualizar vehículo
// @Description Solo se envían los campos presentes.
// @Tags vehiculos
// @Accept json
// @Produce json
// @Param id path int true "ID del vehículo"
// @Param request body domain.VehicleInput true "Campos a actualizar"
// @Success 200 {object} dataResponse{data=domain.Vehicle}
// @Failure 400 {object} validationResponse
// @Router /vehiculos/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in domain.VehicleInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	vehicle, err := h.vehicleService.Update(upstream(c), id, &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al guardar el vehículo")
		return
	}
	newDataResponse(c, http.StatusOK, vehicle, severityInfo, "Vehículo actualizado correctamente")
}

// @Summary Eliminar vehículo
// @Tags vehiculos
// @Produce json
// @Param id path int true "ID del vehículo"
// @Success 200 {object} dataResponse
// @Failure 404 {object} notification
// @Router /vehiculos/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.vehicleService.Delete(upstream(c), id); err != nil {
		handleError(c, h.logger, err, "Error al eliminar el vehículo")
		return
	}
	newDataResponse(c, http.StatusOK, nil, severitySuccess, "Vehículo eliminado correctamente")
}

// @Summary Asignar registro de servicio
// @Tags vehiculos
// @Produce json
// @Param id path int true "ID del vehículo"
// @Param rid path int true "ID del registro de servicio"
// @Success 200 {object} dataResponse{data=domain.Vehicle}
// @Router /vehiculos/{id}/registro-servicio/{rid} [post]
func (h *VehicleHandler) AssignServiceRecord(c *gin.Context) {
	h.changeServiceRecord(c, true)
}

// @Summary Quitar registro de servicio
// @Tags vehiculos
// @Produce json
// @Param id path int true "ID del vehículo"
// @Param rid path int true "ID del registro de servicio"
// @Success 200 {object} dataResponse{data=domain.Vehicle}
// @Router /vehiculos/{id}/registro-servicio/{rid} [delete]
func (h *VehicleHandler) RemoveServiceRecord(c *gin.Context) {
	h.changeServiceRecord(c, false)
}

func (h *VehicleHandler) changeServiceRecord(c *gin.Context, assign bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rid, ok := parseID(c, "rid")
	if !ok {
		return
	}

	var (
		vehicle *domain.Vehicle
		err     error
	)
	if assign {
		vehicle, err = h.vehicleService.AssignServiceRecord(upstream(c), id, rid)
	} else {
		vehicle, err = h.vehicleService.RemoveServiceRecord(upstream(c), id, rid)
	}
	if err != nil {
		handleError(c, h.logger, err, "Error al actualizar los registros del vehículo")
		return
	}
	newDataResponse(c, http.StatusOK, vehicle, severityInfo, "Registros de servicio actualizados")
}
