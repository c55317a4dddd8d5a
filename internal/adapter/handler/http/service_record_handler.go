package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

type ServiceRecordHandler struct {
	recordService ports.ServiceRecordService
	logger        ports.LoggerPort
	guard         *ActionGuard
}

// ServiceRecordOptions fills the vehicle and workshop selectors of the form.
type ServiceRecordOptions struct {
	Vehiculos []domain.Vehicle  `json:"vehiculos"`
	Talleres  []domain.Workshop `json:"talleres"`
}

func NewServiceRecordHandler(recordService ports.ServiceRecordService, logger ports.LoggerPort, guard *ActionGuard) *ServiceRecordHandler {
	return &ServiceRecordHandler{
		recordService: recordService,
		logger:        logger,
		guard:         guard,
	}
}

// @Summary Listar registros de servicio
// @Tags registro-servicio
// @Produce json
// @Success 200 {object} dataResponse{data=[]domain.ServiceRecord}
// @Router /registro-servicio [get]
func (h *ServiceRecordHandler) ListServiceRecords(c *gin.Context) {
	records, err := load(h.guard, c, loadRecords, func() ([]domain.ServiceRecord, error) {
		return h.recordService.FindAll(upstream(c))
	})
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar los registros de servicio")
		return
	}
	newDataResponse(c, http.StatusOK, records, "", "")
}

// @Summary Opciones del formulario
// @Description Vehículos y talleres disponibles para un registro de servicio.
// @Tags registro-servicio
// @Produce json
// @Success 200 {object} dataResponse{data=ServiceRecordOptions}
// @Router /registro-servicio/opciones [get]
func (h *ServiceRecordHandler) GetOptions(c *gin.Context) {
	var (
		opts ServiceRecordOptions
		g    errgroup.Group
	)
	g.Go(func() error {
		vehicles, err := load(h.guard, c, loadVehicles, func() ([]domain.Vehicle, error) {
			return h.recordService.FindVehicles(upstream(c))
		})
		opts.Vehiculos = vehicles
		return err
	})
	g.Go(func() error {
		workshops, err := load(h.guard, c, loadWorkshops, func() ([]domain.Workshop, error) {
			return h.recordService.FindWorkshops(upstream(c))
		})
		opts.Talleres = workshops
		return err
	})
	if err := g.Wait(); err != nil {
		handleError(c, h.logger, err, "Error al cargar vehículos y talleres")
		return
	}
	newDataResponse(c, http.StatusOK, opts, "", "")
}

// @Summary Obtener registro de servicio
// @Tags registro-servicio
// @Produce json
// @Param id path int true "ID del registro"
// @Success 200 {object} dataResponse{data=domain.ServiceRecord}
// @Failure 404 {object} notification
// @Router /registro-servicio/{id} [get]
func (h *ServiceRecordHandler) GetServiceRecord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	record, err := h.recordService.FindByID(upstream(c), id)
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar el registro de servicio")
		return
	}
	newDataResponse(c, http.StatusOK, record, "", "")
}

// @Summary Crear registro de servicio
// @Description El vehículo y el taller se envían como {"id": n}.
// @Tags registro-servicio
// @Accept json
// @Produce json
// @Param request body domain.ServiceRecordInput true "Datos del registro"
// @Success 201 {object} dataResponse{data=domain.ServiceRecord}
// @Failure 400 {object} validationResponse
// @Router /registro-servicio [post]
func (h *ServiceRecordHandler) CreateServiceRecord(c *gin.Context) {
	var in domain.ServiceRecordInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	record, err := h.recordService.Create(upstream(c), &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al guardar el registro de servicio")
		return
	}
	newDataResponse(c, http.StatusCreated, record, severitySuccess, "Registro de servicio guardado correctamente")
}

// @Summary Actualizar registro de servicio
// @Tags registro-servicio
// @Accept json
// @Produce json
// @Param id path int true "ID del registro"
// @Param request body domain.ServiceRecordInput true "Campos a actualizar"
// @Success 200 {object} dataResponse{data=domain.ServiceRecord}
// @Router /registro-servicio/{id} [put]
func (h *ServiceRecordHandler) UpdateServiceRecord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in domain.ServiceRecordInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	record, err := h.recordService.Update(upstream(c), id, &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al guardar el registro de servicio")
		return
	}
	newDataResponse(c, http.StatusOK, record, severityInfo, "Registro de servicio actualizado correctamente")
}

// @Summary Eliminar registro de servicio
// @Tags registro-servicio
// @Produce json
// @Param id path int true "ID del registro"
// @Success 200 {object} dataResponse
// @Router /registro-servicio/{id} [delete]
func (h *ServiceRecordHandler) DeleteServiceRecord(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.recordService.Delete(upstream(c), id); err != nil {
		handleError(c, h.logger, err, "Error al eliminar el registro de servicio")
		return
	}
	newDataResponse(c, http.StatusOK, nil, severitySuccess, "Registro de servicio eliminado correctamente")
}
