package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

type WorkshopHandler struct {
	workshopService ports.WorkshopService
	logger          ports.LoggerPort
	guard           *ActionGuard
}

func NewWorkshopHandler(workshopService ports.WorkshopService, logger ports.LoggerPort, guard *ActionGuard) *WorkshopHandler {
	return &WorkshopHandler{
		workshopService: workshopService,
		logger:          logger,
		guard:           guard,
	}
}

// @Summary Listar talleres
// @Tags talleres
// @Produce json
// @Success 200 {object} dataResponse{data=[]domain.Workshop}
// @Router /talleres [get]
func (h *WorkshopHandler) ListWorkshops(c *gin.Context) {
	workshops, err := load(h.guard, c, loadWorkshops, func() ([]domain.Workshop, error) {
		return h.workshopService.FindAll(upstream(c))
	})
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar los talleres")
		return
	}
	newDataResponse(c, http.StatusOK, workshops, "", "")
}

// @Summary Obtener taller
// @Tags talleres
// @Produce json
// @Param id path int true "ID del taller"
// @Success 200 {object} dataResponse{data=domain.Workshop}
// @Failure 404 {object} notification
// @Router /talleres/{id} [get]
func (h *WorkshopHandler) GetWorkshop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	workshop, err := h.workshopService.FindByID(upstream(c), id)
	if err != nil {
		handleError(c, h.logger, err, "Error al cargar el taller")
		return
	}
	newDataResponse(c, http.StatusOK, workshop, "", "")
}

// @Summary Crear taller
// @Tags talleres
// @Accept json
// @Produce json
// @Param request body domain.WorkshopInput true "Datos del taller"
// @Success 201 {object} dataResponse{data=domain.Workshop}
// @Failure 400 {object} validationResponse
// @Router /talleres [post]
func (h *WorkshopHandler) CreateWorkshop(c *gin.Context) {
	var in domain.WorkshopInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	workshop, err := h.workshopService.Create(upstream(c), &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al guardar el taller")
		return
	}
	newDataResponse(c, http.StatusCreated, workshop, severitySuccess, "Taller guardado correctamente")
}

// @Summary Actualizar taller
// @Tags talleres
// @Accept json
// @Produce json
// @Param id path int true "ID del taller"
// @Param request body domain.WorkshopInput true "Campos a actualizar"
// @Success 200 {object} dataResponse{data=domain.Workshop}
// @Router /talleres/{id} [put]
func (h *WorkshopHandler) UpdateWorkshop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in domain.WorkshopInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	workshop, err := h.workshopService.Update(upstream(c), id, &in)
	if err != nil {
		handleError(c, h.logger, err, "Error al guardar el taller")
		return
	}
	newDataResponse(c, http.StatusOK, workshop, severityInfo, "Taller actualizado correctamente")
}

// @Summary Eliminar taller
// @Tags talleres
// @Produce json
// @Param id path int true "ID del taller"
// @Success 200 {object} dataResponse
// @Router /talleres/{id} [delete]
func (h *WorkshopHandler) DeleteWorkshop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.workshopService.Delete(upstream(c), id); err != nil {
		handleError(c, h.logger, err, "Error al eliminar el taller")
		return
	}
	newDataResponse(c, http.StatusOK, nil, severitySuccess, "Taller eliminado correctamente")
}
