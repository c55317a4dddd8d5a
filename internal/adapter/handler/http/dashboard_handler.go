package http

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/reports"
	"golang.org/x/sync/errgroup"
)

// es-ES grouping, two decimals.
const numberFormat = "#.###,##"

type DashboardHandler struct {
	vehicleService  ports.VehicleService
	workshopService ports.WorkshopService
	recordService   ports.ServiceRecordService
	logger          ports.LoggerPort
	guard           *ActionGuard
}

type DashboardView struct {
	reports.Summary
	PromedioOdometroTexto string `json:"promedioOdometroTexto" example:"45.250,50 km"`
}

type VehicleCostView struct {
	reports.VehicleCost
	CostoTexto string `json:"costoTexto" example:"1.250,00 US$"`
}

type WorkshopCostView struct {
	reports.WorkshopCost
	CostoTexto string `json:"costoTexto"`
}

type VehicleIntervalView struct {
	reports.VehicleInterval
	PromedioTexto string `json:"promedioTexto" example:"30,50"`
}

type OverdueVehicleView struct {
	domain.Vehicle
	Resumen string `json:"resumen" example:"Toyota Corolla (Odómetro: 60.000 km)"`
}

type ReportView struct {
	CostosPorVehiculo       []VehicleCostView          `json:"costosPorVehiculo"`
	CostosPorTaller         []WorkshopCostView         `json:"costosPorTaller"`
	Frecuencia              []reports.VehicleFrequency `json:"frecuenciaMantenimiento"`
	TiempoPromedio          []VehicleIntervalView      `json:"tiempoPromedioEntreServicios"`
	ReparacionesRecurrentes []reports.RepairCount      `json:"reparacionesRecurrentes"`
	RequierenRevision       []OverdueVehicleView       `json:"requierenRevision"`
}

func NewDashboardHandler(
	vehicleService ports.VehicleService,
	workshopService ports.WorkshopService,
	recordService ports.ServiceRecordService,
	logger ports.LoggerPort,
	guard *ActionGuard,
) *DashboardHandler {
	return &DashboardHandler{
		vehicleService:  vehicleService,
		workshopService: workshopService,
		recordService:   recordService,
		logger:          logger,
		guard:           guard,
	}
}

// loadFleet fetches the three collections concurrently and returns once all
// of them have completed.
func (h *DashboardHandler) loadFleet(c *gin.Context) ([]domain.Vehicle, []domain.Workshop, []domain.ServiceRecord, error) {
	var (
		vehicles  []domain.Vehicle
		workshops []domain.Workshop
		records   []domain.ServiceRecord
		g         errgroup.Group
	)
	g.Go(func() error {
		var err error
		vehicles, err = load(h.guard, c, loadVehicles, func() ([]domain.Vehicle, error) {
			return h.vehicleService.FindAll(upstream(c))
		})
		return err
	})
	g.Go(func() error {
		var err error
		workshops, err = load(h.guard, c, loadWorkshops, func() ([]domain.Workshop, error) {
			return h.workshopService.FindAll(upstream(c))
		})
		return err
	})
	g.Go(func() error {
		var err error
		records, err = load(h.guard, c, loadRecords, func() ([]domain.ServiceRecord, error) {
			return h.recordService.FindAll(upstream(c))
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return vehicles, workshops, records, nil
}

// @Summary Dashboard
// @Description Totales, vehículos por marca y por estado, promedio de odómetro.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dataResponse{data=DashboardView}
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	vehicles, workshops, records, err := h.loadFleet(c)
	if err != nil {
		handleError(c, h.logger, err, "No se pudieron cargar los datos")
		return
	}

	summary := reports.Summarize(vehicles, workshops, records)
	newDataResponse(c, http.StatusOK, DashboardView{
		Summary:               summary,
		PromedioOdometroTexto: humanize.FormatFloat(numberFormat, summary.PromedioOdometro) + " km",
	}, "", "")
}

// @Summary Reportes
// @Description Costos, frecuencia, intervalo entre servicios y reparaciones recurrentes.
// @Description Incluye un aviso cuando hay vehículos que superan el odómetro de revisión.
// @Tags reportes
// @Produce json
// @Success 200 {object} dataResponse{data=ReportView}
// @Failure 502 {object} notification
// @Router /reportes [get]
func (h *DashboardHandler) Reports(c *gin.Context) {
	vehicles, workshops, records, err := h.loadFleet(c)
	if err != nil {
		handleError(c, h.logger, err, "No se pudieron cargar los datos")
		return
	}

	view := buildReportView(vehicles, workshops, records)
	resp := dataResponse{Data: view}
	if len(view.RequierenRevision) > 0 {
		resp.Notification = &notification{
			Severity: severityWarn,
			Summary:  "Atención",
			Detail: fmt.Sprintf("Los siguientes vehículos requieren revisión por superar los %s km",
				humanize.FormatFloat("#,###.", domain.OverdueOdometer)),
		}
	}
	c.JSON(http.StatusOK, resp)
}

func buildReportView(vehicles []domain.Vehicle, workshops []domain.Workshop, records []domain.ServiceRecord) ReportView {
	view := ReportView{
		Frecuencia:              reports.MaintenanceFrequency(vehicles, records),
		ReparacionesRecurrentes: reports.RecurringRepairs(records),
	}

	vehicleCosts := reports.CostPerVehicle(vehicles, records)
	view.CostosPorVehiculo = make([]VehicleCostView, 0, len(vehicleCosts))
	for _, vc := range vehicleCosts {
		view.CostosPorVehiculo = append(view.CostosPorVehiculo, VehicleCostView{VehicleCost: vc, CostoTexto: currency(vc.CostoTotal)})
	}

	workshopCosts := reports.CostPerWorkshop(workshops, records)
	view.CostosPorTaller = make([]WorkshopCostView, 0, len(workshopCosts))
	for _, wc := range workshopCosts {
		view.CostosPorTaller = append(view.CostosPorTaller, WorkshopCostView{WorkshopCost: wc, CostoTexto: currency(wc.CostoTotal)})
	}

	intervals := reports.MeanServiceInterval(vehicles, records)
	view.TiempoPromedio = make([]VehicleIntervalView, 0, len(intervals))
	for _, vi := range intervals {
		view.TiempoPromedio = append(view.TiempoPromedio, VehicleIntervalView{
			VehicleInterval: vi,
			PromedioTexto:   humanize.FormatFloat(numberFormat, vi.PromedioDias),
		})
	}

	overdue := reports.OverdueVehicles(vehicles)
	view.RequierenRevision = make([]OverdueVehicleView, 0, len(overdue))
	for _, v := range overdue {
		view.RequierenRevision = append(view.RequierenRevision, OverdueVehicleView{
			Vehicle: v,
			Resumen: fmt.Sprintf("%s %s (Odómetro: %s km)", v.Marca, v.Modelo, humanize.FormatFloat("#.###,", float64(v.Odometro))),
		})
	}
	return view
}

func currency(v float64) string {
	return humanize.FormatFloat(numberFormat, v) + " US$"
}
