// Package reports derives read-only statistics from collections the services
// already loaded. Nothing here touches the network or mutates its inputs.
package reports

import (
	"sort"
	"time"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

// UnspecifiedDescription groups service records that carry no description.
const UnspecifiedDescription = "No especificada"

type VehicleCost struct {
	VehiculoID int64   `json:"vehiculoId"`
	Marca      string  `json:"marca"`
	Modelo     string  `json:"modelo"`
	CostoTotal float64 `json:"costoTotal"`
}

type WorkshopCost struct {
	TallerID   int64   `json:"tallerId"`
	Nombre     string  `json:"nombre"`
	CostoTotal float64 `json:"costoTotal"`
}

type VehicleFrequency struct {
	VehiculoID             int64  `json:"vehiculoId"`
	Marca                  string `json:"marca"`
	Modelo                 string `json:"modelo"`
	CantidadMantenimientos int    `json:"cantidadMantenimientos"`
}

type VehicleInterval struct {
	VehiculoID   int64   `json:"vehiculoId"`
	Marca        string  `json:"marca"`
	Modelo       string  `json:"modelo"`
	PromedioDias float64 `json:"promedioDias"`
}

type RepairCount struct {
	Descripcion string `json:"descripcion"`
	Cantidad    int    `json:"cantidad"`
}

// CostPerVehicle sums costo per vehicle, in vehicle order. Vehicles with no
// records report zero.
func CostPerVehicle(vehicles []domain.Vehicle, records []domain.ServiceRecord) []VehicleCost {
	totals := make(map[int64]float64, len(vehicles))
	for i := range records {
		totals[records[i].VehicleID()] += float64(records[i].Costo)
	}

	out := make([]VehicleCost, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleCost{
			VehiculoID: v.ID,
			Marca:      v.Marca,
			Modelo:     v.Modelo,
			CostoTotal: totals[v.ID],
		})
	}
	return out
}

func CostPerWorkshop(workshops []domain.Workshop, records []domain.ServiceRecord) []WorkshopCost {
	totals := make(map[int64]float64, len(workshops))
	for i := range records {
		totals[records[i].WorkshopID()] += float64(records[i].Costo)
	}

	out := make([]WorkshopCost, 0, len(workshops))
	for _, w := range workshops {
		out = append(out, WorkshopCost{TallerID: w.ID, Nombre: w.Nombre, CostoTotal: totals[w.ID]})
	}
	return out
}

func MaintenanceFrequency(vehicles []domain.Vehicle, records []domain.ServiceRecord) []VehicleFrequency {
	counts := make(map[int64]int, len(vehicles))
	for i := range records {
		counts[records[i].VehicleID()]++
	}

	out := make([]VehicleFrequency, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleFrequency{
			VehiculoID:             v.ID,
			Marca:                  v.Marca,
			Modelo:                 v.Modelo,
			CantidadMantenimientos: counts[v.ID],
		})
	}
	return out
}

// MeanServiceInterval orders each vehicle's records by fechaServicio and
// averages the gaps between consecutive services, in days. Fewer than two
// records give zero.
func MeanServiceInterval(vehicles []domain.Vehicle, records []domain.ServiceRecord) []VehicleInterval {
	dates := make(map[int64][]time.Time, len(vehicles))
	for i := range records {
		id := records[i].VehicleID()
		dates[id] = append(dates[id], records[i].FechaServicio.Time)
	}

	out := make([]VehicleInterval, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleInterval{
			VehiculoID:   v.ID,
			Marca:        v.Marca,
			Modelo:       v.Modelo,
			PromedioDias: meanGapDays(dates[v.ID]),
		})
	}
	return out
}

func meanGapDays(dates []time.Time) float64 {
	if len(dates) < 2 {
		return 0
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var total time.Duration
	for i := 1; i < len(dates); i++ {
		gap := dates[i].Sub(dates[i-1])
		if gap < 0 {
			gap = -gap
		}
		total += gap
	}
	return total.Hours() / 24 / float64(len(dates)-1)
}

// RecurringRepairs counts records per description in first-seen order.
func RecurringRepairs(records []domain.ServiceRecord) []RepairCount {
	index := make(map[string]int)
	var out []RepairCount
	for i := range records {
		desc := records[i].Descripcion
		if desc == "" {
			desc = UnspecifiedDescription
		}
		if pos, ok := index[desc]; ok {
			out[pos].Cantidad++
			continue
		}
		index[desc] = len(out)
		out = append(out, RepairCount{Descripcion: desc, Cantidad: 1})
	}
	if out == nil {
		out = []RepairCount{}
	}
	return out
}

// OverdueVehicles returns the vehicles whose odometer is past
// domain.OverdueOdometer, in input order.
func OverdueVehicles(vehicles []domain.Vehicle) []domain.Vehicle {
	out := []domain.Vehicle{}
	for i := range vehicles {
		if vehicles[i].NeedsReview() {
			out = append(out, vehicles[i])
		}
	}
	return out
}
