package reports

import "github.com/sm8ta/fleet_maintenance_console/internal/core/domain"

type LabelCount struct {
	Label    string `json:"label"`
	Cantidad int    `json:"cantidad"`
}

// Summary feeds the dashboard.
type Summary struct {
	TotalVehiculos   int          `json:"totalVehiculos"`
	TotalTalleres    int          `json:"totalTalleres"`
	TotalServicios   int          `json:"totalServicios"`
	PorMarca         []LabelCount `json:"porMarca"`
	PorEstado        []LabelCount `json:"porEstado"`
	PromedioOdometro float64      `json:"promedioOdometro"`
}

// Summarize counts vehicles per brand and per state in first-seen order.
// Vehicles without a state are left out of the state breakdown.
func Summarize(vehicles []domain.Vehicle, workshops []domain.Workshop, records []domain.ServiceRecord) Summary {
	s := Summary{
		TotalVehiculos: len(vehicles),
		TotalTalleres:  len(workshops),
		TotalServicios: len(records),
	}

	brands := newCounter()
	states := newCounter()
	var odometer int64
	for i := range vehicles {
		brands.add(vehicles[i].Marca)
		if vehicles[i].Estado != "" {
			states.add(string(vehicles[i].Estado))
		}
		odometer += int64(vehicles[i].Odometro)
	}
	s.PorMarca = brands.items
	s.PorEstado = states.items

	if len(vehicles) > 0 {
		s.PromedioOdometro = float64(odometer) / float64(len(vehicles))
	}
	return s
}

type counter struct {
	index map[string]int
	items []LabelCount
}

func newCounter() *counter {
	return &counter{index: map[string]int{}, items: []LabelCount{}}
}

func (c *counter) add(label string) {
	if pos, ok := c.index[label]; ok {
		c.items[pos].Cantidad++
		return
	}
	c.index[label] = len(c.items)
	c.items = append(c.items, LabelCount{Label: label, Cantidad: 1})
}
