package domain

import (
	"github.com/go-openapi/strfmt"
)

type VehicleType string

const (
	Automovil   VehicleType = "automovil"
	Camion      VehicleType = "camion"
	Motocicleta VehicleType = "motocicleta"
)

type VehicleState string

const (
	Activo          VehicleState = "activo"
	EnMantenimiento VehicleState = "en mantenimiento"
	Inactivo        VehicleState = "inactivo"
)

// OverdueOdometer is the odometer reading above which a vehicle needs a review.
const OverdueOdometer = 50000

// swagger:model domain.Vehicle
type Vehicle struct {
	ID          int64           `json:"id"`
	Marca       string          `json:"marca"`
	Modelo      string          `json:"modelo"`
	Anio        int             `json:"año"`
	NumeroPlaca string          `json:"numeroPlaca"`
	Color       string          `json:"color"`
	Tipo        VehicleType     `json:"tipo"`
	Odometro    int             `json:"odometro"`
	Estado      VehicleState    `json:"estado"`
	CreatedAt   strfmt.DateTime `json:"createdAt"`
	UpdatedAt   strfmt.DateTime `json:"updatedAt"`
}

// NeedsReview reports whether the odometer is past the review threshold.
func (v *Vehicle) NeedsReview() bool {
	return v.Odometro > OverdueOdometer
}

// VehicleInput carries the fields sent on create and update. Nil fields are omitted.
type VehicleInput struct {
	Marca       *string       `json:"marca,omitempty"`
	Modelo      *string       `json:"modelo,omitempty"`
	Anio        *int64        `json:"año,omitempty"`
	NumeroPlaca *string       `json:"numeroPlaca,omitempty"`
	Color       *string       `json:"color,omitempty"`
	Tipo        *VehicleType  `json:"tipo,omitempty"`
	Odometro    *int64        `json:"odometro,omitempty"`
	Estado      *VehicleState `json:"estado,omitempty"`
}
