package domain

import "github.com/go-openapi/strfmt"

// swagger:model domain.Workshop
type Workshop struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Direccion        string          `json:"direccion"`
	Telefono         string          `json:"telefono"`
	Correo           string          `json:"correo"`
	HorariosAtencion string          `json:"horariosAtencion,omitempty"`
	Especialidades   string          `json:"especialidades,omitempty"`
	CreatedAt        strfmt.DateTime `json:"createdAt"`
	UpdatedAt        strfmt.DateTime `json:"updatedAt"`
}

type WorkshopInput struct {
	Nombre           *string `json:"nombre,omitempty"`
	Direccion        *string `json:"direccion,omitempty"`
	Telefono         *string `json:"telefono,omitempty"`
	Correo           *string `json:"correo,omitempty"`
	HorariosAtencion *string `json:"horariosAtencion,omitempty"`
	Especialidades   *string `json:"especialidades,omitempty"`
}
