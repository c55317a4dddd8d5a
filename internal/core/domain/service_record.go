package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

type ServiceType string

const (
	MantenimientoPreventivo ServiceType = "mantenimiento preventivo"
	ReparacionCorrectiva    ServiceType = "reparacion correctiva"
	RevisionTecnica         ServiceType = "revision tecnica"
)

// swagger:model domain.ServiceRecord
type ServiceRecord struct {
	ID            int64           `json:"id"`
	FechaServicio ServiceDate     `json:"fechaServicio"`
	Descripcion   string          `json:"descripcion,omitempty"`
	Costo         Money           `json:"costo"`
	TipoServicio  ServiceType     `json:"tipoServicio"`
	Kilometraje   int             `json:"kilometraje"`
	Documentos    string          `json:"documentos,omitempty"`
	Vehiculo      *Vehicle        `json:"vehiculo,omitempty"`
	Taller        *Workshop       `json:"taller,omitempty"`
	UpdatedAt     strfmt.DateTime `json:"updatedAt"`
}

// VehicleID returns 0 when the record carries no vehicle.
func (r *ServiceRecord) VehicleID() int64 {
	if r.Vehiculo == nil {
		return 0
	}
	return r.Vehiculo.ID
}

func (r *ServiceRecord) WorkshopID() int64 {
	if r.Taller == nil {
		return 0
	}
	return r.Taller.ID
}

// DocumentList splits the comma separated documentos field.
func (r *ServiceRecord) DocumentList() []string {
	var out []string
	for _, doc := range strings.Split(r.Documentos, ",") {
		if doc = strings.TrimSpace(doc); doc != "" {
			out = append(out, doc)
		}
	}
	return out
}

// Ref points at another entity by identity only.
type Ref struct {
	ID int64 `json:"id"`
}

type ServiceRecordInput struct {
	FechaServicio *string      `json:"fechaServicio,omitempty"`
	Descripcion   *string      `json:"descripcion,omitempty"`
	Costo         *float64     `json:"costo,omitempty"`
	TipoServicio  *ServiceType `json:"tipoServicio,omitempty"`
	Kilometraje   *int64       `json:"kilometraje,omitempty"`
	Documentos    *string      `json:"documentos,omitempty"`
	Vehiculo      *Ref         `json:"vehiculo,omitempty"`
	Taller        *Ref         `json:"taller,omitempty"`
}

// Money accepts both JSON numbers and numeric strings.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*m = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := swag.ConvertFloat64(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

// ServiceDate accepts RFC 3339 date-times and bare YYYY-MM-DD dates.
type ServiceDate struct {
	time.Time
}

func NewServiceDate(t time.Time) ServiceDate {
	return ServiceDate{Time: t}
}

func (d *ServiceDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if dt, err := strfmt.ParseDateTime(s); err == nil {
		d.Time = time.Time(dt)
		return nil
	}
	t, err := time.Parse(strfmt.RFC3339FullDate, s)
	if err != nil {
		return fmt.Errorf("invalid service date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d ServiceDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(strfmt.DateTime(d.Time).String())
}
