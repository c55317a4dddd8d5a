package validation

import (
	"github.com/go-openapi/swag"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

func VehicleValues(in *domain.VehicleInput) Values {
	values := Values{}
	if in == nil {
		return values
	}
	putString(values, "marca", in.Marca)
	putString(values, "modelo", in.Modelo)
	putInt(values, "año", in.Anio)
	putString(values, "numeroPlaca", in.NumeroPlaca)
	putString(values, "color", in.Color)
	if in.Tipo != nil {
		values["tipo"] = string(*in.Tipo)
	}
	putInt(values, "odometro", in.Odometro)
	if in.Estado != nil {
		values["estado"] = string(*in.Estado)
	}
	return values
}

func WorkshopValues(in *domain.WorkshopInput) Values {
	values := Values{}
	if in == nil {
		return values
	}
	putString(values, "nombre", in.Nombre)
	putString(values, "direccion", in.Direccion)
	putString(values, "telefono", in.Telefono)
	putString(values, "correo", in.Correo)
	putString(values, "horariosAtencion", in.HorariosAtencion)
	putString(values, "especialidades", in.Especialidades)
	return values
}

func ServiceRecordValues(in *domain.ServiceRecordInput) Values {
	values := Values{}
	if in == nil {
		return values
	}
	putString(values, "fechaServicio", in.FechaServicio)
	putString(values, "descripcion", in.Descripcion)
	if in.Costo != nil {
		values["costo"] = swag.Float64Value(in.Costo)
	}
	if in.TipoServicio != nil {
		values["tipoServicio"] = string(*in.TipoServicio)
	}
	putInt(values, "kilometraje", in.Kilometraje)
	putString(values, "documentos", in.Documentos)
	if in.Vehiculo != nil {
		values["vehiculo"] = in.Vehiculo.ID
	}
	if in.Taller != nil {
		values["taller"] = in.Taller.ID
	}
	return values
}

func UserValues(in *domain.UserInput) Values {
	values := Values{}
	if in == nil {
		return values
	}
	putString(values, "nombres", in.Nombres)
	putString(values, "apellidos", in.Apellidos)
	putString(values, "email", in.Email)
	putString(values, "password", in.Password)
	return values
}

func putString(values Values, field string, v *string) {
	if v != nil {
		values[field] = swag.StringValue(v)
	}
}

func putInt(values Values, field string, v *int64) {
	if v != nil {
		values[field] = swag.Int64Value(v)
	}
}
