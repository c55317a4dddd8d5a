package validation

import (
	"errors"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

func validVehicle() *domain.VehicleInput {
	tipo := domain.Camion
	estado := domain.EnMantenimiento
	return &domain.VehicleInput{
		Marca:       swag.String("Volvo"),
		Modelo:      swag.String("FH 540"),
		Anio:        swag.Int64(2019),
		NumeroPlaca: swag.String("PBA-1234"),
		Color:       swag.String("Azul Marino"),
		Tipo:        &tipo,
		Odometro:    swag.Int64(120000),
		Estado:      &estado,
	}
}

func TestVehicleValid(t *testing.T) {
	if err := New(nil).Vehicle(validVehicle(), false); err != nil {
		t.Fatalf("expected valid vehicle, got %v", err)
	}
}

func TestVehicleFieldRules(t *testing.T) {
	badTipo := domain.VehicleType("bicicleta")
	cases := []struct {
		name    string
		mutate  func(in *domain.VehicleInput)
		field   string
		message string
	}{
		{"marca with digits", func(in *domain.VehicleInput) { in.Marca = swag.String("Volvo2") }, "marca", "Ingrese una marca válida sin números."},
		{"year with three digits", func(in *domain.VehicleInput) { in.Anio = swag.Int64(999) }, "año", "Ingrese un año válido."},
		{"lowercase plate", func(in *domain.VehicleInput) { in.NumeroPlaca = swag.String("pba-123") }, "numeroPlaca", "Ingrese un número de placa válido en formato AAA-123 o AAA-1234."},
		{"plate too long", func(in *domain.VehicleInput) { in.NumeroPlaca = swag.String("PBA-12345") }, "numeroPlaca", "Ingrese un número de placa válido en formato AAA-123 o AAA-1234."},
		{"unknown type", func(in *domain.VehicleInput) { in.Tipo = &badTipo }, "tipo", "Seleccione un tipo de vehículo."},
		{"negative odometer", func(in *domain.VehicleInput) { in.Odometro = swag.Int64(-1) }, "odometro", "Ingrese un odómetro válido."},
		{"missing estado", func(in *domain.VehicleInput) { in.Estado = nil }, "estado", "Seleccione un estado."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validVehicle()
			tc.mutate(in)
			err := New(nil).Vehicle(in, false)
			if !errors.Is(err, domain.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if verr.Fields[0].Field != tc.field || err.Error() != tc.message {
				t.Fatalf("unexpected failure %+v", verr.Fields)
			}
		})
	}
}

func TestVehiclePartialSkipsAbsentFields(t *testing.T) {
	v := New(nil)
	in := &domain.VehicleInput{Odometro: swag.Int64(51000)}
	if err := v.Vehicle(in, true); err != nil {
		t.Fatalf("partial update should pass, got %v", err)
	}
	if err := v.Vehicle(in, false); err == nil {
		t.Fatalf("create with missing fields must fail")
	}
}

func TestMissingFieldsReportedInTableOrder(t *testing.T) {
	err := New(nil).Vehicle(&domain.VehicleInput{}, false)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(verr.Fields) != len(VehicleRules) {
		t.Fatalf("expected %d failures, got %d", len(VehicleRules), len(verr.Fields))
	}
	if verr.Fields[0].Field != "marca" || verr.Fields[len(verr.Fields)-1].Field != "estado" {
		t.Fatalf("unexpected order: %+v", verr.Fields)
	}
}

func TestWorkshopRules(t *testing.T) {
	v := New(nil)
	in := &domain.WorkshopInput{
		Nombre:           swag.String("Taller Núñez"),
		Direccion:        swag.String("Av Amazonas 123"),
		Telefono:         swag.String("555-1234"),
		Correo:           swag.String("contacto@taller.ec"),
		HorariosAtencion: swag.String("08:00-17:30"),
	}
	if err := v.Workshop(in, false); err != nil {
		t.Fatalf("expected valid workshop, got %v", err)
	}

	bad := *in
	bad.HorariosAtencion = swag.String("8:00-24:00")
	if err := v.Workshop(&bad, false); err == nil || err.Error() != "Ingrese un horario de atención válido en formato HH:MM-HH:MM." {
		t.Fatalf("unexpected error: %v", err)
	}

	bad = *in
	bad.Telefono = swag.String("5551234")
	if err := v.Workshop(&bad, false); err == nil || err.Error() != "Ingrese un teléfono válido en formato 555-1234." {
		t.Fatalf("unexpected error: %v", err)
	}

	bad = *in
	bad.Correo = swag.String("sin-arroba.com")
	if err := v.Workshop(&bad, false); err == nil || err.Error() != "Ingrese un correo electrónico válido." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceRecordRules(t *testing.T) {
	v := New(nil)
	tipo := domain.ReparacionCorrectiva
	in := &domain.ServiceRecordInput{
		FechaServicio: swag.String("2024-03-15"),
		Costo:         swag.Float64(120.5),
		TipoServicio:  &tipo,
		Kilometraje:   swag.Int64(45000),
		Vehiculo:      &domain.Ref{ID: 1},
		Taller:        &domain.Ref{ID: 2},
	}
	if err := v.ServiceRecord(in, false); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	bad := *in
	bad.Costo = swag.Float64(-3)
	if err := v.ServiceRecord(&bad, false); err == nil || err.Error() != "Ingrese un costo válido." {
		t.Fatalf("unexpected error: %v", err)
	}

	bad = *in
	bad.Taller = &domain.Ref{}
	if err := v.ServiceRecord(&bad, false); err == nil || err.Error() != "Seleccione un taller." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistrationRules(t *testing.T) {
	v := New(nil)
	reg := domain.Registration{Nombres: "Ana Maria", Apellidos: "Perez Lopez", Email: "ana@x.com", Password: "secret"}
	if err := v.Registration(reg); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}

	reg.Nombres = "Ana"
	if err := v.Registration(reg); err == nil || err.Error() != "Debe ingresar dos nombres separados por un espacio" {
		t.Fatalf("unexpected error: %v", err)
	}

	reg.Nombres = "Ana Maria"
	reg.Password = "1234"
	if err := v.Registration(reg); err == nil || err.Error() != "La contraseña debe tener al menos 5 caracteres" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProfileAllowsBlankPassword(t *testing.T) {
	v := New(nil)
	in := &domain.UserInput{
		Nombres:   swag.String("José Luis"),
		Apellidos: swag.String("Núñez Ortega"),
		Email:     swag.String("jl@x.com"),
		Password:  swag.String(""),
	}
	if err := v.Profile(in); err != nil {
		t.Fatalf("blank password means unchanged, got %v", err)
	}
	in.Password = swag.String("abc")
	if err := v.Profile(in); err == nil {
		t.Fatalf("short password must fail")
	}
}

func TestUserRulesIgnorePassword(t *testing.T) {
	in := &domain.UserInput{
		Nombres:   swag.String("José Luis"),
		Apellidos: swag.String("Núñez Ortega"),
		Email:     swag.String("jl@x.com"),
		Password:  swag.String("x"),
	}
	if err := New(nil).User(in); err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}
}
