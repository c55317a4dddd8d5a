package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/apiclient"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/filestore"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/logger"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/prometheus"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/session"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
	"github.com/sm8ta/fleet_maintenance_console/internal/testutil"
)

type testEnv struct {
	api      *testutil.FleetAPI
	session  *session.Session
	vehicles *VehicleService
	shops    *WorkshopService
	records  *ServiceRecordService
	users    *UserService
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	api := testutil.NewFleetAPI(t)
	log := logger.NewNop()
	sess := session.New(filestore.NewMemoryStore(), log)

	client, err := apiclient.New(api.URL(), sess, log, prometheus.NewPrometheusAdapter())
	if err != nil {
		t.Fatalf("apiclient.New() error: %v", err)
	}
	v := validation.New(nil)

	return &testEnv{
		api:      api,
		session:  sess,
		vehicles: NewVehicleService(client, log, v),
		shops:    NewWorkshopService(client, log, v),
		records:  NewServiceRecordService(client, log, v),
		users:    NewUserService(client, log, v),
		auth:     NewAuthService(client, sess, log, v),
	}
}

func (e *testEnv) login(t *testing.T, email string, roles ...string) {
	t.Helper()
	e.api.AddAccount(email, "secreto", roles...)
	if _, err := e.auth.Login(context.Background(), domain.Credentials{Email: email, Password: "secreto"}); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
}

func vehicleInput() *domain.VehicleInput {
	tipo := domain.Automovil
	estado := domain.Activo
	return &domain.VehicleInput{
		Marca:       swag.String("Toyota"),
		Modelo:      swag.String("Corolla"),
		Anio:        swag.Int64(2020),
		NumeroPlaca: swag.String("ABC-123"),
		Color:       swag.String("Rojo"),
		Tipo:        &tipo,
		Odometro:    swag.Int64(30000),
		Estado:      &estado,
	}
}

func TestLoginStoresTokenAndRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.login(t, "admin@flota.ec", domain.RoleAdmin)

	if !env.session.IsAuthenticated(ctx) {
		t.Fatalf("session should hold the token after login")
	}
	if !env.session.Roles(ctx).Has(domain.RoleAdmin) {
		t.Fatalf("roles should come from the token, got %v", env.session.Roles(ctx).List())
	}

	profile, err := env.auth.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.Email != "admin@flota.ec" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	if err := env.auth.Logout(ctx); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if env.session.IsAuthenticated(ctx) {
		t.Fatalf("logout should clear the session")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.api.AddAccount("ana@flota.ec", "secreto")

	_, err := env.auth.Login(context.Background(), domain.Credentials{Email: "ana@flota.ec", Password: "otro"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if env.session.IsAuthenticated(context.Background()) {
		t.Fatalf("failed login must not leave a session")
	}
}

func TestVehicleRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "mecanico@flota.ec", domain.RoleMechanic)

	created, err := env.vehicles.Create(ctx, vehicleInput())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected server assigned id")
	}

	found, err := env.vehicles.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if found.NumeroPlaca != "ABC-123" || found.Anio != 2020 || found.Estado != domain.Activo {
		t.Fatalf("round trip mismatch: %+v", found)
	}

	updated, err := env.vehicles.Update(ctx, created.ID, &domain.VehicleInput{Odometro: swag.Int64(51000)})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Odometro != 51000 || updated.Marca != "Toyota" || !updated.NeedsReview() {
		t.Fatalf("partial update should keep other fields, got %+v", updated)
	}

	all, err := env.vehicles.FindAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("FindAll() = %v, %v", all, err)
	}

	if err := env.vehicles.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	_, err = env.vehicles.FindByID(ctx, created.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	var reqErr *domain.RequestFailedError
	if !errors.As(err, &reqErr) || reqErr.Message != "Vehículo no encontrado" {
		t.Fatalf("expected API message, got %v", err)
	}
}

func TestValidationShortCircuits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "mecanico@flota.ec", domain.RoleMechanic)
	before := env.api.Requests()

	in := vehicleInput()
	in.NumeroPlaca = swag.String("abc123")
	if _, err := env.vehicles.Create(ctx, in); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if _, err := env.shops.Create(ctx, &domain.WorkshopInput{Nombre: swag.String("Taller 1")}); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if _, err := env.auth.Register(ctx, domain.Registration{Nombres: "Ana", Email: "x"}); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	if got := env.api.Requests(); got != before {
		t.Fatalf("validation failures must not reach the API, saw %d requests", got-before)
	}
}

func TestServiceRecordReferencesEntities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "admin@flota.ec", domain.RoleAdmin)

	vehicle := env.api.SeedVehicle(domain.Vehicle{Marca: "Hino", NumeroPlaca: "PCD-4567"})
	shop := env.api.SeedWorkshop(domain.Workshop{Nombre: "Taller Sur"})

	tipo := domain.MantenimientoPreventivo
	record, err := env.records.Create(ctx, &domain.ServiceRecordInput{
		FechaServicio: swag.String("2024-05-02"),
		Descripcion:   swag.String("cambio de aceite"),
		Costo:         swag.Float64(45.75),
		TipoServicio:  &tipo,
		Kilometraje:   swag.Int64(20000),
		Documentos:    swag.String("factura.pdf, orden.pdf"),
		Vehiculo:      &domain.Ref{ID: vehicle.ID},
		Taller:        &domain.Ref{ID: shop.ID},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if record.VehicleID() != vehicle.ID || record.Taller.Nombre != "Taller Sur" {
		t.Fatalf("record should embed its vehicle and workshop, got %+v", record)
	}
	if float64(record.Costo) != 45.75 || record.FechaServicio.Format("2006-01-02") != "2024-05-02" {
		t.Fatalf("unexpected record values %+v", record)
	}
	if docs := record.DocumentList(); len(docs) != 2 || docs[1] != "orden.pdf" {
		t.Fatalf("DocumentList() = %v", docs)
	}

	shops, err := env.records.FindWorkshops(ctx)
	if err != nil || len(shops) != 1 {
		t.Fatalf("FindWorkshops() = %v, %v", shops, err)
	}
	vehicles, err := env.records.FindVehicles(ctx)
	if err != nil || len(vehicles) != 1 {
		t.Fatalf("FindVehicles() = %v, %v", vehicles, err)
	}
}

func TestRequestsWithoutSessionAreUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.vehicles.FindAll(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	before := env.api.Requests()
	if _, err := env.auth.Profile(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if env.api.Requests() != before {
		t.Fatalf("Profile without a session must not call the API")
	}
}

func TestForbiddenClearsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "mecanico@flota.ec", domain.RoleMechanic)

	if _, err := env.users.FindAll(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if env.session.IsAuthenticated(ctx) {
		t.Fatalf("a 403 must clear the session")
	}
}

func TestServerErrorPropagates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "admin@flota.ec", domain.RoleAdmin)
	env.api.FailNext(http.StatusInternalServerError, "Error interno")

	_, err := env.shops.FindAll(ctx)
	var reqErr *domain.RequestFailedError
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusInternalServerError || reqErr.Message != "Error interno" {
		t.Fatalf("expected RequestFailedError 500, got %v", err)
	}
	if !env.session.IsAuthenticated(ctx) {
		t.Fatalf("a 500 must not clear the session")
	}
}

func TestUserRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "admin@flota.ec", domain.RoleAdmin)
	target := env.api.AddAccount("pedro@flota.ec", "secreto")

	roles, err := env.users.Roles(ctx)
	if err != nil || len(roles) != 2 {
		t.Fatalf("Roles() = %v, %v", roles, err)
	}

	var mechanic domain.Role
	for _, r := range roles {
		if r.Nombre == domain.RoleMechanic {
			mechanic = r
		}
	}

	user, err := env.users.AssignRole(ctx, target.ID, mechanic.ID)
	if err != nil {
		t.Fatalf("AssignRole() error: %v", err)
	}
	if names := user.RoleNames(); len(names) != 1 || names[0] != domain.RoleMechanic {
		t.Fatalf("unexpected roles %v", names)
	}

	user, err = env.users.RemoveRole(ctx, target.ID, mechanic.ID)
	if err != nil {
		t.Fatalf("RemoveRole() error: %v", err)
	}
	if len(user.Roles) != 0 {
		t.Fatalf("role should be removed, got %v", user.RoleNames())
	}

	updated, err := env.users.Update(ctx, target.ID, &domain.UserInput{
		Nombres:   swag.String("Pedro Pablo"),
		Apellidos: swag.String("Mora Vega"),
		Email:     swag.String("pedro@flota.ec"),
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Nombres != "Pedro Pablo" {
		t.Fatalf("unexpected user %+v", updated)
	}
}

func TestUpdateProfileKeepsBlankPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "ana@flota.ec")

	me, err := env.auth.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	_, err = env.auth.UpdateProfile(ctx, me.ID, &domain.UserInput{
		Nombres:   swag.String("Ana María"),
		Apellidos: swag.String("Pérez León"),
		Email:     swag.String("ana@flota.ec"),
		Password:  swag.String(""),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}

	if err := env.auth.Logout(ctx); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := env.auth.Login(ctx, domain.Credentials{Email: "ana@flota.ec", Password: "secreto"}); err != nil {
		t.Fatalf("old password should still work: %v", err)
	}
}

// bodyRequester answers every request with 200 and a fixed body.
type bodyRequester struct {
	body string
}

func (r bodyRequester) Request(context.Context, string, string, interface{}) (*ports.Response, error) {
	return &ports.Response{StatusCode: http.StatusOK, Body: []byte(r.body)}, nil
}

func TestFindByIDWithoutBodyIsNotFound(t *testing.T) {
	log := logger.NewNop()
	v := validation.New(nil)
	ctx := context.Background()

	for _, body := range []string{"", "null", "  \n"} {
		api := bodyRequester{body: body}

		vehicle, err := NewVehicleService(api, log, v).FindByID(ctx, 99)
		if vehicle != nil || !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("vehicle with body %q: got %v, %v", body, vehicle, err)
		}
		if err.Error() != "Vehículo no encontrado" {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if _, err := NewWorkshopService(api, log, v).FindByID(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("workshop with body %q: expected not found, got %v", body, err)
		}
		if _, err := NewServiceRecordService(api, log, v).FindByID(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("record with body %q: expected not found, got %v", body, err)
		}
		if _, err := NewUserService(api, log, v).FindByID(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("user with body %q: expected not found, got %v", body, err)
		}
	}
}
