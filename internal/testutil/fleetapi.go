// Package testutil runs an in-process fleet API for tests. It implements the
// REST contract the console talks to, keeps everything in memory and issues
// HS256 tokens carrying a roles claim.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

var testSecret = []byte("fleet-api-test-secret")

type account struct {
	password string
	user     domain.User
}

type failure struct {
	status  int
	message string
}

type hold struct {
	reached chan struct{}
	release chan struct{}
}

type FleetAPI struct {
	server   *httptest.Server
	requests atomic.Int64

	mu       sync.Mutex
	nextID   int64
	accounts map[string]*account
	roles    []domain.Role
	vehicles *collection[domain.Vehicle]
	shops    *collection[domain.Workshop]
	records  *collection[domain.ServiceRecord]
	fail     *failure
	hold     *hold
}

// NewFleetAPI starts the fake API and closes it when the test ends.
func NewFleetAPI(t *testing.T) *FleetAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FleetAPI{
		nextID:   1,
		accounts: map[string]*account{},
		roles: []domain.Role{
			{ID: 1, Nombre: domain.RoleAdmin},
			{ID: 2, Nombre: domain.RoleMechanic},
		},
		vehicles: newCollection(func(v *domain.Vehicle) *int64 { return &v.ID }),
		shops:    newCollection(func(w *domain.Workshop) *int64 { return &w.ID }),
		records:  newCollection(func(r *domain.ServiceRecord) *int64 { return &r.ID }),
	}
	f.server = httptest.NewServer(f.router())
	t.Cleanup(f.server.Close)
	return f
}

func (f *FleetAPI) URL() string {
	return f.server.URL
}

// Requests counts every request the API received.
func (f *FleetAPI) Requests() int64 {
	return f.requests.Load()
}

// AddAccount registers a user that can log in with the given roles.
func (f *FleetAPI) AddAccount(email, password string, roles ...string) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addAccountLocked(email, password, "", "", roles)
}

// Token signs a token for email without going through login.
func (f *FleetAPI) Token(email string, roles ...string) string {
	if roles == nil {
		roles = []string{}
	}
	claims := jwt.MapClaims{
		"sub":   email,
		"email": email,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		panic(err)
	}
	return signed
}

// FailNext makes the next authenticated request fail with status and message.
func (f *FleetAPI) FailNext(status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = &failure{status: status, message: message}
}

// HoldNext parks the next authenticated request. reached is closed once it
// arrives and the request proceeds after release is called.
func (f *FleetAPI) HoldNext() (reached <-chan struct{}, release func()) {
	h := &hold{reached: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.hold = h
	f.mu.Unlock()

	var once sync.Once
	return h.reached, func() { once.Do(func() { close(h.release) }) }
}

func (f *FleetAPI) SeedVehicle(v domain.Vehicle) domain.Vehicle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamp(&v.CreatedAt, &v.UpdatedAt)
	return f.vehicles.insert(f.id(), v)
}

func (f *FleetAPI) SeedWorkshop(w domain.Workshop) domain.Workshop {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamp(&w.CreatedAt, &w.UpdatedAt)
	return f.shops.insert(f.id(), w)
}

// SeedServiceRecord links the record to already seeded entities.
func (f *FleetAPI) SeedServiceRecord(r domain.ServiceRecord) domain.ServiceRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveRefs(&r)
	return f.records.insert(f.id(), r)
}

func (f *FleetAPI) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *FleetAPI) stamp(created, updated *strfmt.DateTime) {
	now := strfmt.DateTime(time.Now().UTC())
	if time.Time(*created).IsZero() {
		*created = now
	}
	*updated = now
}

func (f *FleetAPI) addAccountLocked(email, password, nombres, apellidos string, roles []string) domain.User {
	user := domain.User{
		ID:        f.id(),
		Nombres:   nombres,
		Apellidos: apellidos,
		Email:     email,
		Username:  strings.Split(email, "@")[0],
	}
	for _, name := range roles {
		for _, r := range f.roles {
			if r.Nombre == name {
				user.Roles = append(user.Roles, r)
			}
		}
	}
	f.accounts[email] = &account{password: password, user: user}
	return user
}

func (f *FleetAPI) resolveRefs(r *domain.ServiceRecord) {
	if id := r.VehicleID(); id != 0 {
		if v, ok := f.vehicles.get(id); ok {
			r.Vehiculo = &v
		}
	}
	if id := r.WorkshopID(); id != 0 {
		if w, ok := f.shops.get(id); ok {
			r.Taller = &w
		}
	}
	r.UpdatedAt = strfmt.DateTime(time.Now().UTC())
}

func (f *FleetAPI) router() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		f.requests.Add(1)
		c.Next()
	})

	r.POST("/auth/login", f.login)
	r.POST("/auth/register", f.register)

	api := r.Group("/", f.authenticate)
	api.GET("/auth/profile", f.profile)

	vehicles := api.Group("/vehiculo")
	registerCRUD(f, vehicles, f.vehicles, "Vehículo no encontrado", func(v *domain.Vehicle) { f.stamp(&v.CreatedAt, &v.UpdatedAt) })
	vehicles.POST("/:id/registro-servicio/:rid", f.linkRecord)
	vehicles.DELETE("/:id/registro-servicio/:rid", f.linkRecord)

	registerCRUD(f, api.Group("/taller"), f.shops, "Taller no encontrado", func(w *domain.Workshop) { f.stamp(&w.CreatedAt, &w.UpdatedAt) })
	registerCRUD(f, api.Group("/registro-servicio"), f.records, "Registro de servicio no encontrado", f.resolveRefs)

	users := api.Group("/usuario")
	users.GET("", f.requireRole(domain.RoleAdmin), f.listUsers)
	users.GET("/:id", f.requireRole(domain.RoleAdmin), f.getUser)
	users.PUT("/:id", f.updateUser)
	users.POST("/:id/roles/:rolId", f.requireRole(domain.RoleAdmin), f.changeRole)
	users.DELETE("/:id/roles/:rolId", f.requireRole(domain.RoleAdmin), f.changeRole)
	api.GET("/rol", f.requireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, f.roles)
	})

	return r
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"statusCode": status, "message": message})
}

func (f *FleetAPI) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		abort(c, http.StatusUnauthorized, "Token inválido")
		return
	}

	var roles []string
	if list, ok := claims["roles"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}
	c.Set("email", claims["email"])
	c.Set("roles", domain.NewRoles(roles...))

	f.mu.Lock()
	injected := f.fail
	f.fail = nil
	parked := f.hold
	f.hold = nil
	f.mu.Unlock()
	if parked != nil {
		close(parked.reached)
		<-parked.release
	}
	if injected != nil {
		abort(c, injected.status, injected.message)
		return
	}
	c.Next()
}

func (f *FleetAPI) requireRole(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get("roles")
		have, _ := roles.(domain.Roles)
		for _, name := range names {
			if have.Has(name) {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Forbidden resource")
	}
}

func (f *FleetAPI) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abort(c, http.StatusBadRequest, "Cuerpo inválido")
		return
	}

	f.mu.Lock()
	acc, ok := f.accounts[creds.Email]
	f.mu.Unlock()
	if !ok || acc.password != creds.Password {
		abort(c, http.StatusUnauthorized, "Credenciales incorrectas")
		return
	}

	c.JSON(http.StatusOK, domain.LoginResult{
		Token: f.Token(acc.user.Email, acc.user.RoleNames()...),
		Email: acc.user.Email,
	})
}

func (f *FleetAPI) register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		abort(c, http.StatusBadRequest, "Cuerpo inválido")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[reg.Email]; exists {
		abort(c, http.StatusConflict, "El correo ya está registrado")
		return
	}
	c.JSON(http.StatusCreated, f.addAccountLocked(reg.Email, reg.Password, reg.Nombres, reg.Apellidos, nil))
}

func (f *FleetAPI) profile(c *gin.Context) {
	email, _ := c.Get("email")
	f.mu.Lock()
	acc, ok := f.accounts[fmt.Sprint(email)]
	f.mu.Unlock()
	if !ok {
		abort(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

func (f *FleetAPI) findAccount(id int64) *account {
	for _, acc := range f.accounts {
		if acc.user.ID == id {
			return acc
		}
	}
	return nil
}

func (f *FleetAPI) listUsers(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]domain.User, 0, len(f.accounts))
	for _, acc := range f.accounts {
		users = append(users, acc.user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	c.JSON(http.StatusOK, users)
}

func (f *FleetAPI) getUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	acc := f.findAccount(id)
	if acc == nil {
		abort(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

// updateUser lets administrators edit anyone and other users edit themselves.
func (f *FleetAPI) updateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in domain.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, http.StatusBadRequest, "Cuerpo inválido")
		return
	}

	email, _ := c.Get("email")
	roles, _ := c.Get("roles")
	f.mu.Lock()
	defer f.mu.Unlock()
	acc := f.findAccount(id)
	if acc == nil {
		abort(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if have, _ := roles.(domain.Roles); !have.Has(domain.RoleAdmin) && acc.user.Email != fmt.Sprint(email) {
		abort(c, http.StatusForbidden, "Forbidden resource")
		return
	}

	if in.Nombres != nil {
		acc.user.Nombres = *in.Nombres
	}
	if in.Apellidos != nil {
		acc.user.Apellidos = *in.Apellidos
	}
	if in.Email != nil && *in.Email != acc.user.Email {
		delete(f.accounts, acc.user.Email)
		acc.user.Email = *in.Email
		f.accounts[acc.user.Email] = acc
	}
	if in.Password != nil {
		acc.password = *in.Password
	}
	c.JSON(http.StatusOK, acc.user)
}

func (f *FleetAPI) changeRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	roleID, ok := paramID(c, "rolId")
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	acc := f.findAccount(id)
	if acc == nil {
		abort(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	kept := acc.user.Roles[:0]
	for _, r := range acc.user.Roles {
		if r.ID != roleID {
			kept = append(kept, r)
		}
	}
	acc.user.Roles = kept
	if c.Request.Method == http.MethodPost {
		for _, r := range f.roles {
			if r.ID == roleID {
				acc.user.Roles = append(acc.user.Roles, r)
			}
		}
	}
	c.JSON(http.StatusOK, acc.user)
}

func (f *FleetAPI) linkRecord(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rid, ok := paramID(c, "rid")
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	vehicle, found := f.vehicles.get(id)
	if !found {
		abort(c, http.StatusNotFound, "Vehículo no encontrado")
		return
	}
	record, found := f.records.get(rid)
	if !found {
		abort(c, http.StatusNotFound, "Registro de servicio no encontrado")
		return
	}
	if c.Request.Method == http.MethodPost {
		record.Vehiculo = &vehicle
	} else {
		record.Vehiculo = nil
	}
	f.records.put(rid, record)
	c.JSON(http.StatusOK, vehicle)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		abort(c, http.StatusBadRequest, "Identificador inválido")
		return 0, false
	}
	return id, true
}

type collection[T any] struct {
	rows map[int64]T
	idOf func(*T) *int64
}

func newCollection[T any](idOf func(*T) *int64) *collection[T] {
	return &collection[T]{rows: map[int64]T{}, idOf: idOf}
}

func (c *collection[T]) insert(id int64, row T) T {
	*c.idOf(&row) = id
	c.rows[id] = row
	return row
}

func (c *collection[T]) get(id int64) (T, bool) {
	row, ok := c.rows[id]
	return row, ok
}

func (c *collection[T]) put(id int64, row T) {
	c.rows[id] = row
}

func (c *collection[T]) list() []T {
	ids := make([]int64, 0, len(c.rows))
	for id := range c.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.rows[id])
	}
	return out
}

// registerCRUD mounts list, get, create, update and delete on g. Updates merge
// the request body over the stored row. Writes need an editing role.
func registerCRUD[T any](f *FleetAPI, g *gin.RouterGroup, rows *collection[T], notFound string, touch func(*T)) {
	edit := f.requireRole(domain.RoleAdmin, domain.RoleMechanic)

	g.GET("", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		c.JSON(http.StatusOK, rows.list())
	})

	g.GET("/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		row, found := rows.get(id)
		if !found {
			abort(c, http.StatusNotFound, notFound)
			return
		}
		c.JSON(http.StatusOK, row)
	})

	g.POST("", edit, func(c *gin.Context) {
		var row T
		if err := c.ShouldBindJSON(&row); err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		touch(&row)
		c.JSON(http.StatusCreated, rows.insert(f.id(), row))
	})

	g.PUT("/:id", edit, func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		body, err := c.GetRawData()
		if err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		row, found := rows.get(id)
		if !found {
			abort(c, http.StatusNotFound, notFound)
			return
		}
		if err := json.Unmarshal(body, &row); err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}
		*rows.idOf(&row) = id
		touch(&row)
		rows.put(id, row)
		c.JSON(http.StatusOK, row)
	})

	g.DELETE("/:id", edit, func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, found := rows.get(id); !found {
			abort(c, http.StatusNotFound, notFound)
			return
		}
		delete(rows.rows, id)
		c.Status(http.StatusNoContent)
	})
}
