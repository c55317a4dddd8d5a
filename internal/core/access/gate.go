// Package access decides which console views and actions a caller may see.
// The fleet API stays authoritative; a pass here only means the control is shown.
package access

import (
	"strings"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

const (
	LoginRoute   = "/auth/login"
	LandingRoute = "/dashboard"
)

func CanEdit(roles domain.Roles) bool {
	return roles.Has(domain.RoleAdmin) || roles.Has(domain.RoleMechanic)
}

func IsAdmin(roles domain.Roles) bool {
	return roles.Has(domain.RoleAdmin)
}

type Route struct {
	Path      string
	Protected bool
	AdminOnly bool
}

// Routes is the console view table. A path matches a route when it equals the
// route path or continues it with a further segment.
var Routes = []Route{
	{Path: "/auth/login"},
	{Path: "/auth/register"},
	{Path: "/auth/logout", Protected: true},
	{Path: "/dashboard", Protected: true},
	{Path: "/menu", Protected: true},
	{Path: "/perfil", Protected: true},
	{Path: "/vehiculos", Protected: true},
	{Path: "/talleres", Protected: true},
	{Path: "/registro-servicio", Protected: true},
	{Path: "/reportes", Protected: true},
	{Path: "/configuracion", Protected: true, AdminOnly: true},
}

type Decision struct {
	Allow      bool
	RedirectTo string
}

func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			return r, true
		}
	}
	return Route{}, false
}

// Decide applies the route guard. Paths outside the table are public.
func Decide(path string, authenticated bool, roles domain.Roles) Decision {
	route, ok := Lookup(path)
	if !ok || !route.Protected {
		return Decision{Allow: true}
	}
	if !authenticated {
		return Decision{RedirectTo: LoginRoute}
	}
	if route.AdminOnly && !IsAdmin(roles) {
		return Decision{RedirectTo: LandingRoute}
	}
	return Decision{Allow: true}
}

type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Menu returns the navigation bar for the caller. Anonymous callers get none.
func Menu(authenticated bool, roles domain.Roles) []MenuItem {
	if !authenticated {
		return []MenuItem{}
	}
	items := []MenuItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Vehículos", Path: "/vehiculos"},
		{Label: "Talleres", Path: "/talleres"},
		{Label: "Registros de Servicio", Path: "/registro-servicio"},
		{Label: "Reportes", Path: "/reportes"},
	}
	if IsAdmin(roles) {
		items = append(items, MenuItem{Label: "Configuración", Path: "/configuracion/usuarios"})
	}
	return append(items,
		MenuItem{Label: "Perfil", Path: "/perfil"},
		MenuItem{Label: "Cerrar Sesión", Path: "/auth/logout"},
	)
}
