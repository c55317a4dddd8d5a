package access

import (
	"testing"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

func TestCanEditAndIsAdmin(t *testing.T) {
	cases := []struct {
		roles   []string
		canEdit bool
		isAdmin bool
	}{
		{nil, false, false},
		{[]string{"invitado"}, false, false},
		{[]string{domain.RoleMechanic}, true, false},
		{[]string{domain.RoleAdmin}, true, true},
		{[]string{domain.RoleMechanic, domain.RoleAdmin}, true, true},
	}

	for _, tc := range cases {
		roles := domain.NewRoles(tc.roles...)
		if got := CanEdit(roles); got != tc.canEdit {
			t.Errorf("CanEdit(%v) = %v, want %v", tc.roles, got, tc.canEdit)
		}
		if got := IsAdmin(roles); got != tc.isAdmin {
			t.Errorf("IsAdmin(%v) = %v, want %v", tc.roles, got, tc.isAdmin)
		}
	}
}

func TestDecide(t *testing.T) {
	admin := domain.NewRoles(domain.RoleAdmin)
	mechanic := domain.NewRoles(domain.RoleMechanic)

	cases := []struct {
		name     string
		path     string
		authed   bool
		roles    domain.Roles
		allow    bool
		redirect string
	}{
		{"login is public", "/auth/login", false, nil, true, ""},
		{"unknown path is public", "/", false, nil, true, ""},
		{"anonymous on protected", "/vehiculos", false, nil, false, LoginRoute},
		{"anonymous on nested protected", "/vehiculos/7", false, nil, false, LoginRoute},
		{"anonymous on admin route", "/configuracion/usuarios", false, nil, false, LoginRoute},
		{"mechanic on admin route", "/configuracion/usuarios", true, mechanic, false, LandingRoute},
		{"mechanic on protected", "/reportes", true, mechanic, true, ""},
		{"admin on admin route", "/configuracion/roles", true, admin, true, ""},
		{"prefix is not a segment", "/vehiculosx", false, nil, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.path, tc.authed, tc.roles)
			if d.Allow != tc.allow || d.RedirectTo != tc.redirect {
				t.Fatalf("Decide(%q) = %+v", tc.path, d)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	if got := Menu(false, nil); len(got) != 0 {
		t.Fatalf("anonymous menu should be empty, got %v", got)
	}

	hasConfig := func(items []MenuItem) bool {
		for _, it := range items {
			if it.Label == "Configuración" {
				return true
			}
		}
		return false
	}

	if hasConfig(Menu(true, domain.NewRoles(domain.RoleMechanic))) {
		t.Fatalf("mechanic must not see the configuration entry")
	}
	items := Menu(true, domain.NewRoles(domain.RoleAdmin))
	if !hasConfig(items) {
		t.Fatalf("admin should see the configuration entry")
	}
	if last := items[len(items)-1]; last.Path != "/auth/logout" {
		t.Fatalf("logout should be last, got %+v", last)
	}
}
