package domain

import "sort"

const (
	RoleAdmin    = "administrador"
	RoleMechanic = "mecanico"
)

// Roles is the set of role names carried by the session token.
type Roles map[string]struct{}

func NewRoles(names ...string) Roles {
	roles := make(Roles, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		roles[name] = struct{}{}
	}
	return roles
}

func (r Roles) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// List returns the role names sorted.
func (r Roles) List() []string {
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
