package domain

// swagger:model domain.User
type User struct {
	ID        int64  `json:"id"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	Roles     []Role `json:"roles,omitempty"`
}

// RoleNames lists the role names in the order the API returned them.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Nombre)
	}
	return names
}

// swagger:model domain.Role
type Role struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// UserInput is used by the admin user editor and the profile form.
// Password is only honored by profile updates.
type UserInput struct {
	Nombres   *string `json:"nombres,omitempty"`
	Apellidos *string `json:"apellidos,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

type Registration struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the body returned by /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
