package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

var (
	errEmptyToken       = errors.New("empty token")
	errInvalidRoleClaim = errors.New("invalid roles claim")
)

// DecodeRoles reads the roles claim from the token payload.
// The signature is not verified: roles are only used for UI gating and the
// fleet API checks every request on its own.
func DecodeRoles(token string) (domain.Roles, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errEmptyToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token claims: %w", err)
	}

	raw, ok := claims["roles"]
	if !ok || raw == nil {
		return domain.NewRoles(), nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errInvalidRoleClaim
	}

	roles := domain.NewRoles()
	for _, item := range list {
		switch v := item.(type) {
		case string:
			if v != "" {
				roles[v] = struct{}{}
			}
		case map[string]interface{}:
			// {id, nombre} objects as returned by /rol
			if name, ok := v["nombre"].(string); ok && name != "" {
				roles[name] = struct{}{}
			}
		}
	}
	return roles, nil
}
