package ports

import (
	"context"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

type SessionPort interface {
	SetSession(ctx context.Context, token string) error
	Token(ctx context.Context) (string, bool)
	Roles(ctx context.Context) domain.Roles
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}
