package ports

import (
	"context"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

type VehicleService interface {
	FindAll(ctx context.Context) ([]domain.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, in *domain.VehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
	AssignServiceRecord(ctx context.Context, vehicleID, recordID int64) (*domain.Vehicle, error)
	RemoveServiceRecord(ctx context.Context, vehicleID, recordID int64) (*domain.Vehicle, error)
}

type WorkshopService interface {
	FindAll(ctx context.Context) ([]domain.Workshop, error)
	FindByID(ctx context.Context, id int64) (*domain.Workshop, error)
	Create(ctx context.Context, in *domain.WorkshopInput) (*domain.Workshop, error)
	Update(ctx context.Context, id int64, in *domain.WorkshopInput) (*domain.Workshop, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceRecordService interface {
	FindAll(ctx context.Context) ([]domain.ServiceRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.ServiceRecord, error)
	Create(ctx context.Context, in *domain.ServiceRecordInput) (*domain.ServiceRecord, error)
	Update(ctx context.Context, id int64, in *domain.ServiceRecordInput) (*domain.ServiceRecord, error)
	Delete(ctx context.Context, id int64) error
	FindWorkshops(ctx context.Context) ([]domain.Workshop, error)
	FindVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type UserService interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, in *domain.UserInput) (*domain.User, error)
	AssignRole(ctx context.Context, userID, roleID int64) (*domain.User, error)
	RemoveRole(ctx context.Context, userID, roleID int64) (*domain.User, error)
	Roles(ctx context.Context) ([]domain.Role, error)
}

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, in *domain.UserInput) (*domain.User, error)
	Logout(ctx context.Context) error
}
