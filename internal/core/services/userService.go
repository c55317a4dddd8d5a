package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
)

const (
	userPath = "/usuario"
	rolePath = "/rol"
)

type UserService struct {
	api       ports.APIRequester
	logger    ports.LoggerPort
	validator *validation.Validator
}

func NewUserService(api ports.APIRequester, logger ports.LoggerPort, validator *validation.Validator) *UserService {
	return &UserService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := fetchList[domain.User](ctx, s.api, userPath)
	if err != nil {
		s.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return users, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := fetchByID[domain.User](ctx, s.api, userPath, id, "Usuario no encontrado")
	if err != nil {
		s.logger.Error("Failed to get user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}

// Update sends names and email only. The admin editor never changes passwords.
func (s *UserService) Update(ctx context.Context, id int64, in *domain.UserInput) (*domain.User, error) {
	if err := s.validator.User(in); err != nil {
		s.logger.Warn("User validation failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}

	body := *in
	body.Password = nil
	user, err := fetchOne[domain.User](ctx, s.api, http.MethodPut, entityPath(userPath, id), &body)
	if err != nil {
		s.logger.Error("Failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}

	s.logger.Info("User updated successfully", map[string]interface{}{
		"user_id": id,
	})
	return user, nil
}

func (s *UserService) AssignRole(ctx context.Context, userID, roleID int64) (*domain.User, error) {
	return s.roleLink(ctx, http.MethodPost, userID, roleID)
}

func (s *UserService) RemoveRole(ctx context.Context, userID, roleID int64) (*domain.User, error) {
	return s.roleLink(ctx, http.MethodDelete, userID, roleID)
}

func (s *UserService) roleLink(ctx context.Context, method string, userID, roleID int64) (*domain.User, error) {
	path := fmt.Sprintf("%s/%d/roles/%d", userPath, userID, roleID)
	user, err := fetchOne[domain.User](ctx, s.api, method, path, nil)
	if err != nil {
		s.logger.Error("Failed to change user roles", map[string]interface{}{
			"error":   err.Error(),
			"method":  method,
			"user_id": userID,
			"role_id": roleID,
		})
		return nil, err
	}

	s.logger.Info("User roles changed", map[string]interface{}{
		"method":  method,
		"user_id": userID,
		"role_id": roleID,
	})
	return user, nil
}

func (s *UserService) Roles(ctx context.Context) ([]domain.Role, error) {
	roles, err := fetchList[domain.Role](ctx, s.api, rolePath)
	if err != nil {
		s.logger.Error("Failed to list roles", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return roles, nil
}
