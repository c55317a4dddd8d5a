package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
)

var errMissingToken = errors.New("login response carried no token")

type AuthService struct {
	api       ports.APIRequester
	session   ports.SessionPort
	logger    ports.LoggerPort
	validator *validation.Validator
}

func NewAuthService(
	api ports.APIRequester,
	session ports.SessionPort,
	logger ports.LoggerPort,
	validator *validation.Validator,
) *AuthService {
	return &AuthService{
		api:       api,
		session:   session,
		logger:    logger,
		validator: validator,
	}
}

// Login exchanges credentials for a token and stores it in the session.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	result, err := fetchOne[domain.LoginResult](ctx, s.api, http.MethodPost, "/auth/login", creds)
	if err != nil {
		s.logger.Warn("Login failed", map[string]interface{}{
			"error": err.Error(),
			"email": creds.Email,
		})
		return nil, err
	}
	if result == nil || result.Token == "" {
		s.logger.Error("Login response without token", map[string]interface{}{
			"email": creds.Email,
		})
		return nil, errMissingToken
	}

	if err := s.session.SetSession(ctx, result.Token); err != nil {
		s.logger.Error("Failed to store session", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"email": result.Email,
		"roles": s.session.Roles(ctx).List(),
	})
	return result, nil
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := s.validator.Registration(reg); err != nil {
		s.logger.Warn("Registration validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	user, err := fetchOne[domain.User](ctx, s.api, http.MethodPost, "/auth/register", reg)
	if err != nil {
		s.logger.Error("Failed to register user", map[string]interface{}{
			"error": err.Error(),
			"email": reg.Email,
		})
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{
		"email": reg.Email,
	})
	return user, nil
}

// Profile fails with ErrUnauthorized without touching the network when there
// is no session.
func (s *AuthService) Profile(ctx context.Context) (*domain.User, error) {
	if !s.session.IsAuthenticated(ctx) {
		return nil, domain.ErrUnauthorized
	}
	user, err := fetchOne[domain.User](ctx, s.api, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		s.logger.Error("Failed to get profile", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return user, nil
}

// UpdateProfile leaves the password unchanged when it is blank.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, in *domain.UserInput) (*domain.User, error) {
	if !s.session.IsAuthenticated(ctx) {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validator.Profile(in); err != nil {
		s.logger.Warn("Profile validation failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}

	body := *in
	if body.Password != nil && *body.Password == "" {
		body.Password = nil
	}
	user, err := fetchOne[domain.User](ctx, s.api, http.MethodPut, entityPath(userPath, id), &body)
	if err != nil {
		s.logger.Error("Failed to update profile", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}

	s.logger.Info("Profile updated", map[string]interface{}{
		"user_id": id,
	})
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear session", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.logger.Info("User logged out", nil)
	return nil
}
