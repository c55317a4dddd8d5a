package services

import (
	"context"
	"net/http"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
)

const workshopPath = "/taller"

type WorkshopService struct {
	api       ports.APIRequester
	logger    ports.LoggerPort
	validator *validation.Validator
}

func NewWorkshopService(api ports.APIRequester, logger ports.LoggerPort, validator *validation.Validator) *WorkshopService {
	return &WorkshopService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *WorkshopService) FindAll(ctx context.Context) ([]domain.Workshop, error) {
	workshops, err := fetchList[domain.Workshop](ctx, s.api, workshopPath)
	if err != nil {
		s.logger.Error("Failed to list workshops", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return workshops, nil
}

func (s *WorkshopService) FindByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	workshop, err := fetchByID[domain.Workshop](ctx, s.api, workshopPath, id, "Taller no encontrado")
	if err != nil {
		s.logger.Error("Failed to get workshop", map[string]interface{}{
			"error":       err.Error(),
			"workshop_id": id,
		})
		return nil, err
	}
	return workshop, nil
}

func (s *WorkshopService) Create(ctx context.Context, in *domain.WorkshopInput) (*domain.Workshop, error) {
	if err := s.validator.Workshop(in, false); err != nil {
		s.logger.Warn("Workshop validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	workshop, err := fetchOne[domain.Workshop](ctx, s.api, http.MethodPost, workshopPath, in)
	if err != nil {
		s.logger.Error("Failed to create workshop", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Workshop created successfully", nil)
	return workshop, nil
}

func (s *WorkshopService) Update(ctx context.Context, id int64, in *domain.WorkshopInput) (*domain.Workshop, error) {
	if err := s.validator.Workshop(in, true); err != nil {
		s.logger.Warn("Workshop validation failed", map[string]interface{}{
			"error":       err.Error(),
			"workshop_id": id,
		})
		return nil, err
	}

	workshop, err := fetchOne[domain.Workshop](ctx, s.api, http.MethodPut, entityPath(workshopPath, id), in)
	if err != nil {
		s.logger.Error("Failed to update workshop", map[string]interface{}{
			"error":       err.Error(),
			"workshop_id": id,
		})
		return nil, err
	}
	return workshop, nil
}

func (s *WorkshopService) Delete(ctx context.Context, id int64) error {
	if err := send(ctx, s.api, http.MethodDelete, entityPath(workshopPath, id)); err != nil {
		s.logger.Error("Failed to delete workshop", map[string]interface{}{
			"error":       err.Error(),
			"workshop_id": id,
		})
		return err
	}

	s.logger.Info("Workshop deleted successfully", map[string]interface{}{
		"workshop_id": id,
	})
	return nil
}
