package services

import (
	"context"
	"net/http"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
)

const serviceRecordPath = "/registro-servicio"

type ServiceRecordService struct {
	api       ports.APIRequester
	logger    ports.LoggerPort
	validator *validation.Validator
}

func NewServiceRecordService(api ports.APIRequester, logger ports.LoggerPort, validator *validation.Validator) *ServiceRecordService {
	return &ServiceRecordService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *ServiceRecordService) FindAll(ctx context.Context) ([]domain.ServiceRecord, error) {
	records, err := fetchList[domain.ServiceRecord](ctx, s.api, serviceRecordPath)
	if err != nil {
		s.logger.Error("Failed to list service records", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return records, nil
}

func (s *ServiceRecordService) FindByID(ctx context.Context, id int64) (*domain.ServiceRecord, error) {
	record, err := fetchByID[domain.ServiceRecord](ctx, s.api, serviceRecordPath, id, "Registro de servicio no encontrado")
	if err != nil {
		s.logger.Error("Failed to get service record", map[string]interface{}{
			"error":     err.Error(),
			"record_id": id,
		})
		return nil, err
	}
	return record, nil
}

// Create references the vehicle and workshop as {"id": n}.
func (s *ServiceRecordService) Create(ctx context.Context, in *domain.ServiceRecordInput) (*domain.ServiceRecord, error) {
	if err := s.validator.ServiceRecord(in, false); err != nil {
		s.logger.Warn("Service record validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	record, err := fetchOne[domain.ServiceRecord](ctx, s.api, http.MethodPost, serviceRecordPath, in)
	if err != nil {
		s.logger.Error("Failed to create service record", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": in.Vehiculo.ID,
			"taller_id":  in.Taller.ID,
		})
		return nil, err
	}

	s.logger.Info("Service record created successfully", map[string]interface{}{
		"vehicle_id": in.Vehiculo.ID,
	})
	return record, nil
}

func (s *ServiceRecordService) Update(ctx context.Context, id int64, in *domain.ServiceRecordInput) (*domain.ServiceRecord, error) {
	if err := s.validator.ServiceRecord(in, true); err != nil {
		s.logger.Warn("Service record validation failed", map[string]interface{}{
			"error":     err.Error(),
			"record_id": id,
		})
		return nil, err
	}

	record, err := fetchOne[domain.ServiceRecord](ctx, s.api, http.MethodPut, entityPath(serviceRecordPath, id), in)
	if err != nil {
		s.logger.Error("Failed to update service record", map[string]interface{}{
			"error":     err.Error(),
			"record_id": id,
		})
		return nil, err
	}
	return record, nil
}

func (s *ServiceRecordService) Delete(ctx context.Context, id int64) error {
	if err := send(ctx, s.api, http.MethodDelete, entityPath(serviceRecordPath, id)); err != nil {
		s.logger.Error("Failed to delete service record", map[string]interface{}{
			"error":     err.Error(),
			"record_id": id,
		})
		return err
	}
	return nil
}

// FindWorkshops and FindVehicles back the record form's selection lists.
func (s *ServiceRecordService) FindWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	return fetchList[domain.Workshop](ctx, s.api, workshopPath)
}

func (s *ServiceRecordService) FindVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return fetchList[domain.Vehicle](ctx, s.api, vehiclePath)
}
