package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"
)

const vehiclePath = "/vehiculo"

type VehicleService struct {
	api       ports.APIRequester
	logger    ports.LoggerPort
	validator *validation.Validator
}

func NewVehicleService(api ports.APIRequester, logger ports.LoggerPort, validator *validation.Validator) *VehicleService {
	return &VehicleService{
		api:       api,
		logger:    logger,
		validator: validator,
	}
}

func (s *VehicleService) FindAll(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := fetchList[domain.Vehicle](ctx, s.api, vehiclePath)
	if err != nil {
		s.logger.Error("Failed to list vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Debug("Retrieved vehicles", map[string]interface{}{
		"vehicles_count": len(vehicles),
	})

	return vehicles, nil
}

func (s *VehicleService) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := fetchByID[domain.Vehicle](ctx, s.api, vehiclePath, id, "Vehículo no encontrado")
	if err != nil {
		s.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Create(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error) {
	if err := s.validator.Vehicle(in, false); err != nil {
		s.logger.Warn("Vehicle validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	vehicle, err := fetchOne[domain.Vehicle](ctx, s.api, http.MethodPost, vehiclePath, in)
	if err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if vehicle != nil {
		s.logger.Info("Vehicle created successfully", map[string]interface{}{
			"vehicle_id":   vehicle.ID,
			"numero_placa": vehicle.NumeroPlaca,
		})
	}

	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id int64, in *domain.VehicleInput) (*domain.Vehicle, error) {
	if err := s.validator.Vehicle(in, true); err != nil {
		s.logger.Warn("Vehicle validation failed", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		return nil, err
	}

	vehicle, err := fetchOne[domain.Vehicle](ctx, s.api, http.MethodPut, entityPath(vehiclePath, id), in)
	if err != nil {
		s.logger.Error("Failed to update vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		return nil, err
	}

	s.logger.Info("Vehicle updated successfully", map[string]interface{}{
		"vehicle_id": id,
	})

	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := send(ctx, s.api, http.MethodDelete, entityPath(vehiclePath, id)); err != nil {
		s.logger.Error("Failed to delete vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		return err
	}

	s.logger.Info("Vehicle deleted successfully", map[string]interface{}{
		"vehicle_id": id,
	})

	return nil
}

func (s *VehicleService) AssignServiceRecord(ctx context.Context, vehicleID, recordID int64) (*domain.Vehicle, error) {
	return s.serviceRecordLink(ctx, http.MethodPost, vehicleID, recordID)
}

func (s *VehicleService) RemoveServiceRecord(ctx context.Context, vehicleID, recordID int64) (*domain.Vehicle, error) {
	return s.serviceRecordLink(ctx, http.MethodDelete, vehicleID, recordID)
}

func (s *VehicleService) serviceRecordLink(ctx context.Context, method string, vehicleID, recordID int64) (*domain.Vehicle, error) {
	path := fmt.Sprintf("%s/%d/registro-servicio/%d", vehiclePath, vehicleID, recordID)
	vehicle, err := fetchOne[domain.Vehicle](ctx, s.api, method, path, nil)
	if err != nil {
		s.logger.Error("Failed to change vehicle service records", map[string]interface{}{
			"error":      err.Error(),
			"method":     method,
			"vehicle_id": vehicleID,
			"record_id":  recordID,
		})
		return nil, err
	}
	return vehicle, nil
}
