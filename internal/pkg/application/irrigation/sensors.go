package irrigation

import (
	"context"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/samber/lo"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func (s *service) CreateSensor(ctx context.Context, nodeID, name string) (types.Sensor, error) {
	nodeID = strings.TrimSpace(nodeID)
	if err := validNodeID(nodeID); err != nil {
		return types.Sensor{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = nodeID
	}

	if msg := checkLength(name, r.MaxNameLength); msg != "" {
		return types.Sensor{}, newValidationError("name", msg)
	}

	sensor, err := s.repo.CreateSensor(ctx, nodeID, name)
	if err != nil {
		return types.Sensor{}, err
	}

	s.publish(ctx, &types.SensorCreated{NodeID: sensor.NodeID, Name: sensor.Name, Timestamp: sensor.CreatedAt})

	return toSensor(sensor), nil
}

func (s *service) GetSensor(ctx context.Context, nodeID string) (types.Sensor, error) {
	sensor, err := s.repo.GetSensor(ctx, nodeID)
	if err != nil {
		return types.Sensor{}, err
	}

	return toSensor(sensor), nil
}

func (s *service) GetSensors(ctx context.Context) ([]types.Sensor, error) {
	sensors, err := s.repo.GetSensors(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(sensors, func(sensor r.Sensor, _ int) types.Sensor {
		return toSensor(sensor)
	}), nil
}

// DeleteSensor removes the sensor along with its motor, threshold and readings.
func (s *service) DeleteSensor(ctx context.Context, nodeID string) error {
	err := s.repo.DeleteSensor(ctx, nodeID)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Str("nodeid", nodeID).Msg("sensor deleted")

	return nil
}
