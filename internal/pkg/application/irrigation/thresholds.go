package irrigation

import (
	"context"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/samber/lo"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

// GetThreshold returns the threshold of a known sensor, creating the default configuration
// on first access.
func (s *service) GetThreshold(ctx context.Context, nodeID string) (types.Threshold, error) {
	cfg, err := s.repo.GetOrCreateThreshold(ctx, nodeID, DefaultThreshold)
	if err != nil {
		return types.Threshold{}, err
	}

	return toThreshold(cfg), nil
}

func (s *service) GetThresholds(ctx context.Context) ([]types.Threshold, error) {
	thresholds, err := s.repo.GetThresholds(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Map(thresholds, func(t r.ThresholdConfig, _ int) types.Threshold {
		return toThreshold(t)
	}), nil
}

// SetThreshold stores a new threshold for a sensor, creating the sensor if it is unknown.
// Motors are not re-evaluated, the new threshold applies from the next reading.
func (s *service) SetThreshold(ctx context.Context, nodeID string, value *float64) (types.Threshold, error) {
	var err error

	ctx, span := tracer.Start(ctx, "set-threshold")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	nodeID = strings.TrimSpace(nodeID)

	verr := &ValidationError{}
	if msg := checkNodeID(nodeID); msg != "" {
		verr.add("nodeid", msg)
	}
	if msg := validPercentage("Threshold", value); msg != "" {
		verr.add("threshold", msg)
	}
	if err = verr.orNil(); err != nil {
		return types.Threshold{}, err
	}

	cfg, created, err := s.repo.SetThreshold(ctx, nodeID, "Auto-created: "+nodeID, *value)
	if err != nil {
		return types.Threshold{}, err
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Str("nodeid", nodeID).Float64("threshold", *value).Msg("threshold updated")

	if created {
		s.publish(ctx, &types.SensorCreated{NodeID: nodeID, Name: "Auto-created: " + nodeID, Timestamp: s.now().UTC()})
	}

	s.publish(ctx, &types.ThresholdUpdated{NodeID: nodeID, Threshold: cfg.Threshold, Timestamp: s.now().UTC()})

	return toThreshold(cfg), nil
}
