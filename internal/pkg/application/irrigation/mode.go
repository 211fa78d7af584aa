package irrigation

import (
	"context"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func (s *service) GetMode(ctx context.Context) (types.SystemMode, error) {
	mode, err := s.repo.GetMode(ctx)
	if err != nil {
		return types.SystemMode{}, err
	}

	return toSystemMode(mode), nil
}

// SetMode switches between MANUAL and AUTOMATIC. Switching does not touch any motor; in
// AUTOMATIC mode motors converge on the next reading of their sensor.
func (s *service) SetMode(ctx context.Context, mode string) (types.SystemMode, error) {
	var err error

	ctx, span := tracer.Start(ctx, "set-mode")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	m, err := types.ParseMode(mode)
	if err != nil {
		err = newValidationError("mode", err.Error())
		return types.SystemMode{}, err
	}

	previous, current, err := s.repo.SetMode(ctx, m)
	if err != nil {
		return types.SystemMode{}, err
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Str("mode", string(m)).Str("previous", string(previous)).Msg("system mode set")

	if previous != m {
		s.publish(ctx, &types.ModeChanged{PreviousMode: previous, Mode: m, Timestamp: current.UpdatedAt})
	}

	return toSystemMode(current), nil
}

// DeleteMode always fails, the system mode is a singleton that must exist.
func (s *service) DeleteMode(ctx context.Context) error {
	err := s.repo.DeleteMode(ctx)
	if err == nil {
		return ErrModeCannotBeDeleted
	}
	return err
}
