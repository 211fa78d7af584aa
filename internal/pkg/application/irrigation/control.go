package irrigation

import (
	"context"
	"errors"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/samber/lo"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func (s *service) requireManualMode(ctx context.Context, policy error) error {
	mode, err := s.repo.GetMode(ctx)
	if err != nil {
		return err
	}

	if mode.Mode != types.ModeManual {
		return &PolicyError{Err: policy}
	}

	return nil
}

// SetMotorState lets an operator switch a motor, which is only allowed in MANUAL mode.
func (s *service) SetMotorState(ctx context.Context, id uint, state string) (types.Motor, error) {
	var err error

	ctx, span := tracer.Start(ctx, "set-motor-state")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = s.requireManualMode(ctx, ErrManualControlNotAllowed); err != nil {
		return types.Motor{}, err
	}

	desired, err := types.ParseMotorState(state)
	if err != nil {
		err = newValidationError("state", err.Error())
		return types.Motor{}, err
	}

	motor, err := s.setMotorState(ctx, id, desired)
	return motor, err
}

func (s *service) setMotorState(ctx context.Context, id uint, desired types.MotorState) (types.Motor, error) {
	previous, motor, err := s.repo.SetMotorState(ctx, id, desired)
	if err != nil {
		return types.Motor{}, err
	}

	s.motorControlled(ctx, previous, motor)

	return toMotor(motor), nil
}

func (s *service) motorControlled(ctx context.Context, previous types.MotorState, motor r.Motor) {
	logger := logging.GetFromContext(ctx)
	logger.Info().Uint("motor_id", motor.ID).Str("state", string(motor.State)).Msg("motor manually controlled")

	if previous != motor.State {
		s.publish(ctx, &types.MotorStateChanged{
			MotorID:       motor.ID,
			MotorName:     motor.Name,
			NodeID:        motor.NodeID,
			PreviousState: previous,
			State:         motor.State,
			Mode:          types.ModeManual,
			Reason:        "Manual control",
			Timestamp:     s.now().UTC(),
		})
	}
}

// BulkSetMotorState applies every command independently. Unknown motors and invalid states
// are reported per item without affecting the other commands.
func (s *service) BulkSetMotorState(ctx context.Context, commands []types.MotorCommand) (types.BulkControlResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "bulk-set-motor-state")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = s.requireManualMode(ctx, ErrBulkControlNotAllowed); err != nil {
		return types.BulkControlResult{}, err
	}

	if len(commands) == 0 {
		err = newValidationError("motors", "This list may not be empty")
		return types.BulkControlResult{}, err
	}

	result := types.BulkControlResult{
		UpdatedMotors: []types.Motor{},
	}

	for _, cmd := range commands {
		desired, parseErr := types.ParseMotorState(cmd.State)
		if parseErr != nil {
			result.Errors = append(result.Errors, types.BulkControlError{ID: cmd.ID, Error: parseErr.Error()})
			continue
		}

		motor, setErr := s.setMotorState(ctx, cmd.ID, desired)
		if setErr != nil {
			if errors.Is(setErr, r.ErrMotorNotFound) {
				result.Errors = append(result.Errors, types.BulkControlError{ID: cmd.ID, Error: "Motor not found"})
				continue
			}
			err = setErr
			return types.BulkControlResult{}, err
		}

		result.UpdatedMotors = append(result.UpdatedMotors, motor)
	}

	result.UpdatedCount = len(result.UpdatedMotors)

	return result, nil
}

func (s *service) GetMotors(ctx context.Context) ([]types.Motor, error) {
	motors, err := s.repo.GetMotors(ctx)
	if err != nil {
		return nil, err
	}

	return toMotors(motors), nil
}

func (s *service) GetMotor(ctx context.Context, id uint) (types.Motor, error) {
	motor, err := s.repo.GetMotor(ctx, id)
	if err != nil {
		return types.Motor{}, err
	}

	return toMotor(motor), nil
}

// GetMotorStatesByNode returns the state of every motor keyed by the node id of its sensor.
func (s *service) GetMotorStatesByNode(ctx context.Context) (map[string]types.MotorState, error) {
	motors, err := s.repo.GetMotors(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Associate(motors, func(m r.Motor) (string, types.MotorState) {
		return m.NodeID, m.State
	}), nil
}

func (s *service) CreateMotor(ctx context.Context, nodeID, name string) (types.Motor, error) {
	nodeID = strings.TrimSpace(nodeID)
	name = strings.TrimSpace(name)

	verr := &ValidationError{}
	if msg := checkNodeID(nodeID); msg != "" {
		verr.add("sensor_nodeid", msg)
	}
	if msg := checkName(name); msg != "" {
		verr.add("name", msg)
	}
	if err := verr.orNil(); err != nil {
		return types.Motor{}, err
	}

	motor, err := s.repo.CreateMotor(ctx, nodeID, name)
	if err != nil {
		return types.Motor{}, err
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Str("nodeid", nodeID).Uint("motor_id", motor.ID).Msg("motor created")

	return toMotor(motor), nil
}

// UpdateMotor renames a motor and optionally changes its state, both in one write. A state
// change is subject to the same MANUAL mode rule as SetMotorState.
func (s *service) UpdateMotor(ctx context.Context, id uint, name, state *string) (types.Motor, error) {
	if state != nil {
		if err := s.requireManualMode(ctx, ErrManualControlNotAllowed); err != nil {
			return types.Motor{}, err
		}
	}

	var newName *string
	var desired *types.MotorState
	verr := &ValidationError{}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			verr.add("name", "This field may not be blank")
		} else if msg := checkLength(trimmed, r.MaxNameLength); msg != "" {
			verr.add("name", msg)
		}
		newName = &trimmed
	}
	if state != nil {
		parsed, err := types.ParseMotorState(*state)
		if err != nil {
			verr.add("state", err.Error())
		}
		desired = &parsed
	}
	if err := verr.orNil(); err != nil {
		return types.Motor{}, err
	}

	previous, motor, err := s.repo.UpdateMotor(ctx, id, newName, desired)
	if err != nil {
		return types.Motor{}, err
	}

	if desired != nil {
		s.motorControlled(ctx, previous, motor)
	}

	return toMotor(motor), nil
}

func (s *service) DeleteMotor(ctx context.Context, id uint) error {
	return s.repo.DeleteMotor(ctx, id)
}
