package irrigation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const manualModeMessage string = "Manual mode - motors not automatically controlled"

// layouts accepted for reading timestamps, tried in order. Layouts without a zone
// are interpreted in the configured location.
var timestampLayouts = []struct {
	layout   string
	withZone bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02 15:04:05.999999999Z07:00", true},
	{"2006-01-02 15:04:05.999999999", false},
	{"2006-01-02", false},
}

// ParseTimestamp accepts RFC 3339 and ISO 8601 style timestamps as well as plain dates.
// Timestamps without a zone are interpreted in loc. The result is always in UTC.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, l := range timestampLayouts {
		var t time.Time
		var err error

		if l.withZone {
			t, err = time.Parse(l.layout, value)
		} else {
			t, err = time.ParseInLocation(l.layout, value, loc)
		}

		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func checkLength(value string, max int) string {
	if len(value) > max {
		return fmt.Sprintf("Ensure this field has no more than %d characters", max)
	}
	return ""
}

func checkNodeID(nodeID string) string {
	if nodeID == "" {
		return "This field is required"
	}
	return checkLength(nodeID, r.MaxNodeIDLength)
}

func checkName(name string) string {
	if name == "" {
		return "This field is required"
	}
	return checkLength(name, r.MaxNameLength)
}

func validNodeID(nodeID string) error {
	if msg := checkNodeID(nodeID); msg != "" {
		return newValidationError("nodeid", msg)
	}
	return nil
}

func validPercentage(label string, value *float64) string {
	if value == nil {
		return "This field is required"
	}
	if math.IsNaN(*value) || *value < 0 || *value > 100 {
		return fmt.Sprintf("%s must be between 0 and 100", label)
	}
	return ""
}

func (s *service) validateReading(ctx context.Context, in types.IncomingReading) (r.Reading, error) {
	nodeID := strings.TrimSpace(in.NodeID)

	if err := validNodeID(nodeID); err != nil {
		return r.Reading{}, err
	}

	verr := &ValidationError{}

	if msg := validPercentage("Value", in.Value); msg != "" {
		verr.add("value", msg)
	}

	if msg := checkLength(in.SourceAddress, r.MaxSourceAddressLength); msg != "" {
		verr.add("ip_address", msg)
	}

	now := s.now().UTC()
	timestamp := now

	if in.Timestamp != "" {
		t, err := ParseTimestamp(in.Timestamp, s.location)
		if err != nil {
			verr.add("timestamp", err.Error())
		} else {
			timestamp = t
		}
	}

	if err := verr.orNil(); err != nil {
		return r.Reading{}, err
	}

	if timestamp.After(now.Add(time.Minute)) {
		logger := logging.GetFromContext(ctx)
		logger.Warn().Str("nodeid", nodeID).Time("timestamp", timestamp).Msg("reading timestamp is in the future")
	}

	return r.Reading{
		NodeID:        nodeID,
		Value:         *in.Value,
		Timestamp:     timestamp,
		SourceAddress: in.SourceAddress,
	}, nil
}

// IngestReading validates and stores a reading, auto provisioning the sensor if needed,
// and then applies automatic motor control. Failures of the motor control are reported in
// the result and never undo the stored reading.
func (s *service) IngestReading(ctx context.Context, in types.IncomingReading) (types.IngestResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "ingest-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	reading, err := s.validateReading(ctx, in)
	if err != nil {
		return types.IngestResult{}, err
	}

	logger := logging.GetFromContext(ctx).With().Str("nodeid", reading.NodeID).Logger()
	ctx = logging.NewContextWithLogger(ctx, logger)

	stored, sensorCreated, err := s.repo.AddReading(ctx, reading, "Auto-created: "+reading.NodeID)
	if err != nil {
		return types.IngestResult{}, err
	}

	if sensorCreated {
		logger.Info().Msg("auto-created new sensor")
		s.publish(ctx, &types.SensorCreated{NodeID: stored.NodeID, Name: "Auto-created: " + stored.NodeID, Timestamp: stored.CreatedAt})
	}

	logger.Debug().Float64("value", stored.Value).Msg("reading stored")
	s.publish(ctx, &types.ReadingReceived{ReadingID: stored.ID, NodeID: stored.NodeID, Value: stored.Value, Timestamp: stored.Timestamp})

	result := types.IngestResult{
		Status:        "ok",
		Message:       "Data received successfully",
		NodeID:        stored.NodeID,
		ReadingID:     stored.ID,
		SensorCreated: sensorCreated,
		MoistureValue: stored.Value,
	}

	controlErr := s.applyAutomaticControl(ctx, stored, &result)
	if controlErr != nil {
		logger.Error().Err(controlErr).Msg("error in automatic motor control")
		result.MotorControlError = controlErr.Error()
	}

	return result, nil
}

func (s *service) applyAutomaticControl(ctx context.Context, reading r.Reading, result *types.IngestResult) error {
	mode, err := s.repo.GetMode(ctx)
	if err != nil {
		return err
	}

	result.Mode = mode.Mode

	if mode.Mode != types.ModeAutomatic {
		result.ControlMessage = manualModeMessage
		return nil
	}

	motor, err := s.repo.GetMotorByNodeID(ctx, reading.NodeID)
	if err != nil {
		if errors.Is(err, r.ErrMotorNotFound) {
			result.ControlMessage = "No motor configured for sensor: " + reading.NodeID
			return nil
		}
		return err
	}

	cfg, err := s.repo.GetOrCreateThreshold(ctx, reading.NodeID, DefaultThreshold)
	if err != nil {
		return err
	}

	threshold := cfg.Threshold
	result.Threshold = &threshold

	decision := Decide(reading.Value, threshold)

	applied, err := s.repo.ApplyMotorDecision(ctx, motor.NodeID, decision.State, reading.CreatedAt)
	if err != nil {
		if errors.Is(err, r.ErrModeNotAutomatic) {
			result.Mode = types.ModeManual
			result.ControlMessage = manualModeMessage
			return nil
		}
		if errors.Is(err, r.ErrMotorNotFound) {
			result.ControlMessage = "No motor configured for sensor: " + reading.NodeID
			return nil
		}
		return err
	}

	result.MotorUpdate = s.motorUpdate(ctx, applied, decision)
	return nil
}

// motorUpdate reports the outcome of an automatic decision and publishes the state change,
// if there was one.
func (s *service) motorUpdate(ctx context.Context, applied r.MotorDecision, decision Decision) *types.MotorUpdate {
	motor := applied.Motor

	if !applied.Applied {
		return &types.MotorUpdate{
			MotorID:      motor.ID,
			MotorName:    motor.Name,
			SensorNodeID: motor.NodeID,
			State:        motor.State,
			Reason:       "Superseded by a newer reading",
		}
	}

	if applied.Previous == decision.State {
		return &types.MotorUpdate{
			MotorID:      motor.ID,
			MotorName:    motor.Name,
			SensorNodeID: motor.NodeID,
			State:        motor.State,
			Reason:       "No change needed - " + decision.Reason,
		}
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Str("motor", motor.Name).Str("state", string(decision.State)).Msg("automatic mode changed motor state")

	s.publish(ctx, &types.MotorStateChanged{
		MotorID:       motor.ID,
		MotorName:     motor.Name,
		NodeID:        motor.NodeID,
		PreviousState: applied.Previous,
		State:         decision.State,
		Mode:          types.ModeAutomatic,
		Reason:        decision.Reason,
		Timestamp:     s.now().UTC(),
	})

	return &types.MotorUpdate{
		MotorID:       motor.ID,
		MotorName:     motor.Name,
		SensorNodeID:  motor.NodeID,
		PreviousState: applied.Previous,
		NewState:      decision.State,
		Changed:       true,
		Reason:        decision.Reason,
	}
}
