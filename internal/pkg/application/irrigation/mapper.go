package irrigation

import (
	"time"

	"github.com/samber/lo"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func toReading(reading r.Reading, now time.Time) types.Reading {
	age := int64(now.Sub(reading.CreatedAt).Seconds())
	if age < 0 {
		age = 0
	}

	return types.Reading{
		ID:             reading.ID,
		NodeID:         reading.NodeID,
		Value:          reading.Value,
		Timestamp:      reading.Timestamp,
		SourceAddress:  reading.SourceAddress,
		CreatedAt:      reading.CreatedAt,
		MoistureStatus: types.MoistureStatusOf(reading.Value),
		AgeSeconds:     age,
	}
}

func toReadings(readings []r.Reading, now time.Time) []types.Reading {
	return lo.Map(readings, func(reading r.Reading, _ int) types.Reading {
		return toReading(reading, now)
	})
}

func toMotor(m r.Motor) types.Motor {
	return types.Motor{
		ID:           m.ID,
		Name:         m.Name,
		SensorNodeID: m.NodeID,
		State:        m.State,
		IsOn:         m.State.IsOn(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMotors(motors []r.Motor) []types.Motor {
	return lo.Map(motors, func(m r.Motor, _ int) types.Motor {
		return toMotor(m)
	})
}

func toSensor(s r.Sensor) types.Sensor {
	return types.Sensor{
		NodeID:    s.NodeID,
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toThreshold(t r.ThresholdConfig) types.Threshold {
	return types.Threshold{
		NodeID:    t.NodeID,
		Threshold: t.Threshold,
		UpdatedAt: t.UpdatedAt,
	}
}

func toSystemMode(m r.SystemMode) types.SystemMode {
	return types.SystemMode{
		Mode:      m.Mode,
		UpdatedAt: m.UpdatedAt,
	}
}
