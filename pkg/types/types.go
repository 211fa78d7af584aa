package types

import (
	"fmt"
	"strings"
	"time"
)

type MotorState string

const (
	MotorOn  MotorState = "ON"
	MotorOff MotorState = "OFF"
)

func (s MotorState) IsOn() bool {
	return s == MotorOn
}

func ParseMotorState(s string) (MotorState, error) {
	switch MotorState(strings.ToUpper(strings.TrimSpace(s))) {
	case MotorOn:
		return MotorOn, nil
	case MotorOff:
		return MotorOff, nil
	}
	return "", fmt.Errorf("invalid motor state %q, must be one of ON, OFF", s)
}

type Mode string

const (
	ModeManual    Mode = "MANUAL"
	ModeAutomatic Mode = "AUTOMATIC"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeManual:
		return ModeManual, nil
	case ModeAutomatic:
		return ModeAutomatic, nil
	}
	return "", fmt.Errorf("invalid mode %q, must be one of MANUAL, AUTOMATIC", s)
}

type MoistureStatus string

const (
	MoistureDry       MoistureStatus = "DRY"
	MoistureOptimal   MoistureStatus = "OPTIMAL"
	MoistureWet       MoistureStatus = "WET"
	MoistureSaturated MoistureStatus = "SATURATED"
)

func MoistureStatusOf(value float64) MoistureStatus {
	switch {
	case value < 30:
		return MoistureDry
	case value < 60:
		return MoistureOptimal
	case value < 80:
		return MoistureWet
	default:
		return MoistureSaturated
	}
}

// IncomingReading is a reading as reported by a sensor node, before validation.
type IncomingReading struct {
	NodeID        string   `json:"nodeid"`
	Value         *float64 `json:"value"`
	Timestamp     string   `json:"timestamp,omitempty"`
	SourceAddress string   `json:"ip_address,omitempty"`
}

type Reading struct {
	ID             string         `json:"id"`
	NodeID         string         `json:"nodeid"`
	Value          float64        `json:"value"`
	Timestamp      time.Time      `json:"timestamp"`
	SourceAddress  string         `json:"ip_address,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	MoistureStatus MoistureStatus `json:"moisture_status"`
	AgeSeconds     int64          `json:"age_seconds"`
}

type Sensor struct {
	NodeID    string    `json:"nodeid"`
	Name      string    `json:"name"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Motor struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	SensorNodeID string     `json:"sensor_nodeid"`
	State        MotorState `json:"state"`
	IsOn         bool       `json:"is_on"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Threshold struct {
	NodeID    string    `json:"sensor_nodeid"`
	Threshold float64   `json:"threshold"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SystemMode struct {
	Mode      Mode      `json:"mode"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MotorUpdate describes what the automatic control did, or decided not to do, for a motor.
type MotorUpdate struct {
	MotorID       uint       `json:"motor_id"`
	MotorName     string     `json:"motor_name"`
	SensorNodeID  string     `json:"sensor_nodeid"`
	PreviousState MotorState `json:"previous_state,omitempty"`
	NewState      MotorState `json:"new_state,omitempty"`
	State         MotorState `json:"state,omitempty"`
	Changed       bool       `json:"changed"`
	Reason        string     `json:"reason"`
}

type IngestResult struct {
	Status            string       `json:"status"`
	Message           string       `json:"message"`
	NodeID            string       `json:"nodeid"`
	ReadingID         string       `json:"reading_id,omitempty"`
	SensorCreated     bool         `json:"sensor_created"`
	MoistureValue     float64      `json:"moisture_value"`
	Mode              Mode         `json:"mode,omitempty"`
	Threshold         *float64     `json:"threshold,omitempty"`
	MotorUpdate       *MotorUpdate `json:"motor_update,omitempty"`
	ControlMessage    string       `json:"control_message,omitempty"`
	MotorControlError string       `json:"motor_control_error,omitempty"`
}

type MotorCommand struct {
	ID    uint   `json:"id"`
	State string `json:"state"`
}

type BulkControlError struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

type BulkControlResult struct {
	UpdatedMotors []Motor            `json:"updated_motors"`
	UpdatedCount  int                `json:"updated_count"`
	Errors        []BulkControlError `json:"errors,omitempty"`
}

type Recommendation struct {
	DesiredState MotorState `json:"desired_state"`
	Threshold    float64    `json:"threshold"`
	Reason       string     `json:"reason"`
}

type LatestReading struct {
	Reading        Reading         `json:"sensor_data"`
	Recommendation *Recommendation `json:"motor_recommendation,omitempty"`
}

type Page[T any] struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	Results    []T   `json:"results"`
}

type DashboardStats struct {
	TotalReadings   int64      `json:"total_readings"`
	AvgMoisture24h  float64    `json:"avg_moisture_24h"`
	AvgMoisture7d   float64    `json:"avg_moisture_7d"`
	MotorsOnCount   int64      `json:"motors_on_count"`
	MotorsOffCount  int64      `json:"motors_off_count"`
	SystemMode      Mode       `json:"system_mode"`
	LastReadingTime *time.Time `json:"last_reading_time"`
	UniqueNodes     int64      `json:"unique_nodes"`
}

type Health struct {
	Status              string     `json:"status"`
	Database            string     `json:"database"`
	LastSensorUpdate    *time.Time `json:"last_sensor_update"`
	TimeSinceLastUpdate *string    `json:"time_since_last_update"`
	MotorsCount         int64      `json:"motors_count"`
	Error               string     `json:"error,omitempty"`
	Timestamp           time.Time  `json:"timestamp"`
}

type SystemStatus struct {
	LatestMoisture *Reading    `json:"latest_moisture"`
	Motors         []Motor     `json:"motors"`
	SystemMode     SystemMode  `json:"system_mode"`
	Thresholds     []Threshold `json:"thresholds"`
	Timestamp      time.Time   `json:"timestamp"`
}
