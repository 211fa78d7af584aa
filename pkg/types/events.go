package types

import "time"

type ReadingReceived struct {
	ReadingID string    `json:"id"`
	NodeID    string    `json:"nodeid"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *ReadingReceived) ContentType() string {
	return "application/json"
}
func (r *ReadingReceived) TopicName() string {
	return "irrigation.readingReceived"
}

type SensorCreated struct {
	NodeID    string    `json:"nodeid"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *SensorCreated) ContentType() string {
	return "application/json"
}
func (s *SensorCreated) TopicName() string {
	return "irrigation.sensorCreated"
}

type MotorStateChanged struct {
	MotorID       uint       `json:"motor_id"`
	MotorName     string     `json:"motor_name"`
	NodeID        string     `json:"nodeid"`
	PreviousState MotorState `json:"previous_state"`
	State         MotorState `json:"state"`
	Mode          Mode       `json:"mode"`
	Reason        string     `json:"reason,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}

func (m *MotorStateChanged) ContentType() string {
	return "application/json"
}
func (m *MotorStateChanged) TopicName() string {
	return "irrigation.motorStateChanged"
}

type ModeChanged struct {
	PreviousMode Mode      `json:"previous_mode"`
	Mode         Mode      `json:"mode"`
	Timestamp    time.Time `json:"timestamp"`
}

func (m *ModeChanged) ContentType() string {
	return "application/json"
}
func (m *ModeChanged) TopicName() string {
	return "irrigation.modeChanged"
}

type ThresholdUpdated struct {
	NodeID    string    `json:"nodeid"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

func (t *ThresholdUpdated) ContentType() string {
	return "application/json"
}
func (t *ThresholdUpdated) TopicName() string {
	return "irrigation.thresholdUpdated"
}

// SensorNotObserved is published when an active sensor node has not reported within its expected interval.
type SensorNotObserved struct {
	NodeID       string     `json:"nodeid"`
	LastObserved *time.Time `json:"last_observed"`
	Timestamp    time.Time  `json:"timestamp"`
}

func (s *SensorNotObserved) ContentType() string {
	return "application/json"
}
func (s *SensorNotObserved) TopicName() string {
	return "irrigation.sensorNotObserved"
}
