package metrics

import (
	"context"
	"net/http"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const namespace string = "thopasichai"

// Metrics keeps prometheus collectors up to date from domain events.
type Metrics struct {
	registry *prometheus.Registry

	readings      *prometheus.CounterVec
	moisture      *prometheus.GaugeVec
	sensors       prometheus.Counter
	motorChanges  *prometheus.CounterVec
	motorOn       *prometheus.GaugeVec
	manualMode    prometheus.Gauge
	thresholdSets prometheus.Counter
	notObserved   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_received_total",
			Help:      "Number of soil moisture readings stored, by moisture status.",
		}, []string{"status"}),
		moisture: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "soil_moisture_percent",
			Help:      "Latest soil moisture reading per node.",
		}, []string{"nodeid"}),
		sensors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sensors_created_total",
			Help:      "Number of sensor nodes created.",
		}),
		motorChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "motor_state_changes_total",
			Help:      "Number of motor state changes, by new state and mode.",
		}, []string{"state", "mode"}),
		motorOn: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "motor_on",
			Help:      "1 if the motor of the node is ON, 0 otherwise.",
		}, []string{"nodeid"}),
		manualMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "manual_mode",
			Help:      "1 if the system is in MANUAL mode.",
		}),
		thresholdSets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "threshold_updates_total",
			Help:      "Number of threshold updates.",
		}),
		notObserved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sensor_not_observed_total",
			Help:      "Number of times a sensor node was reported as silent.",
		}, []string{"nodeid"}),
	}

	m.registry.MustRegister(
		m.readings, m.moisture, m.sensors, m.motorChanges, m.motorOn, m.manualMode, m.thresholdSets, m.notObserved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	switch e := message.(type) {
	case *types.ReadingReceived:
		m.readings.WithLabelValues(string(types.MoistureStatusOf(e.Value))).Inc()
		m.moisture.WithLabelValues(e.NodeID).Set(e.Value)
	case *types.SensorCreated:
		m.sensors.Inc()
	case *types.MotorStateChanged:
		m.motorChanges.WithLabelValues(string(e.State), string(e.Mode)).Inc()
		m.motorOn.WithLabelValues(e.NodeID).Set(boolToFloat(e.State.IsOn()))
	case *types.ModeChanged:
		m.manualMode.Set(boolToFloat(e.Mode == types.ModeManual))
	case *types.ThresholdUpdated:
		m.thresholdSets.Inc()
	case *types.SensorNotObserved:
		m.notObserved.WithLabelValues(e.NodeID).Inc()
	}

	return nil
}

// SetMode initialises the mode gauge, e.g. at startup before any mode change.
func (m *Metrics) SetMode(mode types.Mode) {
	m.manualMode.Set(boolToFloat(mode == types.ModeManual))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
