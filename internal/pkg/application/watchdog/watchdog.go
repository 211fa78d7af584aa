package watchdog

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/events"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

var tracer = otel.Tracer("thopasichai/watchdog")

const DefaultInterval time.Duration = time.Hour

// SensorSource is the part of the irrigation service the watchdog reads from.
type SensorSource interface {
	GetSensors(ctx context.Context) ([]types.Sensor, error)
	GetLatestReading(ctx context.Context, nodeID string, withRecommendation bool) (types.LatestReading, error)
}

type Watchdog interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

type Config struct {
	// Interval is how long a sensor may stay silent before it is reported as not observed.
	Interval time.Duration
}

type watchdogImpl struct {
	sensors   SensorSource
	publisher events.Publisher
	interval  time.Duration
	now       func() time.Time

	done chan bool
	wg   sync.WaitGroup

	// reported holds the nodes that have been reported and not been heard from since.
	reported map[string]time.Time
}

func New(sensors SensorSource, publisher events.Publisher, cfg Config) Watchdog {
	w := &watchdogImpl{
		sensors:   sensors,
		publisher: publisher,
		interval:  cfg.Interval,
		now:       time.Now,
		done:      make(chan bool),
		reported:  map[string]time.Time{},
	}

	if w.interval <= 0 {
		w.interval = DefaultInterval
	}

	return w
}

func (w *watchdogImpl) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *watchdogImpl) Stop(ctx context.Context) {
	close(w.done)
	w.wg.Wait()
}

func (w *watchdogImpl) run(ctx context.Context) {
	defer w.wg.Done()

	logger := logging.GetFromContext(ctx)

	for {
		sleepFor := w.check(ctx)
		logger.Debug().Msgf("will sleep for %s", sleepFor)

		select {
		case <-w.done:
			return
		case <-ctx.Done():
			return
		case <-time.After(sleepFor):
		}
	}
}

// check reports sensors that have not been observed within the interval and returns
// the time until the next sensor may expire.
func (w *watchdogImpl) check(ctx context.Context) time.Duration {
	var err error

	ctx, span := tracer.Start(ctx, "check-sensors")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logger := logging.GetFromContext(ctx)

	sensors, err := w.sensors.GetSensors(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not list sensors")
		return w.interval
	}

	now := w.now().UTC()
	sleepFor := w.interval

	for _, s := range sensors {
		if !s.Active {
			continue
		}

		lastObserved, observed := w.lastObserved(ctx, s)

		if lastObserved.Add(w.interval).Before(now) {
			w.reportIfChanged(ctx, s.NodeID, lastObserved, observed, now)
		} else {
			delete(w.reported, s.NodeID)
		}

		if next := timeToNextCheck(lastObserved, w.interval, now); next < sleepFor {
			sleepFor = next
		}
	}

	return sleepFor
}

// lastObserved returns the time of the latest reading from the node, or the time the
// sensor was created if it has never reported.
func (w *watchdogImpl) lastObserved(ctx context.Context, s types.Sensor) (time.Time, bool) {
	latest, err := w.sensors.GetLatestReading(ctx, s.NodeID, false)
	if err != nil {
		if !irrigation.IsNotFound(err) {
			logger := logging.GetFromContext(ctx)
			logger.Warn().Err(err).Str("nodeid", s.NodeID).Msg("could not fetch latest reading")
		}
		return s.CreatedAt.UTC(), false
	}

	return latest.Reading.Timestamp.UTC(), true
}

func (w *watchdogImpl) reportIfChanged(ctx context.Context, nodeID string, lastObserved time.Time, observed bool, now time.Time) {
	if previous, ok := w.reported[nodeID]; ok && previous.Equal(lastObserved) {
		return
	}

	msg := &types.SensorNotObserved{
		NodeID:    nodeID,
		Timestamp: now,
	}

	if observed {
		msg.LastObserved = &lastObserved
	}

	logger := logging.GetFromContext(ctx)
	logger.Info().Str("nodeid", nodeID).Time("last_observed", lastObserved).Msg("sensor not observed")

	if err := w.publisher.PublishOnTopic(ctx, msg); err != nil {
		logger.Error().Err(err).Str("nodeid", nodeID).Msg("could not publish sensor not observed")
		return
	}

	w.reported[nodeID] = lastObserved
}

func timeToNextCheck(lastObserved time.Time, interval time.Duration, now time.Time) time.Duration {
	next := lastObserved.Add(interval)
	n := time.Duration(math.Floor(next.Sub(now).Seconds())) * time.Second

	if n <= 0 {
		return interval
	}

	return n
}
