package watchdog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/events"
	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestThatSilentSensorsAreReportedOnce(t *testing.T) {
	is, w, sensors, publisher := testSetup(t, map[string]time.Time{
		"field-01": now.Add(-2 * time.Hour),
		"field-02": now.Add(-10 * time.Minute),
	})

	sleepFor := w.check(context.Background())
	is.Equal(50*time.Minute, sleepFor)

	is.Equal(2, len(publisher.PublishOnTopicCalls()))

	first := publisher.PublishOnTopicCalls()[0].Message.(*types.SensorNotObserved)
	is.Equal("field-01", first.NodeID)
	is.True(first.LastObserved.Equal(now.Add(-2 * time.Hour)))

	never := publisher.PublishOnTopicCalls()[1].Message.(*types.SensorNotObserved)
	is.Equal("field-04", never.NodeID)
	is.True(never.LastObserved == nil)

	w.check(context.Background())
	is.Equal(2, len(publisher.PublishOnTopicCalls()))
	is.True(len(sensors.GetSensorsCalls()) == 2)
}

func TestThatSensorIsReportedAgainAfterRecovering(t *testing.T) {
	readings := map[string]time.Time{
		"field-01": now.Add(-2 * time.Hour),
	}
	is, w, _, publisher := testSetup(t, readings)

	w.check(context.Background())
	is.Equal(3, len(publisher.PublishOnTopicCalls()))

	readings["field-01"] = now.Add(-time.Minute)
	w.check(context.Background())
	is.Equal(3, len(publisher.PublishOnTopicCalls()))

	w.now = func() time.Time { return now.Add(2 * time.Hour) }
	w.check(context.Background())
	is.Equal(4, len(publisher.PublishOnTopicCalls()))

	last := publisher.PublishOnTopicCalls()[3].Message.(*types.SensorNotObserved)
	is.Equal("field-01", last.NodeID)
}

func TestThatFailedPublishIsRetried(t *testing.T) {
	is, w, _, publisher := testSetup(t, map[string]time.Time{})
	publisher.PublishOnTopicFunc = func(ctx context.Context, message messaging.TopicMessage) error {
		return fmt.Errorf("broker unavailable")
	}

	w.check(context.Background())
	w.check(context.Background())

	is.Equal(6, len(publisher.PublishOnTopicCalls()))
}

func TestThatStopEndsTheWorker(t *testing.T) {
	is, w, _, _ := testSetup(t, map[string]time.Time{})

	w.Start(context.Background())
	w.Stop(context.Background())

	is.True(len(w.done) == 0)
}

func TestTimeToNextCheck(t *testing.T) {
	is := is.New(t)

	is.Equal(10*time.Second, timeToNextCheck(now, 10*time.Second, now))
	is.Equal(time.Hour, timeToNextCheck(now.Add(-2*time.Hour), time.Hour, now))
}

func testSetup(t *testing.T, readings map[string]time.Time) (*is.I, *watchdogImpl, *irrigation.IrrigationServiceMock, *events.PublisherMock) {
	is := is.New(t)

	sensors := &irrigation.IrrigationServiceMock{
		GetSensorsFunc: func(ctx context.Context) ([]types.Sensor, error) {
			return []types.Sensor{
				{NodeID: "field-01", Active: true, CreatedAt: now.Add(-24 * time.Hour)},
				{NodeID: "field-02", Active: true, CreatedAt: now.Add(-24 * time.Hour)},
				{NodeID: "field-03", Active: false, CreatedAt: now.Add(-24 * time.Hour)},
				{NodeID: "field-04", Active: true, CreatedAt: now.Add(-3 * time.Hour)},
			}, nil
		},
		GetLatestReadingFunc: func(ctx context.Context, nodeID string, withRecommendation bool) (types.LatestReading, error) {
			ts, ok := readings[nodeID]
			if !ok {
				return types.LatestReading{}, irrigation.ErrNoReadings
			}
			return types.LatestReading{Reading: types.Reading{NodeID: nodeID, Timestamp: ts}}, nil
		},
	}

	publisher := &events.PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	w := New(sensors, publisher, Config{Interval: time.Hour}).(*watchdogImpl)
	w.now = func() time.Time { return now }

	return is, w, sensors, publisher
}
