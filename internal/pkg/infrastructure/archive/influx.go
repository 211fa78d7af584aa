package archive

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const (
	MoistureMeasurement string = "soil_moisture"
	MotorMeasurement    string = "motor_state"
)

type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// LoadConfigFromEnv returns nil unless INFLUX_URL is set.
func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{
		URL:    os.Getenv("INFLUX_URL"),
		Token:  os.Getenv("INFLUX_TOKEN"),
		Org:    os.Getenv("INFLUX_ORG"),
		Bucket: os.Getenv("INFLUX_BUCKET"),
	}

	if cfg.URL == "" {
		return nil, nil
	}

	if cfg.Token == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influx config incomplete, INFLUX_TOKEN, INFLUX_ORG and INFLUX_BUCKET are required")
	}

	return cfg, nil
}

// Archive writes readings and motor state changes as time series points.
type Archive struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func New(cfg Config) *Archive {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	return &Archive{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}
}

func (a *Archive) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	var point *write.Point

	switch m := message.(type) {
	case *types.ReadingReceived:
		point = influxdb2.NewPoint(MoistureMeasurement,
			map[string]string{"nodeid": m.NodeID, "status": string(types.MoistureStatusOf(m.Value))},
			map[string]interface{}{"value": m.Value},
			timestampOrNow(m.Timestamp),
		)
	case *types.MotorStateChanged:
		on := 0
		if m.State.IsOn() {
			on = 1
		}
		point = influxdb2.NewPoint(MotorMeasurement,
			map[string]string{"nodeid": m.NodeID, "mode": string(m.Mode)},
			map[string]interface{}{"on": on, "motor_id": int64(m.MotorID)},
			timestampOrNow(m.Timestamp),
		)
	default:
		return nil
	}

	if err := a.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("failed to archive %s: %w", message.TopicName(), err)
	}

	logger := logging.GetFromContext(ctx)
	logger.Debug().Str("topic", message.TopicName()).Msg("archived")

	return nil
}

func (a *Archive) Close() {
	a.client.Close()
}

func timestampOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
