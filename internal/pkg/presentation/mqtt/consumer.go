package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	paho "github.com/eclipse/paho.mqtt.golang"
	"go.opentelemetry.io/otel"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

var tracer = otel.Tracer("thopasichai/mqtt")

const SensorTopic string = "irrigation/+/sensors"

type Subscriber interface {
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Unsubscribe(topics ...string) paho.Token
}

// Consume subscribes to sensor readings and blocks until ctx is done.
func Consume(ctx context.Context, client Subscriber, svc irrigation.IrrigationService) error {
	logger := logging.GetFromContext(ctx)

	token := client.Subscribe(SensorTopic, 1, NewReadingHandler(ctx, svc))
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SensorTopic, token.Error())
	}

	logger.Info().Str("topic", SensorTopic).Msg("subscribed to sensor readings")

	<-ctx.Done()

	client.Unsubscribe(SensorTopic).Wait()
	return nil
}

// NewReadingHandler ingests readings published by sensor nodes on irrigation/<nodeid>/sensors.
// A payload without nodeid is attributed to the node named in the topic.
func NewReadingHandler(ctx context.Context, svc irrigation.IrrigationService) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		var err error

		ctx, span := tracer.Start(ctx, "mqtt-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		reading := types.IncomingReading{}

		err = json.Unmarshal(msg.Payload(), &reading)
		if err != nil {
			logger.Error().Err(err).Msgf("failed to unmarshal message from %s", msg.Topic())
			return
		}

		if reading.NodeID == "" {
			reading.NodeID = nodeIDFromTopic(msg.Topic())
		}

		logger = logger.With().Str("nodeid", reading.NodeID).Logger()
		ctx = logging.NewContextWithLogger(ctx, logger)

		result, err := svc.IngestReading(ctx, reading)
		if err != nil {
			logger.Error().Err(err).Msg("could not ingest reading")
			return
		}

		if result.MotorControlError != "" {
			logger.Warn().Str("reading_id", result.ReadingID).Msg(result.MotorControlError)
		}

		logger.Debug().Msgf("%s handled", msg.Topic())
	}
}

func nodeIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) == 3 && parts[0] == "irrigation" && parts[2] == "sensors" {
		return parts[1]
	}
	return ""
}
