package irrigation

import (
	"context"
	"encoding/json"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const ReadingRoutingKey string = "soilmoisture.reading"

func (s *service) RegisterTopicMessageHandler(ctx context.Context, messenger messaging.MsgContext) {
	messenger.RegisterTopicMessageHandler(ReadingRoutingKey, NewReadingReceivedHandler(s))
}

// NewReadingReceivedHandler ingests soil moisture readings published on the message bus.
// Invalid readings are logged and dropped.
func NewReadingReceivedHandler(svc IrrigationService) messaging.TopicMessageHandler {
	return func(ctx context.Context, msg amqp.Delivery, logger zerolog.Logger) {
		reading := types.IncomingReading{}

		err := json.Unmarshal(msg.Body, &reading)
		if err != nil {
			logger.Error().Err(err).Msgf("failed to unmarshal message from %s", msg.RoutingKey)
			return
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

		logger.Debug().Msgf("%s handled", msg.RoutingKey)
	}
}
