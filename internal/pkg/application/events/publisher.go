package events

import (
	"context"
	"errors"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

//go:generate moq -rm -out publisher_mock.go . Publisher

// Publisher is anything that can forward a domain event. The RabbitMQ message context
// satisfies it, as do the MQTT commander, the archive and the cloud event sender.
type Publisher interface {
	PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error
}

type fanOut struct {
	publishers []Publisher
}

// NewFanOut returns a Publisher that forwards every message to all non nil publishers.
// A failing publisher does not stop delivery to the others.
func NewFanOut(publishers ...Publisher) Publisher {
	f := &fanOut{}

	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}

	return f
}

func (f *fanOut) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	var errs []error

	for _, p := range f.publishers {
		if err := p.PublishOnTopic(ctx, message); err != nil {
			logger := logging.GetFromContext(ctx)
			logger.Warn().Err(err).Str("topic", message.TopicName()).Msg("failed to publish message")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
