package webevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/rs/zerolog"
)

// WebEvents streams domain events to browsers as server sent events, using the topic
// name as event type.
type WebEvents interface {
	http.Handler
	PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error
	Shutdown()
}

type webEvents struct {
	s *gosse.Server
}

func New(logger zerolog.Logger) WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{
			Logger: log.New(logger.With().Str("component", "sse").Logger(), "", 0),
			Headers: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
		}),
	}
}

func (we *webEvents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	we.s.ServeHTTP(w, r)
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

// PublishOnTopic broadcasts the message to every connected client.
func (we *webEvents) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	b, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", message.TopicName(), err)
	}

	we.s.SendMessage("", gosse.NewMessage("", string(b), message.TopicName()))

	return nil
}
