package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

const eventSource string = "github.com/utsabfdahal/ProjectThopaSichai"

var ErrCircuitOpen = errors.New("subscriber circuit is open")

type subscriber struct {
	endpoint string
	patterns []*regexp.Regexp
	breaker  *gobreaker.CircuitBreaker
}

// matches reports whether the subscriber wants events about the given node. A subscriber
// without id patterns receives everything.
func (s subscriber) matches(nodeID string) bool {
	if len(s.patterns) == 0 || nodeID == "" {
		return true
	}
	for _, p := range s.patterns {
		if p.MatchString(nodeID) {
			return true
		}
	}
	return false
}

type eventSender struct {
	client      cloudevents.Client
	subscribers map[string][]subscriber
}

// New creates a Publisher that delivers messages as cloud events to the subscribers
// registered for the message topic.
func New(cfg *Config) (Publisher, error) {
	e := &eventSender{
		subscribers: make(map[string][]subscriber),
	}

	if cfg == nil || len(cfg.Notifications) == 0 {
		return e, nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, err
	}
	e.client = c

	for _, n := range cfg.Notifications {
		for _, s := range n.Subscribers {
			sub := subscriber{
				endpoint: s.Endpoint,
				breaker:  newBreaker(n.Type+"@"+s.Endpoint, cfg.CircuitBreaker),
			}

			for _, info := range s.Information {
				for _, entity := range info.Entities {
					if entity.IDPattern == "" {
						continue
					}
					p, err := regexp.Compile(entity.IDPattern)
					if err != nil {
						return nil, fmt.Errorf("invalid id pattern %q for %s: %w", entity.IDPattern, s.Endpoint, err)
					}
					sub.patterns = append(sub.patterns, p)
				}
			}

			e.subscribers[n.Type] = append(e.subscribers[n.Type], sub)
		}
	}

	return e, nil
}

func newBreaker(name string, cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 3
	}

	openFor := cfg.OpenTimeout
	if openFor == 0 {
		openFor = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
	})
}

func (e *eventSender) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	subscribers, ok := e.subscribers[message.TopicName()]
	if !ok || len(subscribers) == 0 {
		return nil
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	nodeID := struct {
		NodeID string `json:"nodeid"`
	}{}
	_ = json.Unmarshal(body, &nodeID)

	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetTime(time.Now().UTC())
	event.SetSource(eventSource)
	event.SetType(message.TopicName())
	if nodeID.NodeID != "" {
		event.SetSubject(nodeID.NodeID)
	}

	err = event.SetData(message.ContentType(), body)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	var errs []error

	for _, s := range subscribers {
		if !s.matches(nodeID.NodeID) {
			continue
		}

		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.endpoint)

		_, cbErr := s.breaker.Execute(func() (any, error) {
			result := e.client.Send(ctxWithTarget, event)
			if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
				return nil, result
			}
			return nil, nil
		})

		if cbErr != nil {
			if errors.Is(cbErr, gobreaker.ErrOpenState) || errors.Is(cbErr, gobreaker.ErrTooManyRequests) {
				cbErr = fmt.Errorf("%w: %s", ErrCircuitOpen, s.endpoint)
			}
			logger.Error().Err(cbErr).Msgf("failed to send event to %s", s.endpoint)
			errs = append(errs, cbErr)
		}
	}

	return errors.Join(errs...)
}

type EntityInfo struct {
	IDPattern string `yaml:"idPattern"`
}

type RegistrationInfo struct {
	Entities []EntityInfo `yaml:"entities"`
}

type SubscriberConfig struct {
	Endpoint    string             `yaml:"endpoint"`
	Information []RegistrationInfo `yaml:"information"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `yaml:"consecutiveFailures"`
	OpenTimeout         time.Duration `yaml:"openTimeout"`
	Interval            time.Duration `yaml:"interval"`
}

type Config struct {
	Notifications  []Notification       `yaml:"notifications"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err == nil {
		return &cfg, nil
	} else {
		return nil, err
	}
}
