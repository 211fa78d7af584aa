package mqtt

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

type Config struct {
	Broker     string
	Username   string
	Password   string
	ClientID   string
	MaxRetries int
	MaxElapsed time.Duration
}

// LoadConfigFromEnv returns nil when no broker is configured.
func LoadConfigFromEnv(serviceName string) *Config {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		return nil
	}

	cfg := &Config{
		Broker:     broker,
		Username:   os.Getenv("MQTT_USER"),
		Password:   os.Getenv("MQTT_PASSWORD"),
		ClientID:   os.Getenv("MQTT_CLIENT_ID"),
		MaxRetries: 5,
		MaxElapsed: 30 * time.Second,
	}

	if cfg.ClientID == "" {
		hostname, _ := os.Hostname()
		cfg.ClientID = fmt.Sprintf("%s-%s", serviceName, hostname)
	}

	if retries, err := strconv.Atoi(os.Getenv("MQTT_MAX_RETRIES")); err == nil && retries > 0 {
		cfg.MaxRetries = retries
	}

	return cfg
}

// Connect connects to the broker, retrying with exponential backoff. The connection is
// closed when ctx is done.
func Connect(ctx context.Context, cfg Config) (paho.Client, error) {
	logger := logging.GetFromContext(ctx).With().Str("broker", cfg.Broker).Logger()

	opts := newClientOptions(cfg, logger)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.MaxElapsed

	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var client paho.Client

	err := backoff.Retry(func() error {
		client = paho.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			logger.Warn().Err(token.Error()).Msg("failed to connect to mqtt broker")
			return token.Error()
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries-1)), ctx))

	if err != nil {
		return nil, fmt.Errorf("could not connect to mqtt broker %s: %w", cfg.Broker, err)
	}

	logger.Info().Msg("connected to mqtt broker")

	go func() {
		<-ctx.Done()
		client.Disconnect(250)
		logger.Info().Msg("mqtt connection closed")
	}()

	return client, nil
}

// newClientOptions disables ordered delivery so that every message handler runs in its own
// goroutine. Handlers store readings and publish motor commands on the same client, which
// must not happen on paho's router goroutine.
func newClientOptions(cfg Config, logger zerolog.Logger) *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetOrderMatters(false)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn().Err(err).Msg("mqtt connection lost")
	})

	return opts
}
