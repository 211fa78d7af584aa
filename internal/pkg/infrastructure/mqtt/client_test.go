package mqtt

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestThatMessageHandlersDoNotRunOnTheRouter(t *testing.T) {
	is := is.New(t)

	opts := newClientOptions(Config{Broker: "tcp://broker:1883", ClientID: "thopasichai-test"}, zerolog.Nop())

	is.True(!opts.Order)
	is.True(opts.AutoReconnect)
	is.Equal(1, len(opts.Servers))
	is.Equal("broker:1883", opts.Servers[0].Host)
	is.Equal("thopasichai-test", opts.ClientID)
}

func TestLoadConfigFromEnv(t *testing.T) {
	is := is.New(t)

	t.Setenv("MQTT_BROKER", "")
	is.True(LoadConfigFromEnv("thopasichai") == nil)

	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("MQTT_CLIENT_ID", "")
	t.Setenv("MQTT_MAX_RETRIES", "7")

	cfg := LoadConfigFromEnv("thopasichai")
	is.True(cfg != nil)
	is.Equal(7, cfg.MaxRetries)
	is.True(cfg.ClientID != "")
}
