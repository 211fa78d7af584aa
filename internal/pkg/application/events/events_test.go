package events

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestConfig(t *testing.T) {
	is := setupTest(t)

	cfg, err := LoadConfiguration(strings.NewReader(configYaml))

	is.NoErr(err)
	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].ID, "motors")
	is.Equal(cfg.Notifications[0].Type, "irrigation.motorStateChanged")
	is.Equal(cfg.CircuitBreaker.ConsecutiveFailures, uint32(2))
	is.Equal(cfg.CircuitBreaker.OpenTimeout, 10*time.Second)
}

func TestThatMotorStateChangesAreSentToSubscribers(t *testing.T) {
	is := setupTest(t)

	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received <- r.Header.Get("Ce-Type") + " " + string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender, err := New(&Config{
		Notifications: []Notification{{
			Type:        "irrigation.motorStateChanged",
			Subscribers: []SubscriberConfig{{Endpoint: server.URL}},
		}},
	})
	is.NoErr(err)

	err = sender.PublishOnTopic(context.Background(), &types.MotorStateChanged{MotorID: 1, NodeID: "field-01", State: types.MotorOn})
	is.NoErr(err)

	msg := <-received
	is.True(strings.HasPrefix(msg, "irrigation.motorStateChanged "))
	is.True(strings.Contains(msg, `"nodeid":"field-01"`))
}

func TestThatSubscribersOnlyReceiveMatchingNodes(t *testing.T) {
	is := setupTest(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender, err := New(&Config{
		Notifications: []Notification{{
			Type: "irrigation.motorStateChanged",
			Subscribers: []SubscriberConfig{{
				Endpoint:    server.URL,
				Information: []RegistrationInfo{{Entities: []EntityInfo{{IDPattern: "^field-.+"}}}},
			}},
		}},
	})
	is.NoErr(err)

	is.NoErr(sender.PublishOnTopic(context.Background(), &types.MotorStateChanged{NodeID: "greenhouse-01"}))
	is.Equal(atomic.LoadInt32(&calls), int32(0))

	is.NoErr(sender.PublishOnTopic(context.Background(), &types.MotorStateChanged{NodeID: "field-02"}))
	is.Equal(atomic.LoadInt32(&calls), int32(1))
}

func TestThatUnreachableSubscriberOpensCircuit(t *testing.T) {
	is := setupTest(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	sender, err := New(&Config{
		Notifications: []Notification{{
			Type:        "irrigation.modeChanged",
			Subscribers: []SubscriberConfig{{Endpoint: endpoint}},
		}},
		CircuitBreaker: CircuitBreakerConfig{ConsecutiveFailures: 1, OpenTimeout: time.Minute},
	})
	is.NoErr(err)

	err = sender.PublishOnTopic(context.Background(), &types.ModeChanged{Mode: types.ModeManual})
	is.True(err != nil)
	is.True(!errors.Is(err, ErrCircuitOpen))

	err = sender.PublishOnTopic(context.Background(), &types.ModeChanged{Mode: types.ModeManual})
	is.True(errors.Is(err, ErrCircuitOpen))
}

func TestThatUnsubscribedTopicsAreIgnored(t *testing.T) {
	is := setupTest(t)

	sender, err := New(nil)
	is.NoErr(err)

	is.NoErr(sender.PublishOnTopic(context.Background(), &types.ReadingReceived{NodeID: "n"}))
}

func TestThatFanOutDeliversToAllPublishers(t *testing.T) {
	is := setupTest(t)

	failing := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return errors.New("broker down")
		},
	}
	working := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	p := NewFanOut(failing, nil, working)

	err := p.PublishOnTopic(context.Background(), &types.ThresholdUpdated{NodeID: "n", Threshold: 40})
	is.True(err != nil)
	is.Equal(len(failing.PublishOnTopicCalls()), 1)
	is.Equal(len(working.PublishOnTopicCalls()), 1)
}

func setupTest(t *testing.T) *is.I {
	is := is.New(t)

	return is
}

const configYaml string = `
notifications:
  - id: motors
    name: Motor state changes
    type: irrigation.motorStateChanged
    subscribers:
    - endpoint: http://irrigation-dashboard:8990
      information:
      - entities:
        - idPattern: ^field-.+
circuitBreaker:
  consecutiveFailures: 2
  openTimeout: 10s
`
