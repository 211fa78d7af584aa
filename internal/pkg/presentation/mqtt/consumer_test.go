package mqtt

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/irrigation"
	infra "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/mqtt"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestThatReadingsAreIngested(t *testing.T) {
	is, svc := testSetup(t)

	handler := NewReadingHandler(context.Background(), svc)
	handler(nil, &message{topic: "irrigation/field-01/sensors", payload: `{"nodeid":"node-7","value":42}`})

	is.Equal(1, len(svc.IngestReadingCalls()))
	is.Equal("node-7", svc.IngestReadingCalls()[0].Reading.NodeID)
	is.Equal(42.0, *svc.IngestReadingCalls()[0].Reading.Value)
}

func TestThatNodeIDIsTakenFromTopicWhenMissing(t *testing.T) {
	is, svc := testSetup(t)

	handler := NewReadingHandler(context.Background(), svc)
	handler(nil, &message{topic: "irrigation/field-01/sensors", payload: `{"value":12.5}`})

	is.Equal(1, len(svc.IngestReadingCalls()))
	is.Equal("field-01", svc.IngestReadingCalls()[0].Reading.NodeID)
}

func TestThatInvalidPayloadsAreDropped(t *testing.T) {
	is, svc := testSetup(t)

	handler := NewReadingHandler(context.Background(), svc)
	handler(nil, &message{topic: "irrigation/field-01/sensors", payload: `{"value":`})

	is.Equal(0, len(svc.IngestReadingCalls()))
}

func TestThatHandlerCanPublishMotorCommands(t *testing.T) {
	is := is.New(t)

	client := &asyncPublisher{}
	commander := infra.NewCommander(client)

	svc := &irrigation.IrrigationServiceMock{
		IngestReadingFunc: func(ctx context.Context, reading types.IncomingReading) (types.IngestResult, error) {
			err := commander.PublishOnTopic(ctx, &types.MotorStateChanged{NodeID: reading.NodeID, State: types.MotorOn})
			return types.IngestResult{Status: "ok", NodeID: reading.NodeID}, err
		},
	}

	handler := NewReadingHandler(context.Background(), svc)

	done := make(chan struct{})
	go func() {
		handler(nil, &message{topic: "irrigation/field-01/sensors", payload: `{"value":80}`})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return")
	}

	is.Equal(1, len(svc.IngestReadingCalls()))
	is.Equal([]string{"irrigation/field-01/commands"}, client.topics())
}

func TestNodeIDFromTopic(t *testing.T) {
	is := is.New(t)

	is.Equal("field-01", nodeIDFromTopic("irrigation/field-01/sensors"))
	is.Equal("", nodeIDFromTopic("irrigation/field-01/commands"))
	is.Equal("", nodeIDFromTopic("sensors"))
}

func testSetup(t *testing.T) (*is.I, *irrigation.IrrigationServiceMock) {
	is := is.New(t)

	svc := &irrigation.IrrigationServiceMock{
		IngestReadingFunc: func(ctx context.Context, reading types.IncomingReading) (types.IngestResult, error) {
			if reading.NodeID == "" {
				return types.IngestResult{}, fmt.Errorf("nodeid is required")
			}
			return types.IngestResult{Status: "ok", NodeID: reading.NodeID}, nil
		},
	}

	return is, svc
}

// asyncPublisher completes publish tokens from another goroutine, like a connected client does.
type asyncPublisher struct {
	mu        sync.Mutex
	published []string
}

func (p *asyncPublisher) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	p.mu.Lock()
	p.published = append(p.published, topic)
	p.mu.Unlock()

	token := &asyncToken{done: make(chan struct{})}
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(token.done)
	}()

	return token
}

func (p *asyncPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.published...)
}

type asyncToken struct {
	done chan struct{}
}

func (t *asyncToken) Wait() bool {
	<-t.done
	return true
}

func (t *asyncToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

func (t *asyncToken) Done() <-chan struct{} { return t.done }
func (t *asyncToken) Error() error          { return nil }

type message struct {
	topic   string
	payload string
}

func (m *message) Duplicate() bool   { return false }
func (m *message) Qos() byte         { return 1 }
func (m *message) Retained() bool    { return false }
func (m *message) Topic() string     { return m.topic }
func (m *message) MessageID() uint16 { return 1 }
func (m *message) Payload() []byte   { return []byte(m.payload) }
func (m *message) Ack()              {}
