package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/matryer/is"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func TestThatMotorStateChangesArePublishedAsRetainedCommands(t *testing.T) {
	is := is.New(t)
	pub := &fakePublisher{}

	c := NewCommander(pub)
	err := c.PublishOnTopic(context.Background(), &types.MotorStateChanged{
		MotorID:   7,
		NodeID:    "field-01",
		State:     types.MotorOn,
		Mode:      types.ModeAutomatic,
		Reason:    "Moisture level 65% exceeds threshold 50%",
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	is.NoErr(err)

	is.Equal(1, len(pub.published))
	is.Equal("irrigation/field-01/commands", pub.published[0].topic)
	is.True(pub.published[0].retained)
	is.Equal(byte(1), pub.published[0].qos)

	cmd := Command{}
	is.NoErr(json.Unmarshal(pub.published[0].payload, &cmd))
	is.Equal(uint(7), cmd.MotorID)
	is.Equal(types.MotorOn, cmd.State)
}

func TestThatOtherTopicsAreIgnored(t *testing.T) {
	is := is.New(t)
	pub := &fakePublisher{}

	c := NewCommander(pub)
	err := c.PublishOnTopic(context.Background(), &types.ReadingReceived{NodeID: "field-01", Value: 10})
	is.NoErr(err)
	is.Equal(0, len(pub.published))
}

func TestThatPublishErrorsAreReturned(t *testing.T) {
	is := is.New(t)
	pub := &fakePublisher{err: errors.New("not connected")}

	c := NewCommander(pub)
	err := c.PublishOnTopic(context.Background(), &types.MotorStateChanged{NodeID: "field-01", State: types.MotorOff})
	is.True(err != nil)
}

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakePublisher struct {
	published []published
	err       error
}

func (f *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	f.published = append(f.published, published{topic, qos, retained, payload.([]byte)})
	return &fakeToken{err: f.err}
}

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }
