package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const CommandTopicFormat string = "irrigation/%s/commands"

// TokenPublisher is the part of a paho client used by the Commander.
type TokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

type Command struct {
	MotorID   uint             `json:"motor_id"`
	State     types.MotorState `json:"state"`
	Mode      types.Mode       `json:"mode"`
	Reason    string           `json:"reason,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Commander forwards motor state changes to the actuator of the node as a retained
// message, so that a reconnecting actuator always receives the latest state.
type Commander struct {
	client  TokenPublisher
	timeout time.Duration
}

func NewCommander(client TokenPublisher) *Commander {
	return &Commander{
		client:  client,
		timeout: 5 * time.Second,
	}
}

func (c *Commander) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	changed, ok := message.(*types.MotorStateChanged)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(Command{
		MotorID:   changed.MotorID,
		State:     changed.State,
		Mode:      changed.Mode,
		Reason:    changed.Reason,
		Timestamp: changed.Timestamp,
	})
	if err != nil {
		return err
	}

	topic := fmt.Sprintf(CommandTopicFormat, changed.NodeID)

	token := c.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(c.timeout) {
		return fmt.Errorf("timed out publishing motor command to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish motor command to %s: %w", topic, err)
	}

	logger := logging.GetFromContext(ctx)
	logger.Debug().Str("topic", topic).Str("state", string(changed.State)).Msg("motor command published")

	return nil
}
