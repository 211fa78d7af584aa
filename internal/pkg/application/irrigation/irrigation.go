package irrigation

import (
	"context"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/otel"

	"github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/application/events"
	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

var tracer = otel.Tracer("thopasichai/irrigation")

//go:generate moq -rm -out irrigation_mock.go . IrrigationService

type IrrigationService interface {
	IngestReading(ctx context.Context, reading types.IncomingReading) (types.IngestResult, error)

	GetLatestReading(ctx context.Context, nodeID string, withRecommendation bool) (types.LatestReading, error)
	QueryReadings(ctx context.Context, query ReadingsQuery) (types.Page[types.Reading], error)

	GetMotors(ctx context.Context) ([]types.Motor, error)
	GetMotor(ctx context.Context, id uint) (types.Motor, error)
	GetMotorStatesByNode(ctx context.Context) (map[string]types.MotorState, error)
	CreateMotor(ctx context.Context, nodeID, name string) (types.Motor, error)
	UpdateMotor(ctx context.Context, id uint, name, state *string) (types.Motor, error)
	DeleteMotor(ctx context.Context, id uint) error
	SetMotorState(ctx context.Context, id uint, state string) (types.Motor, error)
	BulkSetMotorState(ctx context.Context, commands []types.MotorCommand) (types.BulkControlResult, error)

	GetMode(ctx context.Context) (types.SystemMode, error)
	SetMode(ctx context.Context, mode string) (types.SystemMode, error)
	DeleteMode(ctx context.Context) error

	GetThreshold(ctx context.Context, nodeID string) (types.Threshold, error)
	GetThresholds(ctx context.Context) ([]types.Threshold, error)
	SetThreshold(ctx context.Context, nodeID string, value *float64) (types.Threshold, error)

	CreateSensor(ctx context.Context, nodeID, name string) (types.Sensor, error)
	GetSensor(ctx context.Context, nodeID string) (types.Sensor, error)
	GetSensors(ctx context.Context) ([]types.Sensor, error)
	DeleteSensor(ctx context.Context, nodeID string) error

	DashboardStats(ctx context.Context) (types.DashboardStats, error)
	HealthCheck(ctx context.Context) (types.Health, error)
	SystemStatus(ctx context.Context) (types.SystemStatus, error)

	RegisterTopicMessageHandler(ctx context.Context, messenger messaging.MsgContext)
}

type Config struct {
	// Location is used for timestamps reported without a timezone. Defaults to UTC.
	Location *time.Location
}

type service struct {
	repo      r.IrrigationRepository
	publisher events.Publisher
	location  *time.Location
	now       func() time.Time
}

func New(repo r.IrrigationRepository, publisher events.Publisher, cfg Config) IrrigationService {
	s := &service{
		repo:      repo,
		publisher: publisher,
		location:  cfg.Location,
		now:       time.Now,
	}

	if s.location == nil {
		s.location = time.UTC
	}

	return s
}

// publish forwards a domain event. Delivery failures are logged and never
// propagated to the caller.
func (s *service) publish(ctx context.Context, message messaging.TopicMessage) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishOnTopic(ctx, message); err != nil {
		logger := logging.GetFromContext(ctx)
		logger.Warn().Err(err).Str("topic", message.TopicName()).Msg("could not publish event")
	}
}
