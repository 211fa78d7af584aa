package irrigation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"

	r "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database/irrigation"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

const (
	DefaultPageSize int = 100
	MaxPageSize     int = 1000
)

type ReadingsQuery struct {
	NodeID   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

func (q ReadingsQuery) normalized() ReadingsQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

func (s *service) QueryReadings(ctx context.Context, query ReadingsQuery) (types.Page[types.Reading], error) {
	var err error

	ctx, span := tracer.Start(ctx, "query-readings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query = query.normalized()

	conditions := []r.ConditionFunc{
		r.WithOffsetLimit((query.Page-1)*query.PageSize, query.PageSize),
	}

	if query.NodeID != "" {
		conditions = append(conditions, r.WithNodeID(query.NodeID))
	}
	if query.From != nil {
		conditions = append(conditions, r.WithTimestampFrom(*query.From))
	}
	if query.To != nil {
		conditions = append(conditions, r.WithTimestampTo(*query.To))
	}

	readings, total, err := s.repo.QueryReadings(ctx, conditions...)
	if err != nil {
		return types.Page[types.Reading]{}, err
	}

	return types.Page[types.Reading]{
		Count:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(query.PageSize))),
		Results:    toReadings(readings, s.now()),
	}, nil
}

// GetLatestReading returns the most recently received reading, of any node when nodeID is
// empty. The recommendation uses the same strict threshold rule as the automatic control.
func (s *service) GetLatestReading(ctx context.Context, nodeID string, withRecommendation bool) (types.LatestReading, error) {
	reading, err := s.repo.GetLatestReading(ctx, nodeID)
	if err != nil {
		return types.LatestReading{}, err
	}

	latest := types.LatestReading{
		Reading: toReading(reading, s.now()),
	}

	if withRecommendation {
		cfg, err := s.repo.GetOrCreateThreshold(ctx, reading.NodeID, DefaultThreshold)
		if err != nil {
			return types.LatestReading{}, err
		}
		threshold := cfg.Threshold

		decision := Decide(reading.Value, threshold)
		latest.Recommendation = &types.Recommendation{
			DesiredState: decision.State,
			Threshold:    threshold,
			Reason:       decision.Reason,
		}
	}

	return latest, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *service) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	var err error

	ctx, span := tracer.Start(ctx, "dashboard-stats")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	stats, err := s.repo.GetReadingStatistics(ctx, s.now().UTC())
	if err != nil {
		return types.DashboardStats{}, err
	}

	counts, err := s.repo.CountMotorsByState(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}

	mode, err := s.repo.GetMode(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}

	return types.DashboardStats{
		TotalReadings:   stats.Total,
		AvgMoisture24h:  round2(stats.Average24h),
		AvgMoisture7d:   round2(stats.Average7d),
		MotorsOnCount:   counts[types.MotorOn],
		MotorsOffCount:  counts[types.MotorOff],
		SystemMode:      mode.Mode,
		LastReadingTime: stats.LastReadingTime,
		UniqueNodes:     stats.UniqueNodes,
	}, nil
}

func timeSince(d time.Duration) string {
	seconds := int64(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}

	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	default:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	}
}

// HealthCheck never returns an error for an unreachable store, the failure is reported
// in the returned status instead.
func (s *service) HealthCheck(ctx context.Context) (types.Health, error) {
	now := s.now().UTC()

	health := types.Health{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: now,
	}

	if err := s.repo.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Database = "disconnected"
		health.Error = err.Error()
		return health, nil
	}

	reading, err := s.repo.GetLatestReading(ctx, "")
	if err == nil {
		last := reading.CreatedAt.UTC()
		since := timeSince(now.Sub(last))
		health.LastSensorUpdate = &last
		health.TimeSinceLastUpdate = &since
	} else if !IsNotFound(err) {
		health.Status = "unhealthy"
		health.Error = err.Error()
		return health, nil
	}

	motors, err := s.repo.GetMotors(ctx)
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		return health, nil
	}

	health.MotorsCount = int64(len(motors))

	return health, nil
}

func (s *service) SystemStatus(ctx context.Context) (types.SystemStatus, error) {
	var err error

	ctx, span := tracer.Start(ctx, "system-status")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	now := s.now()
	status := types.SystemStatus{
		Timestamp: now.UTC(),
	}

	reading, err := s.repo.GetLatestReading(ctx, "")
	if err == nil {
		latest := toReading(reading, now)
		status.LatestMoisture = &latest
	} else if !IsNotFound(err) {
		return types.SystemStatus{}, err
	}

	motors, err := s.repo.GetMotors(ctx)
	if err != nil {
		return types.SystemStatus{}, err
	}
	status.Motors = toMotors(motors)

	mode, err := s.repo.GetMode(ctx)
	if err != nil {
		return types.SystemStatus{}, err
	}
	status.SystemMode = toSystemMode(mode)

	thresholds, err := s.GetThresholds(ctx)
	if err != nil {
		return types.SystemStatus{}, err
	}
	status.Thresholds = thresholds

	return status, nil
}
