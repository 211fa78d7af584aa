package irrigation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	. "github.com/utsabfdahal/ProjectThopaSichai/internal/pkg/infrastructure/repositories/database"
	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

func NewIrrigationRepository(connect ConnectorFunc) (IrrigationRepository, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Sensor{}, &Motor{}, &ThresholdConfig{}, &Reading{}, &SystemMode{})
	if err != nil {
		return nil, err
	}

	return &irrigationRepository{
		db: impl,
	}, nil
}

//go:generate moq -rm -out repository_mock.go . IrrigationRepository

type IrrigationRepository interface {
	GetOrCreateSensor(ctx context.Context, nodeID, name string) (Sensor, bool, error)
	CreateSensor(ctx context.Context, nodeID, name string) (Sensor, error)
	GetSensor(ctx context.Context, nodeID string) (Sensor, error)
	GetSensors(ctx context.Context) ([]Sensor, error)
	DeleteSensor(ctx context.Context, nodeID string) error

	AddReading(ctx context.Context, reading Reading, sensorName string) (Reading, bool, error)
	GetLatestReading(ctx context.Context, nodeID string) (Reading, error)
	QueryReadings(ctx context.Context, conditions ...ConditionFunc) ([]Reading, int64, error)
	GetReadingStatistics(ctx context.Context, now time.Time) (ReadingStatistics, error)

	GetMotors(ctx context.Context) ([]Motor, error)
	GetMotor(ctx context.Context, id uint) (Motor, error)
	GetMotorByNodeID(ctx context.Context, nodeID string) (Motor, error)
	CreateMotor(ctx context.Context, nodeID, name string) (Motor, error)
	UpdateMotor(ctx context.Context, id uint, name *string, state *types.MotorState) (types.MotorState, Motor, error)
	SetMotorState(ctx context.Context, id uint, state types.MotorState) (types.MotorState, Motor, error)
	ApplyMotorDecision(ctx context.Context, nodeID string, state types.MotorState, decidedAt time.Time) (MotorDecision, error)
	DeleteMotor(ctx context.Context, id uint) error
	CountMotorsByState(ctx context.Context) (map[types.MotorState]int64, error)

	GetOrCreateThreshold(ctx context.Context, nodeID string, defaultValue float64) (ThresholdConfig, error)
	GetThresholds(ctx context.Context) ([]ThresholdConfig, error)
	SetThreshold(ctx context.Context, nodeID, sensorName string, value float64) (ThresholdConfig, bool, error)

	GetMode(ctx context.Context) (SystemMode, error)
	SetMode(ctx context.Context, mode types.Mode) (types.Mode, SystemMode, error)
	DeleteMode(ctx context.Context) error

	Ping(ctx context.Context) error
	Seed(ctx context.Context, reader io.Reader) error
}

var ErrSensorNotFound = fmt.Errorf("sensor not found")
var ErrSensorAlreadyExists = fmt.Errorf("sensor already exists")
var ErrMotorNotFound = fmt.Errorf("motor not found")
var ErrMotorAlreadyExists = fmt.Errorf("a motor is already configured for this sensor")
var ErrReadingNotFound = fmt.Errorf("no readings found")
var ErrModeNotAutomatic = fmt.Errorf("system is not in automatic mode")
var ErrRepositoryError = fmt.Errorf("could not fetch data from repository")

const DefaultThreshold float64 = 50.0

type ReadingStatistics struct {
	Total           int64
	Average24h      float64
	Average7d       float64
	UniqueNodes     int64
	LastReadingTime *time.Time
}

// MotorDecision is the outcome of applying an automatic control decision. Applied is false
// when a decision based on a newer reading has already been applied to the motor.
type MotorDecision struct {
	Motor    Motor
	Previous types.MotorState
	Applied  bool
}

type irrigationRepository struct {
	db *gorm.DB
}

func repositoryError(ctx context.Context, err error) error {
	logger := logging.GetFromContext(ctx)
	logger.Error().Err(err).Msg("gorm error")
	return fmt.Errorf("%w: %s", ErrRepositoryError, err.Error())
}

func getOrCreateSensor(tx *gorm.DB, nodeID, name string) (Sensor, bool, error) {
	sensor := Sensor{
		NodeID: nodeID,
		Name:   name,
		Active: true,
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sensor)
	if result.Error != nil {
		return Sensor{}, false, result.Error
	}

	created := result.RowsAffected == 1

	stored := Sensor{}
	err := tx.Where("node_id = ?", nodeID).First(&stored).Error
	if err != nil {
		return Sensor{}, false, err
	}

	return stored, created, nil
}

func (d *irrigationRepository) GetOrCreateSensor(ctx context.Context, nodeID, name string) (Sensor, bool, error) {
	var sensor Sensor
	var created bool

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sensor, created, err = getOrCreateSensor(tx, nodeID, name)
		return err
	})
	if err != nil {
		return Sensor{}, false, repositoryError(ctx, err)
	}

	return sensor, created, nil
}

func (d *irrigationRepository) CreateSensor(ctx context.Context, nodeID, name string) (Sensor, error) {
	sensor, created, err := d.GetOrCreateSensor(ctx, nodeID, name)
	if err != nil {
		return Sensor{}, err
	}

	if !created {
		return Sensor{}, ErrSensorAlreadyExists
	}

	return sensor, nil
}

func (d *irrigationRepository) GetSensor(ctx context.Context, nodeID string) (Sensor, error) {
	sensor := Sensor{}

	err := d.db.WithContext(ctx).Where("node_id = ?", nodeID).First(&sensor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Sensor{}, ErrSensorNotFound
		}
		return Sensor{}, repositoryError(ctx, err)
	}

	return sensor, nil
}

func (d *irrigationRepository) GetSensors(ctx context.Context) ([]Sensor, error) {
	sensors := []Sensor{}

	err := d.db.WithContext(ctx).Order("node_id").Find(&sensors).Error
	if err != nil {
		return nil, repositoryError(ctx, err)
	}

	return sensors, nil
}

// DeleteSensor removes a sensor together with its motor, threshold configuration and readings.
func (d *irrigationRepository) DeleteSensor(ctx context.Context, nodeID string) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("node_id = ?", nodeID).Limit(1).Find(&Sensor{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSensorNotFound
		}

		for _, dependent := range []any{&Reading{}, &ThresholdConfig{}, &Motor{}, &Sensor{}} {
			if err := tx.Where("node_id = ?", nodeID).Delete(dependent).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSensorNotFound) {
			return err
		}
		return repositoryError(ctx, err)
	}

	return nil
}

// AddReading stores the reading and, within the same transaction, creates the owning
// sensor if it does not exist yet. The returned bool reports whether the sensor was created.
func (d *irrigationRepository) AddReading(ctx context.Context, reading Reading, sensorName string) (Reading, bool, error) {
	var created bool

	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	reading.Timestamp = reading.Timestamp.UTC()

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		_, created, err = getOrCreateSensor(tx, reading.NodeID, sensorName)
		if err != nil {
			return err
		}

		return tx.Create(&reading).Error
	})
	if err != nil {
		return Reading{}, false, repositoryError(ctx, err)
	}

	return reading, created, nil
}

func (d *irrigationRepository) GetLatestReading(ctx context.Context, nodeID string) (Reading, error) {
	reading := Reading{}

	query := d.db.WithContext(ctx)
	if nodeID != "" {
		query = query.Where("node_id = ?", nodeID)
	}

	err := query.Order("created_at DESC").First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Reading{}, ErrReadingNotFound
		}
		return Reading{}, repositoryError(ctx, err)
	}

	return reading, nil
}

// QueryReadings returns a page of readings, newest first, along with the total number
// of readings matching the conditions.
func (d *irrigationRepository) QueryReadings(ctx context.Context, conditions ...ConditionFunc) ([]Reading, int64, error) {
	c := newCondition(conditions...)

	var total int64
	err := c.where(d.db.WithContext(ctx).Model(&Reading{})).Count(&total).Error
	if err != nil {
		return nil, 0, repositoryError(ctx, err)
	}

	readings := []Reading{}
	query := c.page(c.where(d.db.WithContext(ctx)))

	err = query.Order("timestamp DESC").Order("created_at DESC").Find(&readings).Error
	if err != nil {
		return nil, 0, repositoryError(ctx, err)
	}

	return readings, total, nil
}

func (d *irrigationRepository) GetReadingStatistics(ctx context.Context, now time.Time) (ReadingStatistics, error) {
	stats := ReadingStatistics{}
	db := d.db.WithContext(ctx)

	if err := db.Model(&Reading{}).Count(&stats.Total).Error; err != nil {
		return stats, repositoryError(ctx, err)
	}

	average := func(since time.Time) (float64, error) {
		var avg sql.NullFloat64
		row := db.Model(&Reading{}).Select("AVG(value)").Where("timestamp >= ?", since.UTC()).Row()
		if err := row.Scan(&avg); err != nil {
			return 0, err
		}
		return avg.Float64, nil
	}

	var err error

	if stats.Average24h, err = average(now.Add(-24 * time.Hour)); err != nil {
		return stats, repositoryError(ctx, err)
	}

	if stats.Average7d, err = average(now.Add(-7 * 24 * time.Hour)); err != nil {
		return stats, repositoryError(ctx, err)
	}

	if err = db.Model(&Reading{}).Distinct("node_id").Count(&stats.UniqueNodes).Error; err != nil {
		return stats, repositoryError(ctx, err)
	}

	latest, err := d.GetLatestReading(ctx, "")
	if err == nil {
		stats.LastReadingTime = &latest.CreatedAt
	} else if !errors.Is(err, ErrReadingNotFound) {
		return stats, err
	}

	return stats, nil
}

func (d *irrigationRepository) GetMotors(ctx context.Context) ([]Motor, error) {
	motors := []Motor{}

	err := d.db.WithContext(ctx).Order("id").Find(&motors).Error
	if err != nil {
		return nil, repositoryError(ctx, err)
	}

	return motors, nil
}

func (d *irrigationRepository) GetMotor(ctx context.Context, id uint) (Motor, error) {
	return d.getMotor(ctx, "id = ?", id)
}

func (d *irrigationRepository) GetMotorByNodeID(ctx context.Context, nodeID string) (Motor, error) {
	return d.getMotor(ctx, "node_id = ?", nodeID)
}

func (d *irrigationRepository) getMotor(ctx context.Context, query string, arg any) (Motor, error) {
	motor := Motor{}

	err := d.db.WithContext(ctx).Where(query, arg).First(&motor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Motor{}, ErrMotorNotFound
		}
		return Motor{}, repositoryError(ctx, err)
	}

	return motor, nil
}

func (d *irrigationRepository) CreateMotor(ctx context.Context, nodeID, name string) (Motor, error) {
	motor := Motor{
		NodeID: nodeID,
		Name:   name,
		State:  types.MotorOff,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("node_id = ?", nodeID).Limit(1).Find(&Sensor{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSensorNotFound
		}

		result = tx.Where("node_id = ?", nodeID).Limit(1).Find(&Motor{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return ErrMotorAlreadyExists
		}

		return tx.Create(&motor).Error
	})

	if err != nil {
		if errors.Is(err, ErrSensorNotFound) || errors.Is(err, ErrMotorAlreadyExists) {
			return Motor{}, err
		}
		return Motor{}, repositoryError(ctx, err)
	}

	return motor, nil
}

// UpdateMotor renames the motor and sets its state in one transaction. Nil arguments leave
// the motor unchanged. The state the motor had before the update is returned.
func (d *irrigationRepository) UpdateMotor(ctx context.Context, id uint, name *string, state *types.MotorState) (types.MotorState, Motor, error) {
	var previous types.MotorState
	motor := Motor{}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&motor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		previous = motor.State

		changes := map[string]any{}
		if name != nil {
			changes["name"] = *name
		}
		if state != nil {
			changes["state"] = *state
		}

		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&Motor{ID: motor.ID}).Updates(changes).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&motor).Error
	})

	if err != nil {
		if errors.Is(err, ErrMotorNotFound) {
			return "", Motor{}, err
		}
		return "", Motor{}, repositoryError(ctx, err)
	}

	return previous, motor, nil
}

// SetMotorState unconditionally sets the state of a motor and returns the state it had before.
func (d *irrigationRepository) SetMotorState(ctx context.Context, id uint, state types.MotorState) (types.MotorState, Motor, error) {
	return d.UpdateMotor(ctx, id, nil, &state)
}

// ApplyMotorDecision sets the motor of the node to the state decided from the reading that was
// stored at decidedAt. The motor row is locked while deciding, and a decision older than the
// one last applied is ignored, so the motor always follows the newest reading. Nothing is
// applied unless the system is in AUTOMATIC mode.
func (d *irrigationRepository) ApplyMotorDecision(ctx context.Context, nodeID string, state types.MotorState, decidedAt time.Time) (MotorDecision, error) {
	decision := MotorDecision{}
	decidedAt = decidedAt.UTC()

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mode, err := getOrCreateMode(tx)
		if err != nil {
			return err
		}

		if mode.Mode != types.ModeAutomatic {
			return ErrModeNotAutomatic
		}

		motor := Motor{}
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("node_id = ?", nodeID).First(&motor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMotorNotFound
			}
			return err
		}

		decision.Motor = motor
		decision.Previous = motor.State

		if motor.DecidedAt != nil && motor.DecidedAt.After(decidedAt) {
			return nil
		}

		err = tx.Model(&Motor{ID: motor.ID}).Updates(map[string]any{"state": state, "decided_at": decidedAt}).Error
		if err != nil {
			return err
		}

		decision.Motor.State = state
		decision.Motor.DecidedAt = &decidedAt
		decision.Applied = true

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrModeNotAutomatic) || errors.Is(err, ErrMotorNotFound) {
			return MotorDecision{}, err
		}
		return MotorDecision{}, repositoryError(ctx, err)
	}

	return decision, nil
}

func (d *irrigationRepository) DeleteMotor(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Where("id = ?", id).Delete(&Motor{})
	if result.Error != nil {
		return repositoryError(ctx, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMotorNotFound
	}
	return nil
}

func (d *irrigationRepository) CountMotorsByState(ctx context.Context) (map[types.MotorState]int64, error) {
	rows := []struct {
		State types.MotorState
		Count int64
	}{}

	err := d.db.WithContext(ctx).Model(&Motor{}).Select("state, COUNT(*) AS count").Group("state").Scan(&rows).Error
	if err != nil {
		return nil, repositoryError(ctx, err)
	}

	counts := map[types.MotorState]int64{
		types.MotorOn:  0,
		types.MotorOff: 0,
	}
	for _, r := range rows {
		counts[r.State] = r.Count
	}

	return counts, nil
}

func getOrCreateThreshold(tx *gorm.DB, nodeID string, defaultValue float64) (ThresholdConfig, error) {
	cfg := ThresholdConfig{
		NodeID:    nodeID,
		Threshold: defaultValue,
	}

	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cfg).Error
	if err != nil {
		return ThresholdConfig{}, err
	}

	stored := ThresholdConfig{}
	err = tx.Where("node_id = ?", nodeID).First(&stored).Error

	return stored, err
}

func (d *irrigationRepository) GetOrCreateThreshold(ctx context.Context, nodeID string, defaultValue float64) (ThresholdConfig, error) {
	var cfg ThresholdConfig

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("node_id = ?", nodeID).Limit(1).Find(&Sensor{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSensorNotFound
		}

		var err error
		cfg, err = getOrCreateThreshold(tx, nodeID, defaultValue)
		return err
	})

	if err != nil {
		if errors.Is(err, ErrSensorNotFound) {
			return ThresholdConfig{}, err
		}
		return ThresholdConfig{}, repositoryError(ctx, err)
	}

	return cfg, nil
}

func (d *irrigationRepository) GetThresholds(ctx context.Context) ([]ThresholdConfig, error) {
	thresholds := []ThresholdConfig{}

	err := d.db.WithContext(ctx).Order("node_id").Find(&thresholds).Error
	if err != nil {
		return nil, repositoryError(ctx, err)
	}

	return thresholds, nil
}

// SetThreshold stores the threshold of a sensor, creating the sensor first if needed.
// The returned bool reports whether the sensor was created.
func (d *irrigationRepository) SetThreshold(ctx context.Context, nodeID, sensorName string, value float64) (ThresholdConfig, bool, error) {
	var created bool
	cfg := ThresholdConfig{
		NodeID:    nodeID,
		Threshold: value,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		_, created, err = getOrCreateSensor(tx, nodeID, sensorName)
		if err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "node_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"threshold", "updated_at"}),
		}).Create(&cfg).Error
	})
	if err != nil {
		return ThresholdConfig{}, false, repositoryError(ctx, err)
	}

	return cfg, created, nil
}

func getOrCreateMode(tx *gorm.DB) (SystemMode, error) {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&SystemMode{ID: SystemModeID, Mode: types.ModeAutomatic}).Error
	if err != nil {
		return SystemMode{}, err
	}

	mode := SystemMode{}
	err = tx.Where("id = ?", SystemModeID).First(&mode).Error

	return mode, err
}

// GetMode returns the system mode, initialising it to AUTOMATIC on first access.
func (d *irrigationRepository) GetMode(ctx context.Context) (SystemMode, error) {
	var mode SystemMode

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		mode, err = getOrCreateMode(tx)
		return err
	})
	if err != nil {
		return SystemMode{}, repositoryError(ctx, err)
	}

	return mode, nil
}

func (d *irrigationRepository) SetMode(ctx context.Context, mode types.Mode) (types.Mode, SystemMode, error) {
	var previous types.Mode
	var current SystemMode

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := getOrCreateMode(tx)
		if err != nil {
			return err
		}

		previous = stored.Mode
		stored.Mode = mode

		if err = tx.Save(&stored).Error; err != nil {
			return err
		}

		current = stored
		return nil
	})
	if err != nil {
		return "", SystemMode{}, repositoryError(ctx, err)
	}

	return previous, current, nil
}

func (d *irrigationRepository) DeleteMode(ctx context.Context) error {
	return d.db.WithContext(ctx).Delete(&SystemMode{ID: SystemModeID}).Error
}

func (d *irrigationRepository) Ping(ctx context.Context) error {
	sqldb, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqldb.PingContext(ctx)
}
