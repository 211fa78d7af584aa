package irrigation

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"gorm.io/gorm"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
)

// Seed loads sensors, motors and thresholds from a semicolon separated file with the
// header nodeid;name;motor;threshold. Existing rows are left untouched.
func (d *irrigationRepository) Seed(ctx context.Context, reader io.Reader) error {
	r := csv.NewReader(reader)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}

	records, err := getRecordsFromRows(rows)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Msgf("loaded %d sensors from file", len(records))

	for _, record := range records {
		err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return record.seed(tx)
		})
		if err != nil {
			log.Error().Err(err).Str("nodeid", record.nodeID).Msg("could not seed sensor")
		}
	}

	return nil
}

type sensorRecord struct {
	nodeID    string
	name      string
	motor     string
	threshold *float64
}

func (sr sensorRecord) seed(tx *gorm.DB) error {
	_, _, err := getOrCreateSensor(tx, sr.nodeID, sr.name)
	if err != nil {
		return err
	}

	if sr.motor != "" {
		result := tx.Where("node_id = ?", sr.nodeID).Limit(1).Find(&Motor{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			err = tx.Create(&Motor{NodeID: sr.nodeID, Name: sr.motor, State: types.MotorOff}).Error
			if err != nil {
				return err
			}
		}
	}

	if sr.threshold != nil {
		_, err = getOrCreateThreshold(tx, sr.nodeID, *sr.threshold)
	}

	return err
}

func newSensorRecord(r []string) (sensorRecord, error) {
	field := func(i int) string {
		if i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}

	sr := sensorRecord{
		nodeID: field(0),
		name:   field(1),
		motor:  field(2),
	}

	if sr.nodeID == "" {
		return sensorRecord{}, fmt.Errorf("row contains no nodeid")
	}

	if sr.name == "" {
		sr.name = sr.nodeID
	}

	if t := field(3); t != "" {
		f, err := strconv.ParseFloat(t, 64)
		if err != nil || f < 0 || f > 100 {
			return sensorRecord{}, fmt.Errorf("row with %s contains invalid threshold %s", sr.nodeID, t)
		}
		sr.threshold = &f
	}

	return sr, nil
}

func getRecordsFromRows(rows [][]string) ([]sensorRecord, error) {
	records := []sensorRecord{}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec, err := newSensorRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
