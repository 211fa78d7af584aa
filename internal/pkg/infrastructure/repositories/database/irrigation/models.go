package irrigation

import (
	"errors"
	"time"

	"github.com/utsabfdahal/ProjectThopaSichai/pkg/types"
	"gorm.io/gorm"
)

const SystemModeID uint = 1

const (
	MaxNodeIDLength        int = 100
	MaxNameLength          int = 255
	MaxSourceAddressLength int = 45
)

var ErrModeCannotBeDeleted = errors.New("system mode cannot be deleted")

type Sensor struct {
	NodeID    string    `gorm:"primaryKey;size:100" json:"nodeid"`
	Name      string    `gorm:"size:255" json:"name"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Motor     *Motor           `gorm:"foreignKey:NodeID;references:NodeID;constraint:OnDelete:CASCADE" json:"-"`
	Threshold *ThresholdConfig `gorm:"foreignKey:NodeID;references:NodeID;constraint:OnDelete:CASCADE" json:"-"`
	Readings  []Reading        `gorm:"foreignKey:NodeID;references:NodeID;constraint:OnDelete:CASCADE" json:"-"`
}

type Reading struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	NodeID        string    `gorm:"index;size:100;not null" json:"nodeid"`
	Value         float64   `json:"value"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
	SourceAddress string    `gorm:"size:45" json:"ip_address"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

type Motor struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	NodeID    string           `gorm:"uniqueIndex;size:100;not null" json:"sensor_nodeid"`
	Name      string           `gorm:"size:255" json:"name"`
	State     types.MotorState `gorm:"index;size:3;not null" json:"state"`
	DecidedAt *time.Time       `json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ThresholdConfig struct {
	NodeID    string    `gorm:"primaryKey;size:100" json:"sensor_nodeid"`
	Threshold float64   `json:"threshold"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SystemMode struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	Mode      types.Mode `gorm:"size:10;not null" json:"mode"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (SystemMode) TableName() string {
	return "system_mode"
}

func (m *SystemMode) BeforeDelete(tx *gorm.DB) error {
	return ErrModeCannotBeDeleted
}

func (m *SystemMode) BeforeSave(tx *gorm.DB) error {
	m.ID = SystemModeID
	return nil
}
