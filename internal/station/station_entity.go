package station

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryPicking   = "PICKING"
	CategoryPacking   = "PACKING"
	CategoryReceiving = "RECEIVING"
	CategoryShipping  = "SHIPPING"
	CategoryReturns   = "RETURNS"
)

type Station struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:uq_station_name"`
	Category  string         `gorm:"size:50;not null"`
	Zone      string         `gorm:"size:100"`
	Capacity  int            `gorm:"not null;default:1"`
	Active    bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Station) TableName() string {
	return "stations"
}
