package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport maps an airport or terminal code to the city it serves
type Airport struct {
	ID        uint
	Code      string
	Name      string
	CityCode  string
	CityName  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
