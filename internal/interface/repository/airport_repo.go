package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) *GormAirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;uniqueIndex;size:16"`
	Name      string         `gorm:"column:name"`
	CityCode  string         `gorm:"column:citycode;size:8"`
	CityName  string         `gorm:"column:cityname"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// Migrate creates the table and seeds it with airports when it is empty
func (r *GormAirportRepository) Migrate(ctx context.Context, seed []entity.Airport) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&Airports{}); err != nil {
		return fmt.Errorf("failed to migrate airports: %w", err)
	}
	return r.Seed(ctx, seed)
}

// Seed inserts the given rows only when the table holds none
func (r *GormAirportRepository) Seed(ctx context.Context, seed []entity.Airport) error {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&Airports{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count airports: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}

	rows := make([]Airports, 0, len(seed))
	for _, a := range seed {
		rows = append(rows, Airports{Code: a.Code, Name: a.Name, CityCode: a.CityCode, CityName: a.CityName})
	}
	if err := db.CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("failed to seed airports: %w", err)
	}
	return nil
}

// GetByCode finds an airport by code or name
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	key := strings.TrimSpace(code)
	result := r.db.WithContext(ctx).
		Where("LOWER(code) = LOWER(?) OR LOWER(name) = LOWER(?)", key, key).
		First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find airport %s: %w", code, result.Error)
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:        airport.ID,
		Code:      airport.Code,
		Name:      airport.Name,
		CityCode:  airport.CityCode,
		CityName:  airport.CityName,
		CreatedAt: airport.CreatedAt,
		UpdatedAt: airport.UpdatedAt,
		DeletedAt: airport.DeletedAt,
	}, nil
}
