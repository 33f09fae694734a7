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

// GormRouteDurationRepository implements the RouteDurationRepository interface
type GormRouteDurationRepository struct {
	db *gorm.DB
}

// NewGormRouteDurationRepository creates a new GORM route duration repository
func NewGormRouteDurationRepository(db *gorm.DB) *GormRouteDurationRepository {
	return &GormRouteDurationRepository{
		db: db,
	}
}

// RouteDurations GORM model for database mapping
type RouteDurations struct {
	ID          uint   `gorm:"primaryKey"`
	Origin      string `gorm:"column:origin;uniqueIndex:idx_route_pair"`
	Destination string `gorm:"column:destination;uniqueIndex:idx_route_pair"`
	Minutes     int    `gorm:"column:minutes"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (RouteDurations) TableName() string {
	return "m_route_durations"
}

// Migrate creates the table and seeds it with routes when it is empty
func (r *GormRouteDurationRepository) Migrate(ctx context.Context, seed []entity.RouteDuration) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&RouteDurations{}); err != nil {
		return fmt.Errorf("failed to migrate route durations: %w", err)
	}
	return r.Seed(ctx, seed)
}

// Seed inserts the given rows only when the table holds none
func (r *GormRouteDurationRepository) Seed(ctx context.Context, seed []entity.RouteDuration) error {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&RouteDurations{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count route durations: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}

	rows := make([]RouteDurations, 0, len(seed))
	for _, rd := range seed {
		rows = append(rows, RouteDurations{Origin: rd.Origin, Destination: rd.Destination, Minutes: rd.Minutes})
	}
	if err := db.CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("failed to seed route durations: %w", err)
	}
	return nil
}

// Find looks up the directed pair origin → destination
func (r *GormRouteDurationRepository) Find(ctx context.Context, origin, destination string) (*entity.RouteDuration, error) {
	var route RouteDurations
	result := r.db.WithContext(ctx).
		Where("LOWER(origin) = LOWER(?) AND LOWER(destination) = LOWER(?)",
			strings.TrimSpace(origin), strings.TrimSpace(destination)).
		First(&route)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find route %s-%s: %w", origin, destination, result.Error)
	}

	return &entity.RouteDuration{
		ID:          route.ID,
		Origin:      route.Origin,
		Destination: route.Destination,
		Minutes:     route.Minutes,
	}, nil
}
