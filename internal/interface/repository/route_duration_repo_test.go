package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/repository"
)

func TestGormRouteDuration_SeedWhenEmpty(t *testing.T) {
	db, mockSQL := newMockGorm(t)
	repo := NewGormRouteDurationRepository(db)

	mockSQL.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "m_route_durations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mockSQL.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "m_route_durations"`)).
		WithArgs("Bogota", "Medellin", 60, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.Seed(context.Background(), []entity.RouteDuration{{Origin: "Bogota", Destination: "Medellin", Minutes: 60}})
	require.NoError(t, err)
}

func TestGormRouteDuration_SeedSkipsPopulatedTable(t *testing.T) {
	db, mockSQL := newMockGorm(t)
	repo := NewGormRouteDurationRepository(db)

	mockSQL.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "m_route_durations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	err := repo.Seed(context.Background(), DefaultRouteDurations)
	require.NoError(t, err)
}

func TestGormRouteDuration_FindIgnoresCase(t *testing.T) {
	db, mockSQL := newMockGorm(t)
	repo := NewGormRouteDurationRepository(db)

	mockSQL.ExpectQuery(regexp.QuoteMeta(`LOWER(origin) = LOWER($1) AND LOWER(destination) = LOWER($2)`)).
		WithArgs("BOGOTA", "medellin", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "origin", "destination", "minutes"}).
			AddRow(1, "Bogota", "Medellin", 60))

	route, err := repo.Find(context.Background(), " BOGOTA", "medellin ")
	require.NoError(t, err)
	assert.Equal(t, 60, route.Minutes)
	assert.Equal(t, "Bogota", route.Origin)
}

func TestGormRouteDuration_FindNotFound(t *testing.T) {
	db, mockSQL := newMockGorm(t)
	repo := NewGormRouteDurationRepository(db)

	mockSQL.ExpectQuery(regexp.QuoteMeta(`FROM "m_route_durations"`)).
		WithArgs("Cali", "Leticia", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Find(context.Background(), "Cali", "Leticia")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGormRouteDuration_FindWrapsDriverError(t *testing.T) {
	db, mockSQL := newMockGorm(t)
	repo := NewGormRouteDurationRepository(db)

	mockSQL.ExpectQuery(regexp.QuoteMeta(`FROM "m_route_durations"`)).
		WillReturnError(assert.AnError)

	_, err := repo.Find(context.Background(), "Cali", "Pasto")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
