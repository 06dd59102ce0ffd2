package location

import (
	"context"

	"gorm.io/gorm"
)

// Reference data only: the hierarchy is pre-seeded and never mutated here.

type Repository interface {
	FindCountries(ctx context.Context) ([]Country, error)
	FindStatesByCountry(ctx context.Context, countryID string) ([]State, error)
	FindCitiesByState(ctx context.Context, stateID string) ([]City, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindCountries(ctx context.Context) ([]Country, error) {
	var countries []Country
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&countries).Error
	return countries, err
}

func (r *repository) FindStatesByCountry(ctx context.Context, countryID string) ([]State, error) {
	var states []State
	err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&states).Error
	return states, err
}

func (r *repository) FindCitiesByState(ctx context.Context, stateID string) ([]City, error) {
	var cities []City
	err := r.db.WithContext(ctx).
		Where("state_id = ?", stateID).
		Order("name ASC").
		Find(&cities).Error
	return cities, err
}
