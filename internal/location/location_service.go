package location

import (
	"context"

	"go-comdir/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	GetCountries(ctx context.Context) ([]LocationResponse, error)
	GetStatesByCountry(ctx context.Context, countryID string) ([]LocationResponse, error)
	GetCitiesByState(ctx context.Context, stateID string) ([]LocationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("location.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetCountries(ctx context.Context) ([]LocationResponse, error) {
	countries, err := s.repo.FindCountries(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get countries failed", zap.Error(err))
		return nil, err
	}

	resp := make([]LocationResponse, len(countries))
	for i, c := range countries {
		resp[i] = LocationResponse{ID: c.ID, Name: c.Name}
	}
	return resp, nil
}

func (s *service) GetStatesByCountry(ctx context.Context, countryID string) ([]LocationResponse, error) {
	states, err := s.repo.FindStatesByCountry(ctx, countryID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get states failed", zap.String("country_id", countryID), zap.Error(err))
		return nil, err
	}

	resp := make([]LocationResponse, len(states))
	for i, st := range states {
		resp[i] = LocationResponse{ID: st.ID, Name: st.Name}
	}
	return resp, nil
}

func (s *service) GetCitiesByState(ctx context.Context, stateID string) ([]LocationResponse, error) {
	cities, err := s.repo.FindCitiesByState(ctx, stateID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get cities failed", zap.String("state_id", stateID), zap.Error(err))
		return nil, err
	}

	resp := make([]LocationResponse, len(cities))
	for i, c := range cities {
		resp[i] = LocationResponse{ID: c.ID, Name: c.Name}
	}
	return resp, nil
}
