package company

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	companyerrors "go-comdir/internal/company/errors"
	"go-comdir/internal/geocode"
	"go-comdir/internal/shared/contextutil"
	"go-comdir/internal/user"
	usererrors "go-comdir/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	CompanyOptionsKey = "companies:options"

	optionsCacheTTL = 1 * time.Hour
)

type Service interface {
	List(ctx context.Context, req ListCompaniesRequest) ([]CompanyResponse, int64, error)
	GetOptions(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) (CompanyResponse, error)
	AddUser(ctx context.Context, companyID string, req AddUserRequest) (user.UserResponse, error)
	RemoveUser(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	users    user.Repository
	geocoder geocode.Resolver
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	geocoder geocode.Resolver,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		geocoder: geocoder,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) List(ctx context.Context, req ListCompaniesRequest) ([]CompanyResponse, int64, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	rows, total, err := s.repo.List(ctx, ListParams{
		SearchText: req.SearchText,
		SortBy:     req.SortBy,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		l.Error("list companies failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	companies := make([]CompanyResponse, len(rows))
	for i, row := range rows {
		companies[i] = rowToResponse(row)
	}
	return companies, total, nil
}

// GetOptions serves the unpaginated dropdown list, Redis-cached with
// singleflight collapsing concurrent misses. Mutations invalidate the key.
func (s *service) GetOptions(ctx context.Context) ([]CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CompanyOptionsKey).Result(); err == nil {
			var resp []CompanyResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CompanyOptionsKey, func() (interface{}, error) {
		companies, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]CompanyResponse, len(companies))
		for i, c := range companies {
			resp[i] = toResponse(c, 0)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, CompanyOptionsKey, jsonData, optionsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		l.Error("get company options failed", zap.Error(err))
		return nil, err
	}

	return v.([]CompanyResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	row, err := s.repo.FindWithUserCount(ctx, id)
	if err != nil {
		l.Error("get company by id failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return rowToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)

	l.Debug("create company requested", zap.String("name", name))

	if _, err := s.repo.FindByNameAndAddress(ctx, name, address); err == nil {
		l.Warn("create company duplicate", zap.String("name", name), zap.String("address", address))
		return CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return CompanyResponse{}, err
	}

	comp := &Company{
		ID:      uuid.NewString(),
		Name:    name,
		Address: address,
	}

	// Best effort: an unresolved address leaves the coordinates null.
	if coords := s.geocoder.Resolve(ctx, address); coords.Resolved {
		comp.Latitude = &coords.Lat
		comp.Longitude = &coords.Lon
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		l.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	l.Info("create company success", zap.String("company_id", comp.ID))
	return toResponse(*comp, 0), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	l.Debug("update company requested", zap.String("company_id", id))

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	newAddress := strings.TrimSpace(req.Address)
	if newAddress != "" && newAddress != current.Address {
		// Re-resolve on address change only; a failed lookup keeps the old
		// coordinates rather than nulling them.
		if coords := s.geocoder.Resolve(ctx, newAddress); coords.Resolved {
			current.Latitude = &coords.Lat
			current.Longitude = &coords.Lon
		}
		current.Address = newAddress
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		current.Name = name
	}

	if err := s.repo.Update(ctx, current); err != nil {
		l.Error("update company persist failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	l.Info("update company success", zap.String("company_id", id))
	return toResponse(*current, 0), nil
}

// Delete removes the company in one transaction: detach and deactivate every
// attached user first, then drop the row. Either everything lands or nothing
// does.
func (s *service) Delete(ctx context.Context, id string) (CompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	l.Debug("delete company requested", zap.String("company_id", id))

	var deleted *Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		// Detach runs unconditionally, even for an unknown id; a no-op
		// UPDATE is harmless and the order matches the cascade contract.
		if err := qtx.DetachUsers(ctx, id); err != nil {
			return err
		}

		var err error
		deleted, err = qtx.Delete(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		l.Error("delete company failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	l.Info("delete company success", zap.String("company_id", id))
	return toResponse(*deleted, 0), nil
}

// AddUser creates a user directly attached to the company. Unlike the plain
// user creation path, this one refuses an email that any user already holds.
func (s *service) AddUser(ctx context.Context, companyID string, req AddUserRequest) (user.UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	email := strings.TrimSpace(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		l.Warn("add user to company duplicate email", zap.String("company_id", companyID))
		return user.UserResponse{}, usererrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user.UserResponse{}, err
	}

	u, err := user.NewFromCreateRequest(req)
	if err != nil {
		return user.UserResponse{}, err
	}
	u.CompanyID = &companyID

	if err := s.users.Create(ctx, u); err != nil {
		l.Error("add user to company persist failed", zap.String("company_id", companyID), zap.Error(err))
		return user.UserResponse{}, mapRepositoryError(err)
	}

	l.Info("add user to company success",
		zap.String("company_id", companyID),
		zap.String("user_id", u.ID),
	)
	return user.ToResponse(*u), nil
}

// RemoveUser detaches the user from whatever company it belongs to. The
// active flag stays untouched, unlike the delete cascade.
func (s *service) RemoveUser(ctx context.Context, userID string) (user.UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.ClearCompany(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		}
		l.Error("remove user from company failed", zap.String("user_id", userID), zap.Error(err))
		return user.UserResponse{}, err
	}

	l.Info("remove user from company success", zap.String("user_id", userID))
	return user.ToResponse(*u), nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CompanyOptionsKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate company options cache",
			zap.Error(err),
			zap.String("key", CompanyOptionsKey),
		)
	}
}

func toResponse(c Company, userCount int64) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		UserCount: userCount,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func rowToResponse(row CompanyRow) CompanyResponse {
	return CompanyResponse{
		ID:        row.ID,
		Name:      row.Name,
		Address:   row.Address,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		UserCount: row.UserCount,
		CreatedAt: row.CreatedAt.Format(time.RFC3339),
		UpdatedAt: row.UpdatedAt.Format(time.RFC3339),
	}
}
