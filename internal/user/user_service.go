package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-comdir/internal/shared/contextutil"
	usererrors "go-comdir/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, req ListUsersRequest) (*ListUsersResult, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) (UserResponse, error)
	Migrate(ctx context.Context, id string, req MigrateUserRequest) (*UserResponse, error)
	Deactivate(ctx context.Context, id string) (UserResponse, error)
}

type ListUsersResult struct {
	Users                   []UserResponse
	Total                   int64
	AllUsersCount           int64
	AllActiveUsersCount     int64
	AllUnassignedUsersCount int64
	Page                    int
	Limit                   int
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, req ListUsersRequest) (*ListUsersResult, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	page, limit := normalizePage(req.Page, req.Limit)

	filters := Filters{
		Search:       req.Search,
		Designation:  req.Designation,
		CompanyID:    req.CompanyID,
		GlobalFilter: req.GlobalFilter,
		Active:       normalizeActive(req.Active),
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
		Page:         page,
		Limit:        limit,
	}

	res, err := s.repo.List(ctx, filters)
	if err != nil {
		l.Error("list users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	users := make([]UserResponse, len(res.Users))
	for i, row := range res.Users {
		users[i] = rowToResponse(row)
	}

	return &ListUsersResult{
		Users:                   users,
		Total:                   res.Total,
		AllUsersCount:           res.AllUsersCount,
		AllActiveUsersCount:     res.AllActiveUsersCount,
		AllUnassignedUsersCount: res.AllUnassignedUsersCount,
		Page:                    page,
		Limit:                   limit,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get user by id failed",
			zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	l.Debug("create user requested", zap.String("email", req.Email))

	u, err := NewFromCreateRequest(req)
	if err != nil {
		return UserResponse{}, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("create user success", zap.String("user_id", u.ID))
	return ToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	l.Debug("update user requested", zap.String("user_id", id))

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	current.FirstName = patchString(req.FirstName, current.FirstName)
	current.LastName = patchString(req.LastName, current.LastName)
	current.Email = patchString(req.Email, current.Email)

	// Designation is presence-checked: an explicit empty string clears it.
	if req.Designation != nil {
		current.Designation = strings.TrimSpace(*req.Designation)
	} else {
		current.Designation = strings.TrimSpace(current.Designation)
	}

	if req.DOB != nil && *req.DOB != "" {
		dob, err := time.Parse(dateLayout, *req.DOB)
		if err != nil {
			l.Warn("update user invalid dob", zap.String("dob", *req.DOB))
			return UserResponse{}, usererrors.ErrInvalidDOB
		}
		current.DOB = &dob
	}

	// Presence, not truthiness: false is a legitimate value.
	if req.Active != nil {
		current.Active = *req.Active
	}

	if err := s.repo.Update(ctx, current); err != nil {
		l.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("update user success", zap.String("user_id", id))
	return ToResponse(*current), nil
}

func (s *service) Delete(ctx context.Context, id string) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.Delete(ctx, id)
	if err != nil {
		l.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("delete user success", zap.String("user_id", id))
	return ToResponse(*u), nil
}

// Migrate moves the user to the target company, or unassigns when the target
// is empty. An unknown user yields no result rather than an error.
func (s *service) Migrate(ctx context.Context, id string, req MigrateUserRequest) (*UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var target *string
	if req.CompanyID != nil && strings.TrimSpace(*req.CompanyID) != "" {
		v := strings.TrimSpace(*req.CompanyID)
		target = &v
	}

	u, err := s.repo.Migrate(ctx, id, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		l.Error("migrate user failed", zap.String("user_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	l.Info("migrate user success", zap.String("user_id", id))
	resp := ToResponse(*u)
	return &resp, nil
}

func (s *service) Deactivate(ctx context.Context, id string) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		l.Error("deactivate user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("deactivate user success", zap.String("user_id", id))
	return ToResponse(*u), nil
}

// NewFromCreateRequest builds a persistable user from a creation payload:
// trimmed strings, active defaulting to true, blank company meaning
// unassigned. Shared with the attach-to-company path.
func NewFromCreateRequest(req CreateUserRequest) (*User, error) {
	var dob *time.Time
	if req.DOB != "" {
		t, err := time.Parse(dateLayout, req.DOB)
		if err != nil {
			return nil, usererrors.ErrInvalidDOB
		}
		dob = &t
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var companyID *string
	if v := strings.TrimSpace(req.CompanyID); v != "" {
		companyID = &v
	}

	return &User{
		ID:          uuid.NewString(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Designation: strings.TrimSpace(req.Designation),
		DOB:         dob,
		Active:      active,
		CompanyID:   companyID,
	}, nil
}

// patchString keeps the current value when the patch value is empty; the
// survivor is trimmed either way.
func patchString(patch, current string) string {
	if v := strings.TrimSpace(patch); v != "" {
		return v
	}
	return strings.TrimSpace(current)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// normalizeActive accepts the bool and string spellings the client sends.
// Anything else means the filter is absent.
func normalizeActive(v any) *bool {
	switch t := v.(type) {
	case bool:
		b := t
		return &b
	case string:
		if t == "" {
			return nil
		}
		b := t == "true"
		return &b
	}
	return nil
}
