package user_test

import (
	"context"
	"testing"
	"time"

	"go-comdir/internal/shared/contextutil"
	"go-comdir/internal/user"
	usererrors "go-comdir/internal/user/errors"
	usermock "go-comdir/internal/user/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims fields and defaults active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		var persisted *user.User
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				persisted = u
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			FirstName: "  Ana ",
			LastName:  " Lee",
			Email:     " ana@example.com ",
			CompanyID: "   ",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Ana", persisted.FirstName)
		assert.Equal(t, "Lee", persisted.LastName)
		assert.Equal(t, "ana@example.com", persisted.Email)
		assert.True(t, persisted.Active)
		assert.Nil(t, persisted.CompanyID)
		assert.NotEmpty(t, persisted.ID)
		assert.Equal(t, "Ana", resp.FirstName)
	})

	t.Run("explicit inactive is honored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		inactive := false
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.False(t, u.Active)
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			FirstName: "Ana",
			LastName:  "Lee",
			Email:     "ana@example.com",
			Active:    &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("rejects a malformed date of birth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		_, err := svc.Create(ctx, user.CreateUserRequest{
			FirstName: "Ana",
			LastName:  "Lee",
			Email:     "ana@example.com",
			DOB:       "31-12-1990",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidDOB)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	current := func() *user.User {
		return &user.User{
			ID:          "u1",
			FirstName:   "Ana",
			LastName:    "Lee",
			Email:       "ana@example.com",
			Designation: "Engineer",
			Active:      true,
		}
	}

	t.Run("empty strings keep current values", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().FindByID(gomock.Any(), "u1").Return(current(), nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "Ana", u.FirstName)
				assert.Equal(t, "Bright", u.LastName)
				assert.Equal(t, "Engineer", u.Designation)
				return nil
			})

		resp, err := svc.Update(ctx, "u1", user.UpdateUserRequest{LastName: " Bright "})

		assert.NoError(t, err)
		assert.Equal(t, "Bright", resp.LastName)
	})

	t.Run("explicit empty designation clears it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		empty := ""
		repo.EXPECT().FindByID(gomock.Any(), "u1").Return(current(), nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "", u.Designation)
				return nil
			})

		_, err := svc.Update(ctx, "u1", user.UpdateUserRequest{Designation: &empty})

		assert.NoError(t, err)
	})

	t.Run("active false is applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		inactive := false
		repo.EXPECT().FindByID(gomock.Any(), "u1").Return(current(), nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.False(t, u.Active)
				return nil
			})

		resp, err := svc.Update(ctx, "u1", user.UpdateUserRequest{Active: &inactive})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("invalid date of birth fails before persisting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		bad := "not-a-date"
		repo.EXPECT().FindByID(gomock.Any(), "u1").Return(current(), nil)

		_, err := svc.Update(ctx, "u1", user.UpdateUserRequest{DOB: &bad})

		assert.ErrorIs(t, err, usererrors.ErrInvalidDOB)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().FindByID(gomock.Any(), "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, "nope", user.UpdateUserRequest{})

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("blank target unassigns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		blank := "  "
		repo.EXPECT().
			Migrate(gomock.Any(), "u1", nil).
			Return(&user.User{ID: "u1", Active: true}, nil)

		resp, err := svc.Migrate(ctx, "u1", user.MigrateUserRequest{CompanyID: &blank})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Nil(t, resp.CompanyID)
	})

	t.Run("unknown user answers success with no data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().Migrate(gomock.Any(), "nope", nil).Return(nil, gorm.ErrRecordNotFound)

		resp, err := svc.Migrate(ctx, "nope", user.MigrateUserRequest{})

		assert.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("target company is trimmed and forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		target := " c1 "
		trimmed := "c1"
		repo.EXPECT().
			Migrate(gomock.Any(), "u1", gomock.Cond(func(x any) bool {
				v, ok := x.(*string)
				return ok && v != nil && *v == trimmed
			})).
			Return(&user.User{ID: "u1", CompanyID: &trimmed, Active: true}, nil)

		resp, err := svc.Migrate(ctx, "u1", user.MigrateUserRequest{CompanyID: &target})

		assert.NoError(t, err)
		assert.Equal(t, "c1", *resp.CompanyID)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the updated row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().
			Deactivate(gomock.Any(), "u1").
			Return(&user.User{ID: "u1", FirstName: "Ana", Active: false}, nil)

		resp, err := svc.Deactivate(ctx, "u1")

		assert.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().Deactivate(gomock.Any(), "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Deactivate(ctx, "nope")

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_ContextLogger(t *testing.T) {
	t.Run("logs through the request-scoped logger from the context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo, zap.NewNop())

		core, logs := observer.New(zap.InfoLevel)
		scoped := zap.New(core).With(zap.String("request_id", "rid-123"))
		ctx := contextutil.WithLogger(context.Background(), scoped)

		repo.EXPECT().
			Deactivate(gomock.Any(), "u1").
			Return(&user.User{ID: "u1", Active: false}, nil)

		_, err := svc.Deactivate(ctx, "u1")

		assert.NoError(t, err)
		assert.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "deactivate user success", entry.Message)
		assert.Equal(t, "rid-123", entry.ContextMap()["request_id"])
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("normalizes paging and the active filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := usermock.NewMockRepository(ctrl)
		svc := user.NewService(repo)

		repo.EXPECT().
			List(gomock.Any(), gomock.Cond(func(x any) bool {
				f, ok := x.(user.Filters)
				return ok && f.Page == 1 && f.Limit == 10 &&
					f.Active != nil && *f.Active == false
			})).
			Return(&user.ListResult{
				Users: []user.UserRow{{
					ID: "u1", FirstName: "Ana", LastName: "Lee",
					Email: "ana@example.com", Active: false,
					CreatedAt: now, UpdatedAt: now,
				}},
				Total:                   1,
				AllUsersCount:           7,
				AllActiveUsersCount:     5,
				AllUnassignedUsersCount: 2,
			}, nil)

		res, err := svc.List(ctx, user.ListUsersRequest{
			Page:   0,
			Limit:  -3,
			Active: "false",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 10, res.Limit)
		assert.Equal(t, int64(1), res.Total)
		assert.Equal(t, int64(7), res.AllUsersCount)
		assert.Len(t, res.Users, 1)
	})
}
