package user

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filters struct {
	Search       string
	Designation  string
	CompanyID    string
	GlobalFilter string
	Active       *bool
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

type ListResult struct {
	Users []UserRow
	Total int64

	// Whole-table counts, independent of any filter above.
	AllUsersCount           int64
	AllActiveUsersCount     int64
	AllUnassignedUsersCount int64
}

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, f Filters) (*ListResult, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) (*User, error)
	Migrate(ctx context.Context, id string, companyID *string) (*User, error)
	Deactivate(ctx context.Context, id string) (*User, error)
	ClearCompany(ctx context.Context, id string) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) listBase(ctx context.Context, preds []predicate) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("users u").
		Joins("LEFT JOIN companies c ON u.company_id = c.id")
	return applyPredicates(q, preds)
}

func (r *repository) List(ctx context.Context, f Filters) (*ListResult, error) {
	preds := buildPredicates(f)

	var total int64
	if err := r.listBase(ctx, preds).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (f.Page - 1) * f.Limit

	var rows []UserRow
	err := r.listBase(ctx, preds).
		Select("u.*, c.name AS company_name").
		Order(sortColumn(f.SortBy) + " " + sortDirection(f.SortOrder)).
		Limit(f.Limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := &ListResult{Users: rows, Total: total}

	// Always computed over the whole table, regardless of filters.
	if err := r.db.WithContext(ctx).Table("users").Count(&result.AllUsersCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table("users").Where("active = true").Count(&result.AllActiveUsersCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Table("users").Where("company_id IS NULL").Count(&result.AllUnassignedUsersCount).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) (*User, error) {
	var u User
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&u)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

// Migrate reassigns the user's company, nil meaning unassigned. Bumps
// updated_at. Safe to repeat with the same target.
func (r *repository) Migrate(ctx context.Context, id string, companyID *string) (*User, error) {
	return r.updateReturning(ctx, id, map[string]any{"company_id": companyID}, false)
}

func (r *repository) Deactivate(ctx context.Context, id string) (*User, error) {
	return r.updateReturning(ctx, id, map[string]any{"active": false}, false)
}

// ClearCompany detaches the user without touching active or updated_at, in
// deliberate contrast with the company-delete cascade.
func (r *repository) ClearCompany(ctx context.Context, id string) (*User, error) {
	return r.updateReturning(ctx, id, map[string]any{"company_id": nil}, true)
}

func (r *repository) updateReturning(ctx context.Context, id string, values map[string]any, skipTimestamp bool) (*User, error) {
	var u User
	q := r.db.WithContext(ctx).
		Model(&u).
		Clauses(clause.Returning{}).
		Where("id = ?", id)

	var res *gorm.DB
	if skipTimestamp {
		res = q.UpdateColumns(values)
	} else {
		res = q.Updates(values)
	}
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}
