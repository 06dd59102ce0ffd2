package company

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListParams struct {
	SearchText string
	SortBy     string
	Page       int
	Limit      int
}

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, params ListParams) ([]CompanyRow, int64, error)
	ListAll(ctx context.Context) ([]Company, error)
	FindByID(ctx context.Context, id string) (*Company, error)
	FindWithUserCount(ctx context.Context, id string) (*CompanyRow, error)
	FindByNameAndAddress(ctx context.Context, name, address string) (*Company, error)
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
	DetachUsers(ctx context.Context, companyID string) error
	Delete(ctx context.Context, id string) (*Company, error)
}

const userCountSubquery = "(SELECT COUNT(*) FROM users u WHERE u.company_id = c.id) AS user_count"

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// List returns one page of companies plus the total over the filtered set.
// The total rides along on every row as a window count and is read from row
// 0; an empty page means total 0.
func (r *repository) List(ctx context.Context, params ListParams) ([]CompanyRow, int64, error) {
	q := r.db.WithContext(ctx).
		Table("companies c").
		Select("c.*, " + userCountSubquery + ", COUNT(*) OVER() AS total_count")

	if search := strings.TrimSpace(params.SearchText); search != "" {
		like := "%" + search + "%"
		q = q.Where("(c.name ILIKE ? OR c.address ILIKE ?)", like, like)
	}

	switch params.SortBy {
	case SortNameDesc:
		q = q.Order("c.name DESC")
	case SortNameAsc:
		q = q.Order("c.name ASC")
	case SortOldest:
		q = q.Order("c.updated_at ASC")
	default:
		q = q.Order("c.updated_at DESC")
	}

	offset := (params.Page - 1) * params.Limit

	var rows []CompanyRow
	if err := q.Limit(params.Limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if len(rows) > 0 {
		total = rows[0].TotalCount
	}
	return rows, total, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindWithUserCount(ctx context.Context, id string) (*CompanyRow, error) {
	var row CompanyRow
	err := r.db.WithContext(ctx).
		Table("companies c").
		Select("c.*, "+userCountSubquery).
		Where("c.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByNameAndAddress(ctx context.Context, name, address string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).
		Where("name = ? AND address = ?", name, address).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DetachUsers moves every user of the company into the detached, inactive
// state. Runs inside the delete transaction, before the company row goes.
func (r *repository) DetachUsers(ctx context.Context, companyID string) error {
	return r.db.WithContext(ctx).Exec(
		"UPDATE users SET company_id = NULL, active = false, updated_at = CURRENT_TIMESTAMP WHERE company_id = ?",
		companyID,
	).Error
}

func (r *repository) Delete(ctx context.Context, id string) (*Company, error) {
	var c Company
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&c)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}
