package company

import (
	"time"
)

type Company struct {
	ID        string    `gorm:"column:id;type:text;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Address   string    `gorm:"column:address;type:text;not null"`
	Latitude  *float64  `gorm:"column:latitude;type:decimal(9,6)"`
	Longitude *float64  `gorm:"column:longitude;type:decimal(9,6)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyRow is a listing projection carrying the derived per-company user
// count and, on paginated queries, the window total over the filtered set.
type CompanyRow struct {
	ID         string    `gorm:"column:id"`
	Name       string    `gorm:"column:name"`
	Address    string    `gorm:"column:address"`
	Latitude   *float64  `gorm:"column:latitude"`
	Longitude  *float64  `gorm:"column:longitude"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
	UserCount  int64     `gorm:"column:user_count"`
	TotalCount int64     `gorm:"column:total_count"`
}
