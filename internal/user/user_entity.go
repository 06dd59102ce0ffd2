package user

import (
	"time"
)

// email deliberately carries no unique index: only the attach-to-company
// creation path guards against duplicates.
type User struct {
	ID          string     `gorm:"column:id;type:text;primaryKey"`
	FirstName   string     `gorm:"column:first_name;type:varchar(255);not null"`
	LastName    string     `gorm:"column:last_name;type:varchar(255);not null"`
	Email       string     `gorm:"column:email;type:text;not null"`
	Designation string     `gorm:"column:designation;type:varchar(255)"`
	DOB         *time.Time `gorm:"column:dob;type:date"`
	Active      bool       `gorm:"column:active;not null"`
	CompanyID   *string    `gorm:"column:company_id;type:text;index"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// UserRow is the listing projection: user columns plus the joined company
// name (null when unassigned).
type UserRow struct {
	ID          string     `gorm:"column:id"`
	FirstName   string     `gorm:"column:first_name"`
	LastName    string     `gorm:"column:last_name"`
	Email       string     `gorm:"column:email"`
	Designation string     `gorm:"column:designation"`
	DOB         *time.Time `gorm:"column:dob"`
	Active      bool       `gorm:"column:active"`
	CompanyID   *string    `gorm:"column:company_id"`
	CompanyName *string    `gorm:"column:company_name"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}
