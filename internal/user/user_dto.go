package user

import (
	"time"

	"go-comdir/internal/shared/response"
)

const (
	FilterAll        = "all"
	FilterActive     = "active"
	FilterInactive   = "inactive"
	FilterUnassigned = "unassigned"
)

const dateLayout = "2006-01-02"

type ListUsersRequest struct {
	Search       string `json:"search"`
	Designation  string `json:"designation"`
	CompanyID    string `json:"companyId"`
	GlobalFilter string `json:"globalFilter"`
	// Active arrives as either a bool or the strings "true"/"false"
	Active    any    `json:"active"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

type CreateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Designation string `json:"designation"`
	DOB         string `json:"dob"`
	Active      *bool  `json:"active"`
	CompanyID   string `json:"company_id"`
}

// UpdateUserRequest distinguishes "absent" from "set to empty" with pointers
// where the contract requires presence checks.
type UpdateUserRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Designation *string `json:"designation"`
	DOB         *string `json:"dob"`
	Active      *bool   `json:"active"`
}

type MigrateUserRequest struct {
	CompanyID *string `json:"companyId"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Designation string  `json:"designation,omitempty"`
	DOB         *string `json:"dob"`
	Active      bool    `json:"active"`
	CompanyID   *string `json:"company_id"`
	CompanyName *string `json:"company_name,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ListUsersResponse struct {
	Success                 bool                `json:"success"`
	Message                 string              `json:"message,omitempty"`
	AllUsersCount           int64               `json:"allUsersCount"`
	AllActiveUsersCount     int64               `json:"allActiveUsersCount"`
	AllUnassignedUsersCount int64               `json:"allUnassignedUsersCount"`
	Data                    []UserResponse      `json:"data"`
	Pagination              response.Pagination `json:"pagination"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Designation: u.Designation,
		DOB:         formatDOB(u.DOB),
		Active:      u.Active,
		CompanyID:   u.CompanyID,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

func rowToResponse(row UserRow) UserResponse {
	return UserResponse{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Email:       row.Email,
		Designation: row.Designation,
		DOB:         formatDOB(row.DOB),
		Active:      row.Active,
		CompanyID:   row.CompanyID,
		CompanyName: row.CompanyName,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   row.UpdatedAt.Format(time.RFC3339),
	}
}

func formatDOB(dob *time.Time) *string {
	if dob == nil {
		return nil
	}
	v := dob.Format(dateLayout)
	return &v
}
