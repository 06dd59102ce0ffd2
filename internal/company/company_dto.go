package company

import "go-comdir/internal/user"

const (
	SortNameDesc = "namedesc"
	SortNameAsc  = "nameasc"
	SortOldest   = "oldest"
	SortRecent   = "recent"
)

type ListCompaniesRequest struct {
	SearchText string `json:"searchText"`
	SortBy     string `json:"sortBy"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type UpdateCompanyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type RemoveUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type CompanyResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	UserCount int64    `json:"user_count"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type ListCompaniesResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       []CompanyResponse `json:"data"`
	TotalCount int64             `json:"totalCount"`
}

// AddUserRequest reuses the user creation payload; the company id comes from
// the route, never the body.
type AddUserRequest = user.CreateUserRequest
