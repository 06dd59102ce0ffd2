package company_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-comdir/internal/company"
	companyerrors "go-comdir/internal/company/errors"
	"go-comdir/internal/user"
	usererrors "go-comdir/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeCompanyService struct {
	ListFn       func(ctx context.Context, req company.ListCompaniesRequest) ([]company.CompanyResponse, int64, error)
	GetOptionsFn func(ctx context.Context) ([]company.CompanyResponse, error)
	GetByIDFn    func(ctx context.Context, id string) (company.CompanyResponse, error)
	CreateFn     func(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error)
	UpdateFn     func(ctx context.Context, id string, req company.UpdateCompanyRequest) (company.CompanyResponse, error)
	DeleteFn     func(ctx context.Context, id string) (company.CompanyResponse, error)
	AddUserFn    func(ctx context.Context, companyID string, req company.AddUserRequest) (user.UserResponse, error)
	RemoveUserFn func(ctx context.Context, userID string) (user.UserResponse, error)
}

func (f *fakeCompanyService) List(ctx context.Context, req company.ListCompaniesRequest) ([]company.CompanyResponse, int64, error) {
	return f.ListFn(ctx, req)
}

func (f *fakeCompanyService) GetOptions(ctx context.Context) ([]company.CompanyResponse, error) {
	return f.GetOptionsFn(ctx)
}

func (f *fakeCompanyService) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeCompanyService) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	return f.CreateFn(ctx, req)
}

func (f *fakeCompanyService) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	return f.UpdateFn(ctx, id, req)
}

func (f *fakeCompanyService) Delete(ctx context.Context, id string) (company.CompanyResponse, error) {
	return f.DeleteFn(ctx, id)
}

func (f *fakeCompanyService) AddUser(ctx context.Context, companyID string, req company.AddUserRequest) (user.UserResponse, error) {
	return f.AddUserFn(ctx, companyID, req)
}

func (f *fakeCompanyService) RemoveUser(ctx context.Context, userID string) (user.UserResponse, error) {
	return f.RemoveUserFn(ctx, userID)
}

func newCompanyTestContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestCompanyHandler_List(t *testing.T) {
	t.Run("writes the list envelope with the total count", func(t *testing.T) {
		svc := &fakeCompanyService{
			ListFn: func(_ context.Context, req company.ListCompaniesRequest) ([]company.CompanyResponse, int64, error) {
				assert.Equal(t, "acme", req.SearchText)
				assert.Equal(t, company.SortNameAsc, req.SortBy)
				return []company.CompanyResponse{{ID: "c1", Name: "Acme", UserCount: 3}}, 17, nil
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies", gin.H{
			"searchText": "acme",
			"sortBy":     "nameasc",
			"page":       1,
			"limit":      10,
		})
		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body company.ListCompaniesResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, int64(17), body.TotalCount)
		assert.Len(t, body.Data, 1)
		assert.Equal(t, int64(3), body.Data[0].UserCount)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		h := company.NewHandler(&fakeCompanyService{})

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies", nil)
		c.Request = httptest.NewRequest(http.MethodPost, "/companies", bytes.NewBufferString("{"))
		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompanyHandler_Create(t *testing.T) {
	t.Run("created company answers 201", func(t *testing.T) {
		svc := &fakeCompanyService{
			CreateFn: func(_ context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
				return company.CompanyResponse{ID: "c1", Name: req.Name, Address: req.Address}, nil
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies/create", gin.H{
			"name":    "Acme",
			"address": "1 Main St",
		})
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Company created successfully")
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		h := company.NewHandler(&fakeCompanyService{})

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies/create", gin.H{"address": "1 Main St"})
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate answers 409", func(t *testing.T) {
		svc := &fakeCompanyService{
			CreateFn: func(_ context.Context, _ company.CreateCompanyRequest) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies/create", gin.H{
			"name":    "Acme",
			"address": "1 Main St",
		})
		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})
}

func TestCompanyHandler_Delete(t *testing.T) {
	t.Run("deleted company answers success with no data", func(t *testing.T) {
		svc := &fakeCompanyService{
			DeleteFn: func(_ context.Context, id string) (company.CompanyResponse, error) {
				assert.Equal(t, "c1", id)
				return company.CompanyResponse{ID: id}, nil
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodDelete, "/companies/c1", nil)
		c.Params = gin.Params{{Key: "id", Value: "c1"}}
		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Company deleted successfully")
	})

	t.Run("unknown company answers 404", func(t *testing.T) {
		svc := &fakeCompanyService{
			DeleteFn: func(_ context.Context, id string) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrCompanyNotFound
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodDelete, "/companies/nope", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}
		h.Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompanyHandler_AddUser(t *testing.T) {
	t.Run("attached user answers 201", func(t *testing.T) {
		companyID := "c1"
		svc := &fakeCompanyService{
			AddUserFn: func(_ context.Context, id string, req company.AddUserRequest) (user.UserResponse, error) {
				assert.Equal(t, "c1", id)
				return user.UserResponse{ID: "u1", Email: req.Email, CompanyID: &companyID, Active: true}, nil
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies/c1/users", gin.H{
			"first_name": "Ana",
			"last_name":  "Lee",
			"email":      "ana@example.com",
		})
		c.Params = gin.Params{{Key: "id", Value: "c1"}}
		h.AddUser(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "User created and added to company successfully")
	})

	t.Run("duplicate email answers 409", func(t *testing.T) {
		svc := &fakeCompanyService{
			AddUserFn: func(_ context.Context, _ string, _ company.AddUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrEmailAlreadyExists
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodPost, "/companies/c1/users", gin.H{
			"first_name": "Ana",
			"last_name":  "Lee",
			"email":      "ana@example.com",
		})
		c.Params = gin.Params{{Key: "id", Value: "c1"}}
		h.AddUser(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Email already exists")
	})
}

func TestCompanyHandler_RemoveUser(t *testing.T) {
	t.Run("detached user is echoed back", func(t *testing.T) {
		svc := &fakeCompanyService{
			RemoveUserFn: func(_ context.Context, userID string) (user.UserResponse, error) {
				assert.Equal(t, "u1", userID)
				return user.UserResponse{ID: userID, Active: true}, nil
			},
		}
		h := company.NewHandler(svc)

		c, w := newCompanyTestContext(t, http.MethodDelete, "/companies/c1/users", gin.H{"userId": "u1"})
		h.RemoveUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "User removed from company successfully")
	})

	t.Run("missing userId fails validation", func(t *testing.T) {
		h := company.NewHandler(&fakeCompanyService{})

		c, w := newCompanyTestContext(t, http.MethodDelete, "/companies/c1/users", gin.H{})
		h.RemoveUser(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompanyHandler_GetOptions(t *testing.T) {
	svc := &fakeCompanyService{
		GetOptionsFn: func(_ context.Context) ([]company.CompanyResponse, error) {
			return []company.CompanyResponse{{ID: "c1", Name: "Acme"}, {ID: "c2", Name: "Globex"}}, nil
		},
	}
	h := company.NewHandler(svc)

	c, w := newCompanyTestContext(t, http.MethodGet, "/companies/all", nil)
	h.GetOptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Globex")
}
