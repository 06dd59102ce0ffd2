package company

import (
	"errors"
	"strings"

	companyerrors "go-comdir/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return companyerrors.ErrCompanyAlreadyExists
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return companyerrors.ErrCompanyAlreadyExists
	}

	return err
}
