package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mddstore/backend/internal/domain/shared"
)

// translate maps GORM errors onto domain errors. Anything unrecognized
// passes through untouched.
func translate(err error, notFound, duplicate string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewDomainError("NOT_FOUND", notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError("ALREADY_EXISTS", duplicate)
	default:
		return err
	}
}
