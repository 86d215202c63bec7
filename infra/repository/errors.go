package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/commandhandler/pkg/domain"
	"gorm.io/gorm"
)

// gormToDomain lists the translated gorm errors the repositories surface as domain errors.
var gormToDomain = []struct {
	gorm   error
	domain error
}{
	{gorm.ErrRecordNotFound, domain.ErrNotFound},
	{gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
	{gorm.ErrCheckConstraintViolated, domain.ErrConstraintViolated},
}

// MapGormErrorToDomain converts gorm errors into domain errors so the handlers
// never import gorm. Lookups that miss return the bare domain error; write
// failures keep the driver error attached for the logs. Anything unmapped is
// returned unchanged and treated as an infrastructure failure upstream.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range gormToDomain {
		if !errors.Is(err, m.gorm) {
			continue
		}
		if m.domain == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: %w", m.domain, err)
	}
	return err
}

// WrapError runs a gorm operation and maps its error.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
