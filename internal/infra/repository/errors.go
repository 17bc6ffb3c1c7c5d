package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

// translate maps gorm/postgres failures into the domain taxonomy.
func translate(operation, entity, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundEntity(entity, id)
	}
	return httperr.FromPostgres(operation, err)
}
