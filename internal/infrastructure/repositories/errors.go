package repositories

import (
	"errors"

	"gorm.io/gorm"
	domainerrors "motorhub.backend/internal/domain/errors"
)

// mapError translates gorm and driver errors into the domain taxonomy.
// Anything not recognised is a transport failure.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainerrors.ErrAlreadyExists
	}
	return domainerrors.StoreUnavailable(err)
}

// affected maps a targeted partial update result: zero rows means the record
// vanished between read and write.
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
