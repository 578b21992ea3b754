package persistence

import (
	"errors"
	"fmt"

	"github.com/samarth/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps GORM errors onto the domain taxonomy. The driver error is
// kept in the chain for logging.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", shared.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", shared.NotFound("Referenced record not found"), err)
	default:
		return err
	}
}

// affected turns a zero-row update or delete into shared.ErrNotFound
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
