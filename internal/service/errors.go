package service

import (
	"errors"

	"github.com/agrimart/agri-storefront/internal/repository"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// storeError maps repository sentinels onto the service error taxonomy.
func storeError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrVersionConflict):
		return apperrors.NewConflict(resource+" was modified concurrently", nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", nil)
	default:
		return apperrors.NewPersistenceError(err)
	}
}
