package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a conditional write sees a newer version.
	ErrVersionConflict = errors.New("record has been modified by another writer")
	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("record already exists")
)

const (
	pgErrUniqueViolation           = "23505"
	pgErrInvalidTextRepresentation = "22P02" // e.g. a non-uuid path parameter
)

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return ErrDuplicate
		case pgErrInvalidTextRepresentation:
			return ErrNotFound
		}
	}
	return err
}
