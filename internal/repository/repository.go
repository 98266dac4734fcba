package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNotFound reports whether err means "no matching row".
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
