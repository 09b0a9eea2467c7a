package repository

import (
	"errors"

	"optigest/internal/apierror"

	"github.com/jackc/pgx/v5/pgconn"
)

var errNroOrdenDuplicado = apierror.Integrity("Ya existe un pedido con ese número de orden de laboratorio en esta óptica")

// uniqueViolation is the SQLSTATE postgres raises on duplicate keys.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation, optionally restricted to a named constraint. Repositories use it
// to translate duplicates into apierror.Integrity with a message naming the
// violated uniqueness instead of leaking SQLSTATE text to clients.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
