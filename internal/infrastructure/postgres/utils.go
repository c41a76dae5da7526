package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation SQLSTATE de violación de constraint único. En este esquema
// lo dispara la PK de quantity_changes: la clave de idempotencia del libro.
const uniqueViolation = "23505"

// isUniqueViolation reporta si err viene de un insert que chocó con una
// clave ya registrada. El fallback por texto cubre errores envueltos que ya
// no exponen el *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), uniqueViolation)
}
