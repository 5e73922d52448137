package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error de Postgres que traducimos a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgErrCode(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) (*pgconn.PgError, bool) {
	return pgErrCode(err, codeUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	_, ok := pgErrCode(err, codeForeignKeyViolation)
	return ok
}
