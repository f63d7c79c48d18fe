package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres unique_violation
const uniqueViolationCode = "23505"

func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
