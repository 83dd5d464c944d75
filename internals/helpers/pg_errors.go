package helper

import (
	"errors"
	"strings"
)

// pgconn.PgError (pgx) dan pq.Error sama-sama punya SQLState().
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// IsUniqueViolation: 23505 (unique_violation).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	// fallback string check (error sudah di-format ulang)
	lo := strings.ToLower(err.Error())
	return strings.Contains(lo, "duplicate key") || strings.Contains(lo, "sqlstate 23505")
}
