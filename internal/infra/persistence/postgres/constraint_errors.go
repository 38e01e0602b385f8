package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL error class constants (https://www.postgresql.org/docs/current/errcodes-appendix.html)
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// isUniqueConstraintViolation reports whether err is the store's unique-index
// rejection. This is the authoritative duplicate signal: any pre-insert lookup
// is only a fast path and loses races.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return false
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgNotNullViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "not null")
}
