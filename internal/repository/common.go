// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
// Postgres surfaces these as pgconn.PgError 23505; the sqlite dev driver
// only exposes a message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
