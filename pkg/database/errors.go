package database

import (
	stderrors "errors"
	"strings"

	"github.com/lib/pq"
	"github.com/nxzen/onboardd/pkg/errors"
)

// SQLSTATE codes the provisioner cares about.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
	CodeCheckViolation      = "23514"
	CodeDuplicateDatabase   = "42P04"
	CodeInvalidPassword     = "28P01"
	CodeInvalidCatalogName  = "3D000"
	CodeInsufficientPriv    = "42501"
)

// PQCode returns the SQLSTATE of err, or "" when err is not a server error.
func PQCode(err error) string {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsDuplicateDatabase reports whether CREATE DATABASE failed because the
// database already exists.
func IsDuplicateDatabase(err error) bool {
	return PQCode(err) == CodeDuplicateDatabase
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return PQCode(err) == CodeUniqueViolation
}

// IsConnectionError reports whether err belongs to SQLSTATE class 08
// (connection exception), or is a startup failure such as a bad password
// or an unknown database.
func IsConnectionError(err error) bool {
	code := PQCode(err)
	return strings.HasPrefix(code, "08") || code == CodeInvalidPassword || code == CodeInvalidCatalogName
}

// MapPQError converts a PostgreSQL error to an AppError carrying an
// operator-facing message. Returns nil if the error is not a pq.Error or the
// code is not mapped.
func MapPQError(err error) *errors.AppError {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case CodeUniqueViolation:
		return errors.Conflict(formatConstraintMessage(pqErr)).WithCause(err)

	case CodeDuplicateDatabase:
		return errors.Conflict("database already exists").WithCause(err)

	case CodeForeignKeyViolation:
		return errors.Constraint("referenced record does not exist").WithCause(err)

	case CodeNotNullViolation:
		col := pqErr.Column
		if col == "" {
			col = "a required column"
		}
		return errors.Constraint(col + " must not be null").WithCause(err)

	case CodeCheckViolation:
		return errors.Constraint("check constraint " + pqErr.Constraint + " failed").WithCause(err)

	case CodeInvalidPassword:
		return errors.Rejected("password authentication failed").WithCause(err)

	case CodeInvalidCatalogName:
		return errors.Rejected("database does not exist").WithCause(err)

	case CodeInsufficientPriv:
		return errors.Permission("insufficient privilege").WithCause(err)

	default:
		return nil
	}
}

// formatConstraintMessage creates a user-friendly message for unique constraint violations.
// PostgreSQL names inline unique constraints <table>_<column>_key.
func formatConstraintMessage(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.HasSuffix(constraint, "_employee_id_key"):
		return "an employee with this employee ID already exists"
	case strings.HasPrefix(constraint, "company_emails_") && strings.HasSuffix(constraint, "_email_key"):
		return "this company email is already assigned"
	case strings.HasSuffix(constraint, "_email_key"):
		return "a record with this email already exists"
	default:
		return "a record with these values already exists"
	}
}
