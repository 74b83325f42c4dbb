package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Standard error types
var (
	ErrConnection       = errors.New("connection failed")
	ErrDDL              = errors.New("schema statement failed")
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("resource conflict")
	ErrConstraint       = errors.New("constraint violation")
	ErrPermission       = errors.New("permission denied")
	ErrSchemaIncomplete = errors.New("schema incomplete")
)

// Process exit codes
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitInvalidConfig    = 2
	ExitSchemaIncomplete = 3
)

// AppError represents an application error with context
type AppError struct {
	Err     error             // sentinel, matched with errors.Is
	Cause   error             // underlying driver or library error
	Message string            // human readable summary
	Code    string            // machine readable code
	Status  int               // process exit status
	Details map[string]string // optional per-field details
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Details) > 0 {
		msg += " (" + formatDetails(e.Details) + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Common error constructors

// Connection reports that the server behind target could not be reached.
func Connection(target string, err error) *AppError {
	return &AppError{
		Err:     ErrConnection,
		Cause:   err,
		Code:    "CONNECTION_FAILED",
		Message: fmt.Sprintf("cannot connect to %s", target),
		Status:  ExitFailure,
	}
}

// Rejected reports that the server refused the session, for example a bad
// password or an unknown database.
func Rejected(message string) *AppError {
	return &AppError{
		Err:     ErrConnection,
		Code:    "CONNECTION_REJECTED",
		Message: message,
		Status:  ExitFailure,
	}
}

// DDL reports a failed schema statement.
func DDL(statement string, err error) *AppError {
	return &AppError{
		Err:     ErrDDL,
		Cause:   err,
		Code:    "DDL_FAILED",
		Message: fmt.Sprintf("failed to execute %s", statement),
		Status:  ExitFailure,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Code:    "CONFIG_INVALID",
		Message: "validation failed",
		Status:  ExitInvalidConfig,
		Details: details,
	}
}

// InvalidConfig wraps a failure to load or validate the configuration.
func InvalidConfig(err error) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Cause:   err,
		Code:    "CONFIG_INVALID",
		Message: "invalid configuration",
		Status:  ExitInvalidConfig,
	}
}

func SchemaIncomplete(details map[string]string) *AppError {
	return &AppError{
		Err:     ErrSchemaIncomplete,
		Code:    "SCHEMA_INCOMPLETE",
		Message: "schema does not match the catalogue",
		Status:  ExitSchemaIncomplete,
		Details: details,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    "CONFLICT",
		Message: message,
		Status:  ExitFailure,
	}
}

// Constraint reports a row rejected by a table constraint.
func Constraint(message string) *AppError {
	return &AppError{
		Err:     ErrConstraint,
		Code:    "CONSTRAINT_VIOLATION",
		Message: message,
		Status:  ExitFailure,
	}
}

func Permission(message string) *AppError {
	return &AppError{
		Err:     ErrPermission,
		Code:    "PERMISSION_DENIED",
		Message: message,
		Status:  ExitFailure,
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return ExitFailure
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}

func formatDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+details[k])
	}
	return strings.Join(parts, "; ")
}
