package database

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/nxzen/onboardd/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	dup := fmt.Errorf("create: %w", &pq.Error{Code: CodeDuplicateDatabase})
	unique := &pq.Error{Code: CodeUniqueViolation}
	refused := &pq.Error{Code: "08006"}
	plain := stderrors.New("dial tcp: connection refused")

	assert.True(t, IsDuplicateDatabase(dup))
	assert.False(t, IsDuplicateDatabase(unique))
	assert.False(t, IsDuplicateDatabase(plain))
	assert.False(t, IsDuplicateDatabase(nil))

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(dup))

	assert.True(t, IsConnectionError(refused))
	assert.True(t, IsConnectionError(&pq.Error{Code: CodeInvalidPassword}))
	assert.True(t, IsConnectionError(&pq.Error{Code: CodeInvalidCatalogName}))
	assert.False(t, IsConnectionError(unique))

	assert.Equal(t, "", PQCode(plain))
	assert.Equal(t, CodeDuplicateDatabase, PQCode(dup))
}

func TestMapPQError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
		wantNil  bool
		sentinel error
	}{
		{
			name:     "users email unique violation",
			err:      &pq.Error{Code: CodeUniqueViolation, Constraint: "users_email_key"},
			wantCode: "CONFLICT",
			wantMsg:  "a record with this email already exists",
			sentinel: errors.ErrConflict,
		},
		{
			name:     "employee id unique violation",
			err:      &pq.Error{Code: CodeUniqueViolation, Constraint: "employee_master_employee_id_key"},
			wantCode: "CONFLICT",
			wantMsg:  "an employee with this employee ID already exists",
			sentinel: errors.ErrConflict,
		},
		{
			name:     "company email unique violation",
			err:      &pq.Error{Code: CodeUniqueViolation, Constraint: "company_emails_email_key"},
			wantCode: "CONFLICT",
			wantMsg:  "this company email is already assigned",
			sentinel: errors.ErrConflict,
		},
		{
			name:     "other unique violation",
			err:      &pq.Error{Code: CodeUniqueViolation, Constraint: "leave_types_type_name_key"},
			wantCode: "CONFLICT",
			wantMsg:  "a record with these values already exists",
			sentinel: errors.ErrConflict,
		},
		{
			name:     "foreign key violation",
			err:      &pq.Error{Code: CodeForeignKeyViolation},
			wantCode: "CONSTRAINT_VIOLATION",
			wantMsg:  "referenced record does not exist",
			sentinel: errors.ErrConstraint,
		},
		{
			name:     "not null violation",
			err:      &pq.Error{Code: CodeNotNullViolation, Column: "email"},
			wantCode: "CONSTRAINT_VIOLATION",
			wantMsg:  "email must not be null",
			sentinel: errors.ErrConstraint,
		},
		{
			name:     "check violation",
			err:      &pq.Error{Code: CodeCheckViolation, Constraint: "leave_balances_days_check"},
			wantCode: "CONSTRAINT_VIOLATION",
			wantMsg:  "check constraint leave_balances_days_check failed",
			sentinel: errors.ErrConstraint,
		},
		{
			name:     "duplicate database",
			err:      &pq.Error{Code: CodeDuplicateDatabase},
			wantCode: "CONFLICT",
			wantMsg:  "database already exists",
			sentinel: errors.ErrConflict,
		},
		{
			name:     "bad password",
			err:      &pq.Error{Code: CodeInvalidPassword},
			wantCode: "CONNECTION_REJECTED",
			wantMsg:  "password authentication failed",
			sentinel: errors.ErrConnection,
		},
		{
			name:     "missing database",
			err:      &pq.Error{Code: CodeInvalidCatalogName},
			wantCode: "CONNECTION_REJECTED",
			wantMsg:  "database does not exist",
			sentinel: errors.ErrConnection,
		},
		{
			name:     "insufficient privilege",
			err:      &pq.Error{Code: CodeInsufficientPriv},
			wantCode: "PERMISSION_DENIED",
			wantMsg:  "insufficient privilege",
			sentinel: errors.ErrPermission,
		},
		{
			name:    "unmapped code",
			err:     &pq.Error{Code: "42601"},
			wantNil: true,
		},
		{
			name:    "not a pq error",
			err:     stderrors.New("boom"),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPQError(tt.err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
