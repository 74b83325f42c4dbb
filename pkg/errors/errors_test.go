package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	cause := errors.New("relation \"users\" does not exist")

	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "message only",
			err:  Conflict("a record with these values already exists"),
			want: "a record with these values already exists",
		},
		{
			name: "with cause",
			err:  DDL("index idx_users_email", cause),
			want: "failed to execute index idx_users_email: relation \"users\" does not exist",
		},
		{
			name: "details are sorted",
			err:  Validation(map[string]string{"port": "must be at most 65535", "database": "this field is required"}),
			want: "validation failed (database: this field is required; port: must be at most 65535)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	err := fmt.Errorf("provision: %w", Connection("localhost:5432", cause))

	assert.True(t, Is(err, ErrConnection))
	assert.True(t, Is(err, cause))
	assert.False(t, Is(err, ErrDDL))

	var appErr *AppError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "CONNECTION_FAILED", appErr.Code)

	rejected := Rejected("password authentication failed").WithCause(cause)
	assert.True(t, Is(rejected, ErrConnection))
	assert.True(t, Is(rejected, cause))
	assert.Equal(t, "password authentication failed: "+cause.Error(), rejected.Error())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", errors.New("boom"), ExitFailure},
		{"connection", Connection("db", errors.New("refused")), ExitFailure},
		{"ddl", DDL("table users", errors.New("syntax error")), ExitFailure},
		{"validation", Validation(map[string]string{"host": "required"}), ExitInvalidConfig},
		{"wrapped validation", fmt.Errorf("load: %w", Validation(nil)), ExitInvalidConfig},
		{"schema incomplete", SchemaIncomplete(nil), ExitSchemaIncomplete},
		{"invalid config", InvalidConfig(errors.New("password required in production")), ExitInvalidConfig},
		{"zero status", &AppError{Code: "X", Message: "x"}, ExitFailure},
		{"permission", Permission("insufficient privilege"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
