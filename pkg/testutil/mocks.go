package testutil

import (
	"context"
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nxzen/onboardd/internal/schema"
	"github.com/nxzen/onboardd/pkg/database"
	"github.com/nxzen/onboardd/pkg/logger"
)

// MockDB wraps sqlmock for easier testing
type MockDB struct {
	DB   *database.DB
	Mock sqlmock.Sqlmock
}

// NewMockDB creates a new mock database for unit testing.
// Use this when you want to test provisioning logic without a real database.
//
// Usage:
//
//	server := testutil.NewMockDB(t)
//	server.ExpectCreateDatabase("onboardd", nil)
//	server.ExpectClose()
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return &MockDB{
		DB:   database.Wrap(sqlx.NewDb(db, "postgres"), logger.Nop()),
		Mock: mock,
	}
}

// Close closes the mock database connection
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// ExpectQuery sets up an expected query
func (m *MockDB) ExpectQuery(query string) *sqlmock.ExpectedQuery {
	return m.Mock.ExpectQuery(regexp.QuoteMeta(query))
}

// ExpectExec sets up an expected exec
func (m *MockDB) ExpectExec(query string) *sqlmock.ExpectedExec {
	return m.Mock.ExpectExec(regexp.QuoteMeta(query))
}

// ExpectBegin sets up an expected transaction begin
func (m *MockDB) ExpectBegin() *sqlmock.ExpectedBegin {
	return m.Mock.ExpectBegin()
}

// ExpectCommit sets up an expected commit
func (m *MockDB) ExpectCommit() *sqlmock.ExpectedCommit {
	return m.Mock.ExpectCommit()
}

// ExpectRollback sets up an expected rollback
func (m *MockDB) ExpectRollback() *sqlmock.ExpectedRollback {
	return m.Mock.ExpectRollback()
}

// ExpectClose sets up an expected close of the connection
func (m *MockDB) ExpectClose() *sqlmock.ExpectedClose {
	return m.Mock.ExpectClose()
}

// ExpectationsWereMet verifies all expectations were met
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	if err := m.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// MockRows creates a new mock rows object
func MockRows(columns ...string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

// EmptyResult is the result of a DDL statement.
func EmptyResult() driver.Result {
	return sqlmock.NewResult(0, 0)
}

// ExpectCreateDatabase expects CREATE DATABASE for name. A nil err
// succeeds; pass DuplicateDatabaseError() to simulate an existing database.
func (m *MockDB) ExpectCreateDatabase(name string, err error) {
	exp := m.ExpectExec("CREATE DATABASE " + pq.QuoteIdentifier(name))
	if err != nil {
		exp.WillReturnError(err)
		return
	}
	exp.WillReturnResult(EmptyResult())
}

// ExpectSchema expects the full catalogue inside one committed transaction.
func (m *MockDB) ExpectSchema() {
	m.ExpectBegin()
	for _, stmt := range schema.Statements() {
		m.ExpectStatement(stmt).WillReturnResult(EmptyResult())
	}
	m.ExpectCommit()
}

// ExpectSchemaFailure expects the catalogue up to and including failAt,
// which returns err, followed by a rollback.
func (m *MockDB) ExpectSchemaFailure(failAt string, err error) {
	m.ExpectBegin()
	for _, stmt := range schema.Statements() {
		exp := m.ExpectStatement(stmt)
		if stmt.Name == failAt {
			exp.WillReturnError(err)
			break
		}
		exp.WillReturnResult(EmptyResult())
	}
	m.ExpectRollback()
}

// ExpectStatement matches a catalogue statement by its leading clause so the
// expectation does not repeat the DDL body.
func (m *MockDB) ExpectStatement(stmt schema.Statement) *sqlmock.ExpectedExec {
	if stmt.Kind == schema.KindTable {
		return m.ExpectExec("CREATE TABLE IF NOT EXISTS " + stmt.Name + " (")
	}
	return m.ExpectExec(stmt.SQL)
}

// DuplicateDatabaseError is the error PostgreSQL returns for CREATE DATABASE
// on an existing database.
func DuplicateDatabaseError(name string) error {
	return &pq.Error{
		Code:    database.CodeDuplicateDatabase,
		Message: fmt.Sprintf("database %q already exists", name),
	}
}

// MockOpener returns a database.Opener that hands out mocks keyed by the
// dbname of the requested DSN. Unknown databases fail like an unreachable
// server.
func MockOpener(mocks map[string]*MockDB) database.Opener {
	return func(ctx context.Context, dsn string) (*database.DB, error) {
		name := dsnValue(dsn, "dbname")
		m, ok := mocks[name]
		if !ok {
			return nil, fmt.Errorf("dial tcp: no mock for database %q", name)
		}
		return m.DB, nil
	}
}

func dsnValue(dsn, key string) string {
	for _, field := range strings.Fields(dsn) {
		if v, ok := strings.CutPrefix(field, key+"="); ok {
			return v
		}
	}
	return ""
}
