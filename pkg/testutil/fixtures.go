package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// UserFixture is a row of the users table
type UserFixture struct {
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	Role         string `db:"role"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
}

// LeaveTypeFixture is a row of the leave_types table
type LeaveTypeFixture struct {
	TypeName string `db:"type_name"`
	MaxDays  int    `db:"max_days"`
}

// LeaveRequestFixture is a row of the leave_requests table
type LeaveRequestFixture struct {
	EmployeeID int       `db:"employee_id"`
	LeaveType  string    `db:"leave_type"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	TotalDays  int       `db:"total_days"`
	HRID       *int      `db:"hr_id"`
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// User creates a user fixture with defaults
func (f *FixtureFactory) User(opts ...func(*UserFixture)) UserFixture {
	seq := f.nextSeq()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	user := UserFixture{
		Email:        fmt.Sprintf("user%d@test.onboardd.local", seq),
		PasswordHash: string(hash),
		Role:         "employee",
		FirstName:    fmt.Sprintf("Test%d", seq),
		LastName:     "User",
	}

	for _, opt := range opts {
		opt(&user)
	}

	return user
}

// WithEmail sets the user email
func WithEmail(email string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Email = email
	}
}

// WithName sets the user's first and last name
func WithName(first, last string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.FirstName = first
		u.LastName = last
	}
}

// WithPassword sets the user password (hashed)
func WithPassword(password string) func(*UserFixture) {
	return func(u *UserFixture) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

// WithRole sets the user's role, e.g. "hr" or "manager"
func WithRole(role string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Role = role
	}
}

// LeaveType creates a leave type fixture with defaults
func (f *FixtureFactory) LeaveType(opts ...func(*LeaveTypeFixture)) LeaveTypeFixture {
	seq := f.nextSeq()

	lt := LeaveTypeFixture{
		TypeName: fmt.Sprintf("Leave Type %d", seq),
		MaxDays:  12,
	}

	for _, opt := range opts {
		opt(&lt)
	}

	return lt
}

// WithTypeName sets the leave type name
func WithTypeName(name string) func(*LeaveTypeFixture) {
	return func(lt *LeaveTypeFixture) {
		lt.TypeName = name
	}
}

// LeaveRequest creates a five day pending request for employeeID
func (f *FixtureFactory) LeaveRequest(employeeID int, opts ...func(*LeaveRequestFixture)) LeaveRequestFixture {
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	req := LeaveRequestFixture{
		EmployeeID: employeeID,
		LeaveType:  "Annual",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 4),
		TotalDays:  5,
	}

	for _, opt := range opts {
		opt(&req)
	}

	return req
}

// WithReviewer sets the HR user reviewing the request
func WithReviewer(hrID int) func(*LeaveRequestFixture) {
	return func(r *LeaveRequestFixture) {
		r.HRID = &hrID
	}
}

// InsertUser stores the fixture and returns its id
func InsertUser(ctx context.Context, db sqlx.ExtContext, u UserFixture) (int, error) {
	return insertReturningID(ctx, db, `
		INSERT INTO users (email, password, role, first_name, last_name)
		VALUES (:email, :password, :role, :first_name, :last_name)
		RETURNING id
	`, u)
}

// InsertLeaveType stores the fixture and returns its id
func InsertLeaveType(ctx context.Context, db sqlx.ExtContext, lt LeaveTypeFixture) (int, error) {
	return insertReturningID(ctx, db, `
		INSERT INTO leave_types (type_name, max_days)
		VALUES (:type_name, :max_days)
		RETURNING id
	`, lt)
}

// InsertLeaveRequest stores the fixture and returns its id
func InsertLeaveRequest(ctx context.Context, db sqlx.ExtContext, r LeaveRequestFixture) (int, error) {
	return insertReturningID(ctx, db, `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, total_days, hr_id)
		VALUES (:employee_id, :leave_type, :start_date, :end_date, :total_days, :hr_id)
		RETURNING id
	`, r)
}

func insertReturningID(ctx context.Context, db sqlx.ExtContext, query string, arg any) (int, error) {
	named, args, err := sqlx.Named(query, arg)
	if err != nil {
		return 0, fmt.Errorf("failed to bind fixture: %w", err)
	}

	var id int
	if err := sqlx.GetContext(ctx, db, &id, db.Rebind(named), args...); err != nil {
		return 0, err
	}
	return id, nil
}
