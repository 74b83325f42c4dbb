package schema

// Secondary indexes, created after every table exists.
var indexes = []Index{
	{Name: "idx_users_email", Table: "users", Columns: []string{"email"}},
	{Name: "idx_users_role", Table: "users", Columns: []string{"role"}},
	{Name: "idx_attendance_employee_date", Table: "attendance", Columns: []string{"employee_id", "date"}},
	{Name: "idx_leave_requests_employee", Table: "leave_requests", Columns: []string{"employee_id"}},
	{Name: "idx_leave_requests_status", Table: "leave_requests", Columns: []string{"status"}},
	{Name: "idx_leave_balances_employee", Table: "leave_balances", Columns: []string{"employee_id"}},
	{Name: "idx_document_collection_employee", Table: "document_collection", Columns: []string{"employee_id"}},
	{Name: "idx_document_collection_status", Table: "document_collection", Columns: []string{"status"}},
	{Name: "idx_expenses_employee", Table: "expenses", Columns: []string{"employee_id"}},
	{Name: "idx_expenses_status", Table: "expenses", Columns: []string{"status"}},
	{Name: "idx_employee_master_email", Table: "employee_master", Columns: []string{"email"}},
	{Name: "idx_employee_master_employee_id", Table: "employee_master", Columns: []string{"employee_id"}},
	{Name: "idx_managers_email", Table: "managers", Columns: []string{"email"}},
	{Name: "idx_managers_status", Table: "managers", Columns: []string{"status"}},
	{Name: "idx_onboarded_employees_user_id", Table: "onboarded_employees", Columns: []string{"user_id"}},
	{Name: "idx_onboarded_employees_status", Table: "onboarded_employees", Columns: []string{"status"}},
}
