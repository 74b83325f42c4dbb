package schema

// Table definitions in creation order. Every REFERENCES target is declared
// before the table that points at it.
var tables = []Table{
	{
		Name: "users",
		DDL: `CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'employee',
	temp_password VARCHAR(255),
	first_name VARCHAR(100),
	last_name VARCHAR(100),
	phone VARCHAR(20),
	address TEXT,
	emergency_contact_name VARCHAR(100),
	emergency_contact_phone VARCHAR(20),
	emergency_contact_relationship VARCHAR(50),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "managers",
		DDL: `CREATE TABLE IF NOT EXISTS managers (
	manager_id SERIAL PRIMARY KEY,
	manager_name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	department VARCHAR(100),
	designation VARCHAR(100),
	status VARCHAR(20) DEFAULT 'active',
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "departments",
		DDL: `CREATE TABLE IF NOT EXISTS departments (
	id SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL UNIQUE,
	description TEXT,
	manager_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
	is_active BOOLEAN DEFAULT true,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "employee_master",
		DDL: `CREATE TABLE IF NOT EXISTS employee_master (
	id SERIAL PRIMARY KEY,
	employee_id VARCHAR(10) UNIQUE,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	phone VARCHAR(20),
	department_id INTEGER REFERENCES departments(id),
	designation VARCHAR(100),
	employment_type VARCHAR(50) DEFAULT 'Full-Time',
	joining_date DATE,
	status VARCHAR(20) DEFAULT 'active',
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "manager_employee_mapping",
		DDL: `CREATE TABLE IF NOT EXISTS manager_employee_mapping (
	id SERIAL PRIMARY KEY,
	manager_id INTEGER REFERENCES users(id),
	employee_id INTEGER REFERENCES users(id),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "attendance",
		DDL: `CREATE TABLE IF NOT EXISTS attendance (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id),
	date DATE NOT NULL,
	clock_in_time TIME,
	clock_out_time TIME,
	reason TEXT,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "attendance_settings",
		DDL: `CREATE TABLE IF NOT EXISTS attendance_settings (
	id SERIAL PRIMARY KEY,
	setting_name VARCHAR(100) NOT NULL UNIQUE,
	setting_value TEXT,
	description TEXT,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "leave_types",
		DDL: `CREATE TABLE IF NOT EXISTS leave_types (
	id SERIAL PRIMARY KEY,
	type_name VARCHAR(100) NOT NULL UNIQUE,
	description TEXT,
	max_days INTEGER,
	color VARCHAR(7) DEFAULT '#3B82F6',
	is_active BOOLEAN DEFAULT true,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "leave_balances",
		DDL: `CREATE TABLE IF NOT EXISTS leave_balances (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	leave_type_id INTEGER REFERENCES leave_types(id),
	total_days INTEGER DEFAULT 0,
	used_days INTEGER DEFAULT 0,
	remaining_days INTEGER DEFAULT 0,
	year INTEGER DEFAULT EXTRACT(YEAR FROM CURRENT_DATE),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "leave_type_balances",
		DDL: `CREATE TABLE IF NOT EXISTS leave_type_balances (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	leave_type VARCHAR(100) NOT NULL,
	total_balance INTEGER DEFAULT 0,
	used_balance INTEGER DEFAULT 0,
	remaining_balance INTEGER DEFAULT 0,
	year INTEGER DEFAULT EXTRACT(YEAR FROM CURRENT_DATE),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "leave_requests",
		DDL: `CREATE TABLE IF NOT EXISTS leave_requests (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	leave_type VARCHAR(100) NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	total_days INTEGER NOT NULL,
	reason TEXT,
	status VARCHAR(20) DEFAULT 'pending',
	hr_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
	hr_comments TEXT,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "monthly_leave_accruals",
		DDL: `CREATE TABLE IF NOT EXISTS monthly_leave_accruals (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	leave_type VARCHAR(100) NOT NULL,
	month INTEGER NOT NULL,
	year INTEGER NOT NULL,
	accrued_days DECIMAL(5,2) DEFAULT 0,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "comp_off_balances",
		DDL: `CREATE TABLE IF NOT EXISTS comp_off_balances (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	total_balance INTEGER DEFAULT 0,
	used_balance INTEGER DEFAULT 0,
	remaining_balance INTEGER DEFAULT 0,
	year INTEGER DEFAULT EXTRACT(YEAR FROM CURRENT_DATE),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "document_collection",
		DDL: `CREATE TABLE IF NOT EXISTS document_collection (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	document_name VARCHAR(255) NOT NULL,
	document_type VARCHAR(100),
	file_path VARCHAR(500),
	file_size INTEGER,
	mime_type VARCHAR(100),
	status VARCHAR(20) DEFAULT 'pending',
	uploaded_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	reviewed_at TIMESTAMP WITHOUT TIME ZONE,
	reviewed_by INTEGER REFERENCES users(id),
	comments TEXT
)`,
	},
	{
		Name: "document_templates",
		DDL: `CREATE TABLE IF NOT EXISTS document_templates (
	id SERIAL PRIMARY KEY,
	template_name VARCHAR(255) NOT NULL,
	template_description TEXT,
	employment_type VARCHAR(50),
	is_required BOOLEAN DEFAULT false,
	is_active BOOLEAN DEFAULT true,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "employee_documents",
		DDL: `CREATE TABLE IF NOT EXISTS employee_documents (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	document_name VARCHAR(255) NOT NULL,
	document_type VARCHAR(100),
	file_path VARCHAR(500),
	file_size INTEGER,
	mime_type VARCHAR(100),
	status VARCHAR(20) DEFAULT 'pending',
	uploaded_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	reviewed_at TIMESTAMP WITHOUT TIME ZONE,
	reviewed_by INTEGER REFERENCES users(id),
	comments TEXT
)`,
	},
	{
		Name: "employee_forms",
		DDL: `CREATE TABLE IF NOT EXISTS employee_forms (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id),
	form_type VARCHAR(100) NOT NULL,
	form_data JSONB,
	status VARCHAR(20) DEFAULT 'pending',
	submitted_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	reviewed_at TIMESTAMP WITHOUT TIME ZONE,
	reviewed_by INTEGER REFERENCES users(id),
	comments TEXT
)`,
	},
	{
		Name: "expenses",
		DDL: `CREATE TABLE IF NOT EXISTS expenses (
	id SERIAL PRIMARY KEY,
	employee_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	expense_type VARCHAR(100) NOT NULL,
	amount DECIMAL(10,2) NOT NULL,
	description TEXT,
	date DATE NOT NULL,
	status VARCHAR(20) DEFAULT 'pending',
	hr_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
	hr_comments TEXT,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "expense_attachments",
		DDL: `CREATE TABLE IF NOT EXISTS expense_attachments (
	id SERIAL PRIMARY KEY,
	expense_id INTEGER REFERENCES expenses(id) ON DELETE CASCADE,
	file_name VARCHAR(255) NOT NULL,
	file_path VARCHAR(500) NOT NULL,
	file_size INTEGER,
	mime_type VARCHAR(100),
	uploaded_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "company_emails",
		DDL: `CREATE TABLE IF NOT EXISTS company_emails (
	id SERIAL PRIMARY KEY,
	user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	email VARCHAR(255) NOT NULL UNIQUE,
	is_primary BOOLEAN DEFAULT false,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "onboarded_employees",
		DDL: `CREATE TABLE IF NOT EXISTS onboarded_employees (
	id SERIAL PRIMARY KEY,
	user_id INTEGER REFERENCES users(id),
	employee_name VARCHAR(100),
	company_email VARCHAR(255),
	manager VARCHAR(100),
	manager2 VARCHAR(100),
	manager3 VARCHAR(100),
	status VARCHAR(20) DEFAULT 'pending',
	assigned_by INTEGER REFERENCES users(id),
	assigned_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "system_settings",
		DDL: `CREATE TABLE IF NOT EXISTS system_settings (
	id SERIAL PRIMARY KEY,
	setting_key VARCHAR(100) NOT NULL UNIQUE,
	setting_value TEXT,
	description TEXT,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "interns",
		DDL: `CREATE TABLE IF NOT EXISTS interns (
	id SERIAL PRIMARY KEY,
	user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	internship_duration INTEGER,
	mentor_name VARCHAR(100),
	project_name VARCHAR(255),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "full_time_employees",
		DDL: `CREATE TABLE IF NOT EXISTS full_time_employees (
	id SERIAL PRIMARY KEY,
	user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	probation_period INTEGER,
	notice_period INTEGER,
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
	{
		Name: "contract_employees",
		DDL: `CREATE TABLE IF NOT EXISTS contract_employees (
	id SERIAL PRIMARY KEY,
	user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
	contract_start_date DATE,
	contract_end_date DATE,
	contract_value DECIMAL(12,2),
	created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`,
	},
}
