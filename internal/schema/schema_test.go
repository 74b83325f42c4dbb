package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue_Counts(t *testing.T) {
	assert.Len(t, Tables(), 25)
	assert.Len(t, Indexes(), 16)
	assert.Len(t, Statements(), 25+16)
}

func TestValidateOrder(t *testing.T) {
	require.NoError(t, ValidateOrder())
}

func TestValidateOrder_DetectsForwardReference(t *testing.T) {
	saved := tables
	t.Cleanup(func() { tables = saved })

	// expense_attachments before expenses
	reordered := Tables()
	var expIdx, attIdx int
	for i, tbl := range reordered {
		switch tbl.Name {
		case "expenses":
			expIdx = i
		case "expense_attachments":
			attIdx = i
		}
	}
	reordered[expIdx], reordered[attIdx] = reordered[attIdx], reordered[expIdx]
	tables = reordered

	err := ValidateOrder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense_attachments.expense_id")
}

func TestTables_StartWithUsers(t *testing.T) {
	// Every other table references users, so it must come first
	assert.Equal(t, "users", Tables()[0].Name)
}

func TestTables_AreIdempotent(t *testing.T) {
	for _, tbl := range Tables() {
		assert.True(t, strings.HasPrefix(tbl.DDL, "CREATE TABLE IF NOT EXISTS "+tbl.Name+" ("), tbl.Name)
		assert.NotContains(t, strings.ToUpper(tbl.DDL), "DROP", tbl.Name)
	}
	for _, idx := range Indexes() {
		assert.True(t, strings.HasPrefix(idx.SQL(), "CREATE INDEX IF NOT EXISTS "), idx.Name)
	}
}

func TestTable_Columns(t *testing.T) {
	users, ok := Lookup("users")
	require.True(t, ok)

	names := make([]string, 0)
	for _, c := range users.Columns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"id", "email", "password", "role", "temp_password", "first_name", "last_name",
		"phone", "address", "emergency_contact_name", "emergency_contact_phone",
		"emergency_contact_relationship", "created_at", "updated_at",
	}, names)

	role, ok := users.Column("role")
	require.True(t, ok)
	assert.Equal(t, "VARCHAR(50) NOT NULL DEFAULT 'employee'", role.Definition)
	assert.True(t, role.NotNull())

	phone, _ := users.Column("phone")
	assert.False(t, phone.NotNull())

	id, _ := users.Column("id")
	assert.True(t, id.NotNull())

	_, ok = users.Column("updated")
	assert.False(t, ok)
}

func TestUniqueColumns(t *testing.T) {
	tests := []struct {
		table  string
		column string
	}{
		{"users", "email"},
		{"managers", "email"},
		{"employee_master", "email"},
		{"employee_master", "employee_id"},
		{"company_emails", "email"},
		{"departments", "name"},
		{"leave_types", "type_name"},
		{"attendance_settings", "setting_name"},
		{"system_settings", "setting_key"},
	}

	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			tbl, ok := Lookup(tt.table)
			require.True(t, ok)
			col, ok := tbl.Column(tt.column)
			require.True(t, ok)
			assert.True(t, col.Unique())
		})
	}

	tbl, _ := Lookup("onboarded_employees")
	col, _ := tbl.Column("company_email")
	assert.False(t, col.Unique())
}

func TestForeignKeys_DeleteRules(t *testing.T) {
	rules := make(map[string]string)
	for _, fk := range ForeignKeys() {
		rules[fk.Table+"."+fk.Column] = fk.OnDelete
	}

	cascade := []string{
		"leave_balances.employee_id",
		"leave_type_balances.employee_id",
		"leave_requests.employee_id",
		"monthly_leave_accruals.employee_id",
		"comp_off_balances.employee_id",
		"document_collection.employee_id",
		"employee_documents.employee_id",
		"expenses.employee_id",
		"expense_attachments.expense_id",
		"company_emails.user_id",
		"interns.user_id",
		"full_time_employees.user_id",
		"contract_employees.user_id",
	}
	for _, key := range cascade {
		assert.Equal(t, RuleCascade, rules[key], key)
	}

	setNull := []string{
		"departments.manager_id",
		"leave_requests.hr_id",
		"expenses.hr_id",
	}
	for _, key := range setNull {
		assert.Equal(t, RuleSetNull, rules[key], key)
	}

	noAction := []string{
		"employee_master.department_id",
		"leave_balances.leave_type_id",
		"manager_employee_mapping.manager_id",
		"manager_employee_mapping.employee_id",
		"attendance.employee_id",
		"document_collection.reviewed_by",
		"employee_documents.reviewed_by",
		"employee_forms.employee_id",
		"employee_forms.reviewed_by",
		"onboarded_employees.user_id",
		"onboarded_employees.assigned_by",
	}
	for _, key := range noAction {
		assert.Equal(t, RuleNoAction, rules[key], key)
	}

	assert.Len(t, rules, len(cascade)+len(setNull)+len(noAction))
}

func TestForeignKeys_UserReferencesAreNullable(t *testing.T) {
	for _, fk := range ForeignKeys() {
		if fk.ReferencedTable != "users" {
			continue
		}
		tbl, _ := Lookup(fk.Table)
		col, _ := tbl.Column(fk.Column)
		assert.False(t, col.NotNull(), fk.String())
	}
}

func TestBalanceTables_CarryYearPartition(t *testing.T) {
	for _, name := range []string{"leave_balances", "leave_type_balances", "comp_off_balances"} {
		tbl, ok := Lookup(name)
		require.True(t, ok)
		year, ok := tbl.Column("year")
		require.True(t, ok, name)
		assert.Equal(t, "INTEGER DEFAULT EXTRACT(YEAR FROM CURRENT_DATE)", year.Definition)
	}
}

func TestEmployeeForms_FormDataIsJSONB(t *testing.T) {
	tbl, _ := Lookup("employee_forms")
	col, ok := tbl.Column("form_data")
	require.True(t, ok)
	assert.Equal(t, "JSONB", col.Definition)
}

func TestIndex_SQL(t *testing.T) {
	idx := Index{Name: "idx_attendance_employee_date", Table: "attendance", Columns: []string{"employee_id", "date"}}
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS idx_attendance_employee_date ON attendance(employee_id, date)", idx.SQL())
}

func TestStatements_Order(t *testing.T) {
	stmts := Statements()

	assert.Equal(t, Statement{Kind: KindTable, Name: "users", SQL: Tables()[0].DDL}, stmts[0])
	assert.Equal(t, "table users", stmts[0].Label())

	last := stmts[len(stmts)-1]
	assert.Equal(t, KindIndex, last.Kind)
	assert.Equal(t, "idx_onboarded_employees_status", last.Name)

	// no table after the first index
	seenIndex := false
	for _, s := range stmts {
		if s.Kind == KindIndex {
			seenIndex = true
		} else {
			assert.False(t, seenIndex, "table %s after an index", s.Name)
		}
	}
}

func TestTables_ReturnsCopy(t *testing.T) {
	got := Tables()
	got[0].Name = "mutated"
	assert.Equal(t, "users", Tables()[0].Name)
}

func TestColumn_TypeAttributes(t *testing.T) {
	tests := []struct {
		table, column string
		dataType      string
		maxLength     int
		precision     int
		scale         int
		def           string
		serial        bool
	}{
		{"users", "id", "integer", 0, 0, 0, "", true},
		{"users", "email", "character varying", 255, 0, 0, "", false},
		{"users", "role", "character varying", 50, 0, 0, "'employee'", false},
		{"users", "address", "text", 0, 0, 0, "", false},
		{"users", "created_at", "timestamp without time zone", 0, 0, 0, "CURRENT_TIMESTAMP", false},
		{"attendance", "clock_in_time", "time without time zone", 0, 0, 0, "", false},
		{"attendance", "date", "date", 0, 0, 0, "", false},
		{"leave_types", "color", "character varying", 7, 0, 0, "'#3B82F6'", false},
		{"leave_types", "is_active", "boolean", 0, 0, 0, "true", false},
		{"leave_balances", "year", "integer", 0, 0, 0, "EXTRACT(YEAR FROM CURRENT_DATE)", false},
		{"monthly_leave_accruals", "accrued_days", "numeric", 0, 5, 2, "0", false},
		{"expenses", "amount", "numeric", 0, 10, 2, "", false},
		{"employee_forms", "form_data", "jsonb", 0, 0, 0, "", false},
		{"departments", "manager_id", "integer", 0, 0, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			tbl, ok := Lookup(tt.table)
			require.True(t, ok)
			c, ok := tbl.Column(tt.column)
			require.True(t, ok)

			assert.Equal(t, tt.dataType, c.DataType())
			assert.Equal(t, tt.maxLength, c.MaxLength())
			precision, scale := c.Numeric()
			assert.Equal(t, tt.precision, precision)
			assert.Equal(t, tt.scale, scale)
			assert.Equal(t, tt.def, c.Default())
			assert.Equal(t, tt.serial, c.Serial())
		})
	}
}

func TestColumns_AllTypesKnown(t *testing.T) {
	for _, tbl := range Tables() {
		for _, c := range tbl.Columns() {
			assert.NotEmpty(t, c.DataType(), "%s.%s: %s", tbl.Name, c.Name, c.Definition)
		}
	}
}
