// Package schema is the catalogue of the onboardd relational schema: the
// tables, secondary indexes and inline foreign keys the provisioner creates,
// in the order it creates them.
package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Delete rules as reported by information_schema.referential_constraints.
const (
	RuleNoAction = "NO ACTION"
	RuleCascade  = "CASCADE"
	RuleSetNull  = "SET NULL"
)

// Table is one CREATE TABLE IF NOT EXISTS statement.
type Table struct {
	Name string
	DDL  string
}

// Column is a column parsed from a table's DDL.
type Column struct {
	Name       string
	Definition string
}

// NotNull reports whether the column rejects NULL. Primary keys count.
func (c Column) NotNull() bool {
	def := strings.ToUpper(c.Definition)
	return strings.Contains(def, "NOT NULL") || strings.Contains(def, "PRIMARY KEY")
}

// Unique reports whether the column carries an inline UNIQUE constraint.
func (c Column) Unique() bool {
	return uniquePattern.MatchString(strings.ToUpper(c.Definition))
}

// Serial reports whether the column is backed by a sequence.
func (c Column) Serial() bool {
	return strings.HasPrefix(strings.ToUpper(c.Definition), "SERIAL")
}

// DataType returns the type as information_schema.columns.data_type spells
// it, or "" for a type the catalogue does not use.
func (c Column) DataType() string {
	m := typePattern.FindStringSubmatch(strings.ToUpper(c.Definition))
	if m == nil {
		return ""
	}
	name := m[1]
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return dataTypes[name]
}

// MaxLength returns n for VARCHAR(n) and 0 otherwise.
func (c Column) MaxLength() int {
	m := typePattern.FindStringSubmatch(strings.ToUpper(c.Definition))
	if m == nil || m[2] == "" {
		return 0
	}
	n, _ := strconv.Atoi(m[2])
	return n
}

// Numeric returns precision and scale for DECIMAL(p,s), and zeros otherwise.
func (c Column) Numeric() (precision, scale int) {
	m := typePattern.FindStringSubmatch(strings.ToUpper(c.Definition))
	if m == nil || m[3] == "" {
		return 0, 0
	}
	precision, _ = strconv.Atoi(m[3])
	scale, _ = strconv.Atoi(m[4])
	return precision, scale
}

// Default returns the DEFAULT expression as written, or "".
func (c Column) Default() string {
	m := defaultPattern.FindStringSubmatch(c.Definition)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ForeignKey is an inline REFERENCES clause.
type ForeignKey struct {
	Table            string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
	OnDelete         string
}

func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s.%s -> %s(%s) ON DELETE %s", fk.Table, fk.Column, fk.ReferencedTable, fk.ReferencedColumn, fk.OnDelete)
}

// Index is one CREATE INDEX IF NOT EXISTS statement.
type Index struct {
	Name    string
	Table   string
	Columns []string
}

// SQL renders the statement.
func (i Index) SQL() string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", i.Name, i.Table, strings.Join(i.Columns, ", "))
}

// Statement kinds
const (
	KindTable = "table"
	KindIndex = "index"
)

// Statement is one step of the provisioning plan.
type Statement struct {
	Kind string
	Name string
	SQL  string
}

// Label names the statement in logs and errors, e.g. "table users".
func (s Statement) Label() string {
	return s.Kind + " " + s.Name
}

// dataTypes maps catalogue type keywords to information_schema names.
var dataTypes = map[string]string{
	"SERIAL":                      "integer",
	"INTEGER":                     "integer",
	"TEXT":                        "text",
	"BOOLEAN":                     "boolean",
	"DATE":                        "date",
	"JSONB":                       "jsonb",
	"TIME":                        "time without time zone",
	"TIMESTAMP WITHOUT TIME ZONE": "timestamp without time zone",
	"VARCHAR":                     "character varying",
	"DECIMAL":                     "numeric",
}

var (
	typePattern       = regexp.MustCompile(`^(SERIAL|INTEGER|TEXT|BOOLEAN|DATE|JSONB|TIMESTAMP WITHOUT TIME ZONE|TIME|VARCHAR\((\d+)\)|DECIMAL\((\d+),\s*(\d+)\))(?:\s|$)`)
	defaultPattern    = regexp.MustCompile(`(?i)\bDEFAULT\s+(.+)$`)
	columnPattern     = regexp.MustCompile(`^([a-z_][a-z0-9_]*)\s+(.+?),?$`)
	referencesPattern = regexp.MustCompile(`REFERENCES\s+([a-z_][a-z0-9_]*)\s*\(\s*([a-z_][a-z0-9_]*)\s*\)(?:\s+ON\s+DELETE\s+(CASCADE|SET NULL|RESTRICT|NO ACTION))?`)
	uniquePattern     = regexp.MustCompile(`\bUNIQUE\b`)
)

// Columns parses the column list of the DDL in declaration order.
func (t Table) Columns() []Column {
	lines := strings.Split(t.DDL, "\n")
	columns := make([]Column, 0, len(lines))

	// First line is "CREATE TABLE ... (" and the last is ")"
	for _, line := range lines[1:] {
		m := columnPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		columns = append(columns, Column{Name: m[1], Definition: m[2]})
	}
	return columns
}

// Column looks a column up by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns() {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ForeignKeys returns the inline REFERENCES clauses of the table.
func (t Table) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, c := range t.Columns() {
		m := referencesPattern.FindStringSubmatch(c.Definition)
		if m == nil {
			continue
		}
		rule := m[3]
		if rule == "" {
			rule = RuleNoAction
		}
		fks = append(fks, ForeignKey{
			Table:            t.Name,
			Column:           c.Name,
			ReferencedTable:  m[1],
			ReferencedColumn: m[2],
			OnDelete:         rule,
		})
	}
	return fks
}

// Tables returns the table definitions in creation order.
func Tables() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

// Lookup finds a table by name.
func Lookup(name string) (Table, bool) {
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Indexes returns the secondary index definitions.
func Indexes() []Index {
	out := make([]Index, len(indexes))
	copy(out, indexes)
	return out
}

// ForeignKeys returns every inline foreign key of the catalogue.
func ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, t := range tables {
		fks = append(fks, t.ForeignKeys()...)
	}
	return fks
}

// Statements returns the full plan: tables first, then indexes.
func Statements() []Statement {
	stmts := make([]Statement, 0, len(tables)+len(indexes))
	for _, t := range tables {
		stmts = append(stmts, Statement{Kind: KindTable, Name: t.Name, SQL: t.DDL})
	}
	for _, i := range indexes {
		stmts = append(stmts, Statement{Kind: KindIndex, Name: i.Name, SQL: i.SQL()})
	}
	return stmts
}

// ValidateOrder checks that the catalogue can be applied front to back:
// table names are unique, every column has a known type, every foreign key
// points at an earlier table and an existing column, and every index
// targets existing columns.
func ValidateOrder() error {
	seen := make(map[string]Table, len(tables))

	for _, t := range tables {
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("table %s declared twice", t.Name)
		}
		if !strings.HasPrefix(t.DDL, "CREATE TABLE IF NOT EXISTS "+t.Name+" (") {
			return fmt.Errorf("table %s: DDL does not create %s idempotently", t.Name, t.Name)
		}
		seen[t.Name] = t

		for _, c := range t.Columns() {
			if c.DataType() == "" {
				return fmt.Errorf("column %s.%s has an unknown type: %s", t.Name, c.Name, c.Definition)
			}
		}

		for _, fk := range t.ForeignKeys() {
			target, ok := seen[fk.ReferencedTable]
			if !ok {
				return fmt.Errorf("%s: referenced table is not created earlier", fk)
			}
			if _, ok := target.Column(fk.ReferencedColumn); !ok {
				return fmt.Errorf("%s: referenced column does not exist", fk)
			}
		}
	}

	names := make(map[string]bool, len(indexes))
	for _, i := range indexes {
		if names[i.Name] {
			return fmt.Errorf("index %s declared twice", i.Name)
		}
		names[i.Name] = true

		t, ok := seen[i.Table]
		if !ok {
			return fmt.Errorf("index %s targets unknown table %s", i.Name, i.Table)
		}
		for _, col := range i.Columns {
			if _, ok := t.Column(col); !ok {
				return fmt.Errorf("index %s targets unknown column %s.%s", i.Name, i.Table, col)
			}
		}
	}
	return nil
}
