// Package inspect compares a live database against the schema catalogue
// without modifying it.
package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/nxzen/onboardd/internal/schema"
	"github.com/nxzen/onboardd/pkg/database"
	"github.com/nxzen/onboardd/pkg/errors"
	"github.com/nxzen/onboardd/pkg/logger"
)

// ColumnRef names a column of a table.
type ColumnRef struct {
	Table  string `db:"table_name"`
	Column string `db:"column_name"`
}

func (c ColumnRef) String() string {
	return c.Table + "." + c.Column
}

// ColumnMismatch is a column whose type, nullability or default differs
// from the catalogue.
type ColumnMismatch struct {
	Column    ColumnRef
	Attribute string
	Expected  string
	Actual    string
}

func (m ColumnMismatch) String() string {
	return fmt.Sprintf("%s %s is %s, want %s", m.Column, m.Attribute, orNone(m.Actual), orNone(m.Expected))
}

// IndexMismatch is a catalogue index that exists under the expected name
// but covers a different table or column list.
type IndexMismatch struct {
	Expected schema.Index
	Actual   string
}

func (m IndexMismatch) String() string {
	return fmt.Sprintf("%s is %q, want ON %s(%s)", m.Expected.Name, m.Actual, m.Expected.Table, strings.Join(m.Expected.Columns, ", "))
}

// ForeignKeyMismatch is a catalogue foreign key that is absent or whose
// delete rule differs. Actual is empty when the constraint is missing.
type ForeignKeyMismatch struct {
	Expected schema.ForeignKey
	Actual   string
}

func (m ForeignKeyMismatch) String() string {
	if m.Actual == "" {
		return m.Expected.String() + " (missing)"
	}
	return fmt.Sprintf("%s (found ON DELETE %s)", m.Expected, m.Actual)
}

// Report lists every difference between the database and the catalogue.
type Report struct {
	PresentTables         []string
	MissingTables         []string
	MissingColumns        []ColumnRef
	UnexpectedColumns     []ColumnRef
	MismatchedColumns     []ColumnMismatch
	MissingIndexes        []string
	MismatchedIndexes     []IndexMismatch
	MismatchedForeignKeys []ForeignKeyMismatch
}

// Complete reports whether the database matches the catalogue.
func (r *Report) Complete() bool {
	return len(r.MissingTables) == 0 &&
		len(r.MissingColumns) == 0 &&
		len(r.UnexpectedColumns) == 0 &&
		len(r.MismatchedColumns) == 0 &&
		len(r.MissingIndexes) == 0 &&
		len(r.MismatchedIndexes) == 0 &&
		len(r.MismatchedForeignKeys) == 0
}

// Err returns a SchemaIncomplete error describing the differences, or nil.
func (r *Report) Err() error {
	if r.Complete() {
		return nil
	}

	details := make(map[string]string)
	if len(r.MissingTables) > 0 {
		details["missing_tables"] = strings.Join(r.MissingTables, ", ")
	}
	if len(r.MissingColumns) > 0 {
		details["missing_columns"] = joinStrings(r.MissingColumns)
	}
	if len(r.UnexpectedColumns) > 0 {
		details["unexpected_columns"] = joinStrings(r.UnexpectedColumns)
	}
	if len(r.MismatchedColumns) > 0 {
		details["column_mismatches"] = joinStrings(r.MismatchedColumns)
	}
	if len(r.MissingIndexes) > 0 {
		details["missing_indexes"] = strings.Join(r.MissingIndexes, ", ")
	}
	if len(r.MismatchedIndexes) > 0 {
		details["index_mismatches"] = joinStrings(r.MismatchedIndexes)
	}
	if len(r.MismatchedForeignKeys) > 0 {
		details["foreign_keys"] = joinStrings(r.MismatchedForeignKeys)
	}
	return errors.SchemaIncomplete(details)
}

// Inspector reads the public schema of one database.
type Inspector struct {
	db      *database.DB
	log     *logger.Logger
	tables  []schema.Table
	indexes []schema.Index
}

// New creates an inspector for the catalogue.
func New(db *database.DB, log *logger.Logger) *Inspector {
	if log == nil {
		log = logger.Nop()
	}
	return &Inspector{
		db:      db,
		log:     log.WithComponent("inspect"),
		tables:  schema.Tables(),
		indexes: schema.Indexes(),
	}
}

type columnRow struct {
	ColumnRef
	DataType  string         `db:"data_type"`
	MaxLength sql.NullInt64  `db:"character_maximum_length"`
	Precision sql.NullInt64  `db:"numeric_precision"`
	Scale     sql.NullInt64  `db:"numeric_scale"`
	Nullable  string         `db:"is_nullable"`
	Default   sql.NullString `db:"column_default"`
}

type indexRow struct {
	Name       string `db:"indexname"`
	Table      string `db:"tablename"`
	Definition string `db:"indexdef"`
}

type foreignKeyRow struct {
	Table      string `db:"table_name"`
	Column     string `db:"column_name"`
	Referenced string `db:"referenced_table"`
	DeleteRule string `db:"delete_rule"`
}

const (
	tablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	columnsQuery = `
		SELECT table_name, column_name, data_type, character_maximum_length,
			numeric_precision, numeric_scale, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = 'public'
		ORDER BY table_name, ordinal_position
	`

	indexesQuery = `
		SELECT indexname, tablename, indexdef
		FROM pg_indexes
		WHERE schemaname = 'public'
	`

	foreignKeysQuery = `
		SELECT kcu.table_name, kcu.column_name, ccu.table_name AS referenced_table, rc.delete_rule
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = rc.constraint_name AND kcu.constraint_schema = rc.constraint_schema
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = rc.unique_constraint_name AND ccu.constraint_schema = rc.unique_constraint_schema
		WHERE rc.constraint_schema = 'public'
	`
)

// Inspect compares the database with the catalogue.
func (i *Inspector) Inspect(ctx context.Context) (*Report, error) {
	var present []string
	if err := i.db.SelectContext(ctx, &present, tablesQuery); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var columns []columnRow
	if err := i.db.SelectContext(ctx, &columns, columnsQuery); err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	var indexRows []indexRow
	if err := i.db.SelectContext(ctx, &indexRows, indexesQuery); err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}

	var fkRows []foreignKeyRow
	if err := i.db.SelectContext(ctx, &fkRows, foreignKeysQuery); err != nil {
		return nil, fmt.Errorf("failed to list foreign keys: %w", err)
	}

	report := i.compare(present, columns, indexRows, fkRows)
	i.log.Info().
		Int("tables_present", len(report.PresentTables)).
		Int("tables_missing", len(report.MissingTables)).
		Int("columns_mismatched", len(report.MismatchedColumns)).
		Int("indexes_missing", len(report.MissingIndexes)).
		Bool("complete", report.Complete()).
		Msg("schema inspected")
	return report, nil
}

func (i *Inspector) compare(present []string, columns []columnRow, indexRows []indexRow, fkRows []foreignKeyRow) *Report {
	report := &Report{}

	tableSet := toSet(present)
	actualColumns := make(map[string]map[string]columnRow)
	for _, c := range columns {
		if actualColumns[c.Table] == nil {
			actualColumns[c.Table] = make(map[string]columnRow)
		}
		actualColumns[c.Table][c.Column] = c
	}

	for _, t := range i.tables {
		if !tableSet[t.Name] {
			report.MissingTables = append(report.MissingTables, t.Name)
			continue
		}
		report.PresentTables = append(report.PresentTables, t.Name)

		expected := make(map[string]bool)
		for _, c := range t.Columns() {
			expected[c.Name] = true
			ref := ColumnRef{Table: t.Name, Column: c.Name}
			actual, ok := actualColumns[t.Name][c.Name]
			if !ok {
				report.MissingColumns = append(report.MissingColumns, ref)
				continue
			}
			report.MismatchedColumns = append(report.MismatchedColumns, compareColumn(ref, c, actual)...)
		}
		// Only catalogue tables are checked for extra columns
		extra := make([]string, 0)
		for name := range actualColumns[t.Name] {
			if !expected[name] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		for _, name := range extra {
			report.UnexpectedColumns = append(report.UnexpectedColumns, ColumnRef{Table: t.Name, Column: name})
		}
	}

	actualIndexes := make(map[string]indexRow, len(indexRows))
	for _, row := range indexRows {
		actualIndexes[row.Name] = row
	}
	for _, idx := range i.indexes {
		row, ok := actualIndexes[idx.Name]
		if !ok {
			report.MissingIndexes = append(report.MissingIndexes, idx.Name)
			continue
		}
		table, cols := indexTarget(row.Definition)
		if table != idx.Table || !slices.Equal(cols, idx.Columns) {
			report.MismatchedIndexes = append(report.MismatchedIndexes, IndexMismatch{Expected: idx, Actual: row.Definition})
		}
	}

	actualRules := make(map[string]string, len(fkRows))
	for _, row := range fkRows {
		actualRules[fkKey(row.Table, row.Column, row.Referenced)] = row.DeleteRule
	}
	for _, t := range i.tables {
		if !tableSet[t.Name] {
			continue
		}
		for _, fk := range t.ForeignKeys() {
			rule, ok := actualRules[fkKey(fk.Table, fk.Column, fk.ReferencedTable)]
			if ok && rule == fk.OnDelete {
				continue
			}
			report.MismatchedForeignKeys = append(report.MismatchedForeignKeys, ForeignKeyMismatch{Expected: fk, Actual: rule})
		}
	}

	return report
}

func compareColumn(ref ColumnRef, want schema.Column, got columnRow) []ColumnMismatch {
	var out []ColumnMismatch

	precision, scale := want.Numeric()
	wantType := formatType(want.DataType(), int64(want.MaxLength()), int64(precision), int64(scale))
	gotType := formatType(got.DataType, got.MaxLength.Int64, got.Precision.Int64, got.Scale.Int64)
	if wantType != gotType {
		out = append(out, ColumnMismatch{Column: ref, Attribute: "type", Expected: wantType, Actual: gotType})
	}

	wantNull, gotNull := "NULL", "NULL"
	if want.NotNull() {
		wantNull = "NOT NULL"
	}
	if got.Nullable == "NO" {
		gotNull = "NOT NULL"
	}
	if wantNull != gotNull {
		out = append(out, ColumnMismatch{Column: ref, Attribute: "nullability", Expected: wantNull, Actual: gotNull})
	}

	if !defaultMatches(want, got.Default.String) {
		wantDefault := want.Default()
		if want.Serial() {
			wantDefault = "nextval(...)"
		}
		out = append(out, ColumnMismatch{Column: ref, Attribute: "default", Expected: wantDefault, Actual: got.Default.String})
	}
	return out
}

// formatType renders a type with the modifiers that matter for it, e.g.
// "character varying(255)" or "numeric(10,2)".
func formatType(dataType string, maxLength, precision, scale int64) string {
	switch {
	case dataType == "character varying" && maxLength > 0:
		return fmt.Sprintf("%s(%d)", dataType, maxLength)
	case dataType == "numeric" && precision > 0:
		return fmt.Sprintf("%s(%d,%d)", dataType, precision, scale)
	default:
		return dataType
	}
}

var (
	castPattern     = regexp.MustCompile(`::[a-z ]+`)
	stripDefault    = strings.NewReplacer("(", "", ")", "", " ", "")
	indexDefPattern = regexp.MustCompile(`\bON\s+(?:\S+\.)?"?([^\s."]+)"?\s+USING\s+\w+\s+\((.*)\)`)
)

// defaultAliases folds spellings that PostgreSQL versions print differently.
var defaultAliases = map[string]string{
	"date_part'year',current_date": "extractyearfromcurrent_date",
	"now":                          "current_timestamp",
}

func defaultMatches(want schema.Column, got string) bool {
	if want.Serial() {
		return strings.HasPrefix(got, "nextval(")
	}
	return normalizeDefault(want.Default()) == normalizeDefault(got)
}

// normalizeDefault reduces a default expression to a comparable form by
// dropping casts, parentheses, whitespace and case.
func normalizeDefault(expr string) string {
	s := strings.ToLower(expr)
	s = castPattern.ReplaceAllString(s, "")
	s = stripDefault.Replace(s)
	if alias, ok := defaultAliases[s]; ok {
		return alias
	}
	return s
}

// indexTarget extracts the table and column list from a pg_indexes.indexdef
// such as "CREATE INDEX idx ON public.users USING btree (email)".
func indexTarget(def string) (string, []string) {
	m := indexDefPattern.FindStringSubmatch(def)
	if m == nil {
		return "", nil
	}
	parts := strings.Split(m[2], ",")
	cols := make([]string, len(parts))
	for i, p := range parts {
		cols[i] = strings.Trim(strings.TrimSpace(p), `"`)
	}
	return m[1], cols
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func fkKey(table, column, referenced string) string {
	return table + "." + column + "->" + referenced
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func joinStrings[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}
