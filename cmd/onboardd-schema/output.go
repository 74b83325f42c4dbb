package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nxzen/onboardd/internal/inspect"
	"github.com/nxzen/onboardd/internal/provisioner"
	"github.com/nxzen/onboardd/internal/schema"
	"github.com/nxzen/onboardd/pkg/config"
	"github.com/nxzen/onboardd/pkg/database"
	"github.com/nxzen/onboardd/pkg/errors"
)

// printer renders operator-facing output. Structured logs go to stderr.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) println(a ...any) {
	_, _ = fmt.Fprintln(p.w, a...)
}

func (p *printer) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.w, format, a...)
}

func (p *printer) banner(db *config.DatabaseConfig) {
	p.println("🚀 Starting onboardd database schema creation...")
	p.println(strings.Repeat("=", 50))
	p.println()
	p.println("📋 Before running, please ensure:")
	p.println("1. PostgreSQL is installed and running")
	p.println("2. The connection settings point at your server (flags, ONBOARDD_DATABASE_* or DB_* variables)")
	p.println("3. The user has permission to create databases and tables")
	p.println()
	p.printf("🎯 Target: %s@%s, database %q (via %q)\n", db.User, db.Address(), db.Database, db.AdminDatabase)
	p.println()
}

func (p *printer) cancelled() {
	p.println("❌ Database creation cancelled")
}

// progress returns an observer printing one line per step.
func (p *printer) progress(dbName string) provisioner.Observer {
	return func(ev provisioner.Event) {
		if ev.Statement != nil {
			if ev.Statement.Kind == schema.KindTable {
				p.printf("✅ Created %s table\n", ev.Statement.Name)
			}
			return
		}

		switch ev.State {
		case provisioner.StateDatabaseEnsured:
			if ev.DatabaseCreated {
				p.printf("✅ Database '%s' created successfully\n", dbName)
			} else {
				p.printf("ℹ️  Database '%s' already exists\n", dbName)
			}
		case provisioner.StateTargetConnected:
			p.println("🔧 Creating database schema...")
		case provisioner.StateIndexesEnsured:
			p.println("✅ Created all indexes")
			p.println("✅ Foreign key constraints are already defined in table creation")
		case provisioner.StateCommitted:
			p.println("✅ Database schema created successfully!")
		}
	}
}

func (p *printer) failure(err error) {
	p.printf("❌ Error creating database schema: %v\n", err)
	if hint := failureHint(err); hint != "" {
		p.printf("💡 %s\n", hint)
	}
}

func failureHint(err error) string {
	if mapped := database.MapPQError(err); mapped != nil {
		return mapped.Message
	}
	if errors.Is(err, errors.ErrConnection) {
		return "check that PostgreSQL is running and the connection settings are correct"
	}
	return ""
}

func (p *printer) summary(res *provisioner.Result) {
	p.println()
	p.println("🎉 Database schema creation completed!")
	p.println()

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "database\t%s\n", res.Database)
	_, _ = fmt.Fprintf(w, "created\t%t\n", res.DatabaseCreated)
	_, _ = fmt.Fprintf(w, "tables\t%d\n", res.Tables)
	_, _ = fmt.Fprintf(w, "indexes\t%d\n", res.Indexes)
	_, _ = fmt.Fprintf(w, "foreign keys\t%d\n", res.ForeignKeys)
	_, _ = fmt.Fprintf(w, "duration\t%s\n", res.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(w, "run id\t%s\n", res.RunID)
	_ = w.Flush()

	p.println()
	p.println("📝 Next steps:")
	p.println("1. Update your application's database configuration")
	p.println("2. Run any necessary migrations")
	p.println("3. Start your application")
	p.println()
	p.println("💡 The database now contains all tables but no data.")
	p.println("   You can start adding data through your application.")
}

func (p *printer) report(dbName string, r *inspect.Report) {
	p.printf("Database %q: %d of %d tables present\n", dbName, len(r.PresentTables), len(r.PresentTables)+len(r.MissingTables))

	if r.Complete() {
		p.println("✅ Schema matches the catalogue")
		return
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tOBJECT\tPROBLEM")
	for _, t := range r.MissingTables {
		_, _ = fmt.Fprintf(w, "table\t%s\tmissing\n", t)
	}
	for _, c := range r.MissingColumns {
		_, _ = fmt.Fprintf(w, "column\t%s\tmissing\n", c)
	}
	for _, c := range r.UnexpectedColumns {
		_, _ = fmt.Fprintf(w, "column\t%s\tnot in catalogue\n", c)
	}
	for _, m := range r.MismatchedColumns {
		_, _ = fmt.Fprintf(w, "column\t%s\t%s %s, want %s\n", m.Column, m.Attribute, valueOrNone(m.Actual), valueOrNone(m.Expected))
	}
	for _, i := range r.MissingIndexes {
		_, _ = fmt.Fprintf(w, "index\t%s\tmissing\n", i)
	}
	for _, m := range r.MismatchedIndexes {
		_, _ = fmt.Fprintf(w, "index\t%s\ton %s(%s), found %s\n", m.Expected.Name, m.Expected.Table, strings.Join(m.Expected.Columns, ", "), m.Actual)
	}
	for _, m := range r.MismatchedForeignKeys {
		problem := "missing"
		if m.Actual != "" {
			problem = fmt.Sprintf("ON DELETE %s, want %s", m.Actual, m.Expected.OnDelete)
		}
		_, _ = fmt.Fprintf(w, "foreign key\t%s.%s\t%s\n", m.Expected.Table, m.Expected.Column, problem)
	}
	_ = w.Flush()
}

func valueOrNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func (p *printer) plan(stmts []schema.Statement, withSQL bool) {
	if withSQL {
		for _, s := range stmts {
			p.printf("-- %s\n%s;\n\n", s.Label(), s.SQL)
		}
		return
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tKIND\tNAME")
	for i, s := range stmts {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, s.Kind, s.Name)
	}
	_ = w.Flush()
}
