// Package provisioner creates the onboardd database and applies the schema
// catalogue to it.
//
// A run walks a single linear path:
//
//	disconnected → connected(server) → database-ensured → connected(target)
//	→ tables-ensured → indexes-ensured → committed
//
// and ends in rolled-back when any step fails. CREATE DATABASE runs in
// autocommit mode on the administrative database and survives a later
// failure; every table and index statement shares one transaction.
package provisioner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nxzen/onboardd/internal/schema"
	"github.com/nxzen/onboardd/pkg/config"
	"github.com/nxzen/onboardd/pkg/database"
	"github.com/nxzen/onboardd/pkg/errors"
	"github.com/nxzen/onboardd/pkg/logger"
)

// State is a step of the provisioning state machine.
type State string

const (
	StateDisconnected    State = "disconnected"
	StateServerConnected State = "connected(server)"
	StateDatabaseEnsured State = "database-ensured"
	StateTargetConnected State = "connected(target)"
	StateTablesEnsured   State = "tables-ensured"
	StateIndexesEnsured  State = "indexes-ensured"
	StateCommitted       State = "committed"
	StateRolledBack      State = "rolled-back"
)

// Event is delivered to the observer on every state change and after every
// executed statement.
type Event struct {
	State State
	// Statement is set when the event reports an executed statement.
	Statement *schema.Statement
	// DatabaseCreated is meaningful for StateDatabaseEnsured.
	DatabaseCreated bool
	Err             error
}

// Observer receives progress events. It runs on the provisioning goroutine.
type Observer func(Event)

// Result summarises a run.
type Result struct {
	RunID           string
	Database        string
	State           State
	FailedAt        State
	DatabaseCreated bool
	Tables          int
	Indexes         int
	ForeignKeys     int
	Duration        time.Duration
}

// Provisioner applies the schema catalogue to a PostgreSQL server.
type Provisioner struct {
	cfg      *config.DatabaseConfig
	open     database.Opener
	log      *logger.Logger
	observer Observer
	runID    string
	tables   []schema.Table
	indexes  []schema.Index
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithOpener replaces the connection factory.
func WithOpener(open database.Opener) Option {
	return func(p *Provisioner) { p.open = open }
}

// WithObserver registers a progress callback.
func WithObserver(fn Observer) Option {
	return func(p *Provisioner) { p.observer = fn }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(p *Provisioner) { p.runID = id }
}

// New creates a provisioner for the configured server and target database.
func New(cfg *config.DatabaseConfig, log *logger.Logger, opts ...Option) *Provisioner {
	if log == nil {
		log = logger.Nop()
	}
	p := &Provisioner{
		cfg:     cfg,
		tables:  schema.Tables(),
		indexes: schema.Indexes(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runID == "" {
		p.runID = uuid.New().String()
	}
	p.log = log.WithRunID(p.runID).WithDatabase(cfg.Database).WithComponent("provisioner")
	if p.open == nil {
		p.open = database.NewOpener(p.log)
	}
	return p
}

// RunID identifies this provisioner's runs in logs.
func (p *Provisioner) RunID() string {
	return p.runID
}

// Run executes the full provisioning sequence. The returned Result is
// populated even on failure and records the state reached.
func (p *Provisioner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:    p.runID,
		Database: p.cfg.Database,
		State:    StateDisconnected,
	}

	p.log.Info().Str("server", p.cfg.Address()).Msg("starting schema provisioning")

	err := p.ensureDatabase(ctx, res)
	if err == nil {
		err = p.applySchema(ctx, res)
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.FailedAt = res.State
		p.transition(res, Event{State: StateRolledBack, Err: err})
		p.log.Error().Err(err).Str("failed_at", string(res.FailedAt)).Msg("schema provisioning failed")
		return res, err
	}

	p.log.Info().
		Bool("database_created", res.DatabaseCreated).
		Int("tables", res.Tables).
		Int("indexes", res.Indexes).
		Dur("duration", res.Duration).
		Msg("schema provisioning completed")
	return res, nil
}

// ensureDatabase issues CREATE DATABASE on the administrative database.
// An existing database is not an error.
func (p *Provisioner) ensureDatabase(ctx context.Context, res *Result) error {
	server, err := p.open(ctx, p.cfg.ServerDSN())
	if err != nil {
		return errors.Connection(p.cfg.Address()+"/"+p.cfg.AdminDatabase, err)
	}
	defer p.close(server, p.cfg.AdminDatabase)

	p.transition(res, Event{State: StateServerConnected})

	stmt := "CREATE DATABASE " + pq.QuoteIdentifier(p.cfg.Database)
	if _, err := server.ExecContext(ctx, stmt); err != nil {
		if !database.IsDuplicateDatabase(err) {
			return p.classify(p.cfg.AdminDatabase, "database "+p.cfg.Database, err)
		}
		p.log.Info().Msg("database already exists")
	} else {
		res.DatabaseCreated = true
		p.log.Info().Msg("database created")
	}

	p.transition(res, Event{State: StateDatabaseEnsured, DatabaseCreated: res.DatabaseCreated})
	return nil
}

// applySchema creates tables then indexes inside a single transaction.
func (p *Provisioner) applySchema(ctx context.Context, res *Result) error {
	target, err := p.open(ctx, p.cfg.DSN())
	if err != nil {
		return errors.Connection(p.cfg.Address()+"/"+p.cfg.Database, err)
	}
	defer p.close(target, p.cfg.Database)

	p.transition(res, Event{State: StateTargetConnected})

	err = target.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, t := range p.tables {
			stmt := schema.Statement{Kind: schema.KindTable, Name: t.Name, SQL: t.DDL}
			if err := p.exec(ctx, tx, res, stmt); err != nil {
				return err
			}
			res.Tables++
		}
		p.transition(res, Event{State: StateTablesEnsured})

		for _, i := range p.indexes {
			stmt := schema.Statement{Kind: schema.KindIndex, Name: i.Name, SQL: i.SQL()}
			if err := p.exec(ctx, tx, res, stmt); err != nil {
				return err
			}
			res.Indexes++
		}
		p.transition(res, Event{State: StateIndexesEnsured})

		// Foreign keys are declared inline with their tables
		for _, t := range p.tables {
			res.ForeignKeys += len(t.ForeignKeys())
		}
		p.log.Debug().Int("foreign_keys", res.ForeignKeys).Msg("foreign key constraints defined with their tables")
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if !errors.As(err, &appErr) {
			err = p.classify(p.cfg.Database, "transaction", err)
		}
		return err
	}

	p.transition(res, Event{State: StateCommitted})
	return nil
}

func (p *Provisioner) exec(ctx context.Context, tx *sqlx.Tx, res *Result, stmt schema.Statement) error {
	if _, err := tx.ExecContext(ctx, stmt.SQL); err != nil {
		return p.classify(p.cfg.Database, stmt.Label(), err)
	}
	p.log.Debug().Str("kind", stmt.Kind).Str("name", stmt.Name).Msg("statement applied")
	p.notify(Event{State: res.State, Statement: &stmt})
	return nil
}

// classify reports a lost or refused session as a connection failure and
// anything else as a failed statement.
func (p *Provisioner) classify(dbName, label string, err error) error {
	if database.IsConnectionError(err) {
		return errors.Connection(p.cfg.Address()+"/"+dbName, err)
	}
	return errors.DDL(label, err)
}

func (p *Provisioner) transition(res *Result, ev Event) {
	res.State = ev.State
	p.log.Debug().Str("state", string(ev.State)).Msg("state changed")
	p.notify(ev)
}

func (p *Provisioner) notify(ev Event) {
	if p.observer != nil {
		p.observer(ev)
	}
}

func (p *Provisioner) close(db *database.DB, name string) {
	if err := db.Close(); err != nil {
		p.log.Warn().Err(err).Str("connection", name).Msg("failed to close connection")
	}
}
