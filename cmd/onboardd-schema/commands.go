package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nxzen/onboardd/internal/inspect"
	"github.com/nxzen/onboardd/internal/prompt"
	"github.com/nxzen/onboardd/internal/provisioner"
	"github.com/nxzen/onboardd/internal/schema"
	"github.com/nxzen/onboardd/pkg/database"
	"github.com/nxzen/onboardd/pkg/errors"
)

const confirmQuestion = "Do you want to proceed with database creation? (y/N): "

func provisionCommand() *cli.Command {
	return &cli.Command{
		Name:   "provision",
		Usage:  "Create the database if missing and apply every table and index (default)",
		Flags:  []cli.Flag{yesFlag(false)},
		Action: runProvision,
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:   "verify",
		Usage:  "Compare an existing database with the schema catalogue without changing it",
		Action: runVerify,
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Print the ordered schema statements without connecting",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sql", Usage: "print full statements instead of names"},
		},
		Action: runPlan,
	}
}

func runProvision(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)
	out := newPrinter(cmd.Root().Writer)

	out.banner(&cfg.Database)

	if !cmd.Bool("yes") {
		ok, err := prompt.Confirm(ctx, cmd.Root().Reader, cmd.Root().Writer, confirmQuestion)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if !ok {
			out.cancelled()
			return nil
		}
	}

	p := provisioner.New(&cfg.Database, log, provisioner.WithObserver(out.progress(cfg.Database.Database)))
	res, err := p.Run(ctx)
	if err != nil {
		out.failure(err)
		return rendered(err)
	}

	out.summary(res)
	return nil
}

func runVerify(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)
	out := newPrinter(cmd.Root().Writer)

	db, err := database.New(ctx, &cfg.Database, log)
	if err != nil {
		return errors.Connection(cfg.Database.Address()+"/"+cfg.Database.Database, err)
	}
	defer db.Close()

	report, err := inspect.New(db, log).Inspect(ctx)
	if err != nil {
		return err
	}

	out.report(cfg.Database.Database, report)
	return rendered(report.Err())
}

func runPlan(ctx context.Context, cmd *cli.Command) error {
	if err := schema.ValidateOrder(); err != nil {
		return fmt.Errorf("schema catalogue is inconsistent: %w", err)
	}

	out := newPrinter(cmd.Root().Writer)
	out.plan(schema.Statements(), cmd.Bool("sql"))
	return nil
}
