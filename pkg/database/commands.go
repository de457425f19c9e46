package database

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/shuldan/underc0de-admin/pkg/cli"
	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type migrationCommand struct {
	db         *Database
	migrations []contracts.Migration
}

func (c *migrationCommand) Group() string { return contracts.DatabaseCliGroup }

func (c *migrationCommand) Validate(contracts.CliContext) error { return nil }

func (c *migrationCommand) runner(ctx contracts.CliContext) (contracts.MigrationRunner, error) {
	db, err := c.db.Connect(ctx.Ctx().Ctx())
	if err != nil {
		return nil, err
	}
	return NewMigrationRunner(db), nil
}

type migrateCommand struct {
	migrationCommand
}

func (c *migrateCommand) Name() string              { return "migrate" }
func (c *migrateCommand) Description() string       { return "Apply pending migrations" }
func (c *migrateCommand) Configure(_ *flag.FlagSet) {}

func (c *migrateCommand) Execute(ctx contracts.CliContext) error {
	runner, err := c.runner(ctx)
	if err != nil {
		return err
	}
	if err := runner.Run(ctx.Ctx().Ctx(), c.migrations); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Output(), "Migrations applied on %s\n", c.db.Driver())
	return nil
}

type rollbackCommand struct {
	migrationCommand
	steps int
}

func (c *rollbackCommand) Name() string        { return "migrate:rollback" }
func (c *rollbackCommand) Description() string { return "Rollback the last N migrations" }

func (c *rollbackCommand) Configure(flags *flag.FlagSet) {
	flags.IntVar(&c.steps, "n", 1, "Number of migrations to rollback")
}

func (c *rollbackCommand) Execute(ctx contracts.CliContext) error {
	runner, err := c.runner(ctx)
	if err != nil {
		return err
	}
	if err := runner.Rollback(ctx.Ctx().Ctx(), max(c.steps, 1), c.migrations); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(ctx.Output(), "Rolled back %d migration(s)\n", max(c.steps, 1))
	return nil
}

type statusCommand struct {
	migrationCommand
}

func (c *statusCommand) Name() string              { return "migrate:status" }
func (c *statusCommand) Description() string       { return "Show migration status" }
func (c *statusCommand) Configure(_ *flag.FlagSet) {}

func (c *statusCommand) Execute(ctx contracts.CliContext) error {
	runner, err := c.runner(ctx)
	if err != nil {
		return err
	}
	applied, err := runner.Status(ctx.Ctx().Ctx())
	if err != nil {
		return err
	}

	byID := make(map[string]contracts.MigrationStatus, len(applied))
	for _, s := range applied {
		byID[s.ID] = s
	}

	rows := make([][]string, 0, len(c.migrations))
	for _, m := range c.migrations {
		row := []string{m.ID(), m.Description(), "no", "", ""}
		if s, ok := byID[m.ID()]; ok {
			row[2], row[3], row[4] = "yes", s.AppliedAt.Format("2006-01-02 15:04"), strconv.Itoa(s.Batch)
		}
		rows = append(rows, row)
	}
	return cli.PrintTable(ctx.Output(), []string{"ID", "DESCRIPTION", "APPLIED", "APPLIED AT", "BATCH"}, rows)
}
