package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	err = newApp(db, os.Stdout).Run(os.Args)
	db.Close()
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
}

func newApp(db *bun.DB, out io.Writer) *cli.App {
	return &cli.App{
		Name:        "migrations",
		Usage:       "manage the catalog schema",
		Description: "Applies, rolls back and scaffolds migrations for the genres, authors, books and book_instances tables.",
		Writer:      out,
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the bun_migrations bookkeeping tables",
				Action: func(c *cli.Context) error {
					migrator := migrate.NewMigrator(db, migrations.Migrations)
					return errors.WithStack(migrator.Init(c.Context))
				},
			},
			{
				Name:  "migrate",
				Usage: "apply every pending catalog migration as one group",
				Action: func(c *cli.Context) error {
					group, err := migrations.BringUpToDate(c.Context, db)
					if err != nil {
						return err
					}
					printMigrated(out, group)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "revert the last applied group",
				Action: func(c *cli.Context) error {
					group, err := migrations.RollBack(c.Context, db)
					if err != nil {
						return err
					}
					printRolledBack(out, group)
					return nil
				},
			},
			{
				Name:  "redo",
				Usage: "revert the last applied group and apply it again",
				Action: func(c *cli.Context) error {
					group, err := migrations.RollBack(c.Context, db)
					if err != nil {
						return err
					}
					printRolledBack(out, group)

					group, err = migrations.BringUpToDate(c.Context, db)
					if err != nil {
						return err
					}
					printMigrated(out, group)
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "scaffold a Go migration in pkg/migrations",
				ArgsUsage: "<name words>",
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), "_")
					if name == "" {
						return errors.New("a migration name is required")
					}

					migrator := migrate.NewMigrator(db, migrations.Migrations)
					mf, err := migrator.CreateGoMigration(c.Context, name, migrate.WithGoTemplate(migrationTemplate))
					if err != nil {
						return errors.WithStack(err)
					}
					fmt.Fprintf(out, "Created migration %s (%s)\n", mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "list applied and pending catalog migrations",
				Action: func(c *cli.Context) error {
					ms, err := migrations.Status(c.Context, db)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Migrations: %s\n", ms)
					fmt.Fprintf(out, "Unapplied migrations: %s\n", ms.Unapplied())
					fmt.Fprintf(out, "Last migration group: %s\n", ms.LastGroup())
					return nil
				},
			},
		},
	}
}

func printMigrated(out io.Writer, group *migrate.MigrationGroup) {
	if group.ID == 0 {
		fmt.Fprintln(out, "The catalog schema is up to date")
		return
	}
	fmt.Fprintf(out, "Migrated to %s\n", group)
}

func printRolledBack(out io.Writer, group *migrate.MigrationGroup) {
	if group.ID == 0 {
		fmt.Fprintln(out, "There are no groups to roll back")
		return
	}
	fmt.Fprintf(out, "Rolled back %s\n", group)
}

const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, "")
		return errors.WithStack(err)
	}

	down := func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, "")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
`
