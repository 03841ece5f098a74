package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/samber/lo"
	"github.com/shishobooks/catalog/pkg/authors"
	"github.com/shishobooks/catalog/pkg/bookinstances"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/genres"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/version"
	"github.com/uptrace/bun"
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

	app := newApp(db, os.Stdout)
	runErr := app.Run(os.Args)
	if err := db.Close(); err != nil {
		log.Err(err).Error("database close error")
	}
	if runErr != nil {
		log.Err(runErr).Fatal("app run error")
	}
}

func newApp(db *bun.DB, out io.Writer) *cli.App {
	return &cli.App{
		Name:        "catalog",
		Usage:       "inspect the library catalog",
		Description: "Prints catalog entries with their labels and locations",
		Version:     version.String(),
		Writer:      out,
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "add a sample genre, author, book and copy",
				Action: func(c *cli.Context) error {
					instance, err := seed(c.Context, db)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "created %s at %s\n", instance, instance.Location())
					return nil
				},
			},
			{
				Name:  "genres",
				Usage: "list genres",
				Action: func(c *cli.Context) error {
					list, err := genres.NewService(db).ListGenres(c.Context, genres.ListGenresOptions{})
					if err != nil {
						return err
					}
					w := newTable(out, "ID", "LABEL", "LOCATION")
					for _, g := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g, g.Location())
					}
					return errors.WithStack(w.Flush())
				},
			},
			{
				Name:  "authors",
				Usage: "list authors",
				Action: func(c *cli.Context) error {
					list, err := authors.NewService(db).ListAuthors(c.Context, authors.ListAuthorsOptions{})
					if err != nil {
						return err
					}
					w := newTable(out, "ID", "LABEL", "LOCATION")
					for _, a := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a, a.Location())
					}
					return errors.WithStack(w.Flush())
				},
			},
			{
				Name:  "books",
				Usage: "list books",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "author", Usage: "only books by this author ID"},
					&cli.IntFlag{Name: "genre", Usage: "only books in this genre ID"},
				},
				Action: func(c *cli.Context) error {
					opts := books.ListBooksOptions{}
					if c.IsSet("author") {
						opts.AuthorID = lo.ToPtr(c.Int("author"))
					}
					if c.IsSet("genre") {
						opts.GenreID = lo.ToPtr(c.Int("genre"))
					}
					list, err := books.NewService(db).ListBooks(c.Context, opts)
					if err != nil {
						return err
					}
					w := newTable(out, "ID", "LABEL", "LOCATION")
					for _, b := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b, b.Location())
					}
					return errors.WithStack(w.Flush())
				},
			},
			{
				Name:  "instances",
				Usage: "list book instances",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "book", Usage: "only copies of this book ID"},
					&cli.StringFlag{Name: "status", Usage: "one of available, reserved, taken, unavailable"},
				},
				Action: func(c *cli.Context) error {
					opts := bookinstances.ListBookInstancesOptions{}
					if c.IsSet("book") {
						opts.BookID = lo.ToPtr(c.Int("book"))
					}
					if c.IsSet("status") {
						status, err := models.ParseLoanStatus(c.String("status"))
						if err != nil {
							return err
						}
						opts.Status = &status
					}
					list, err := bookinstances.NewService(db).ListBookInstances(c.Context, opts)
					if err != nil {
						return err
					}
					w := newTable(out, "ID", "LABEL", "STATUS", "DUE", "LOCATION")
					for _, bi := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", bi.ID, bi, bi.Status, dueLabel(bi), bi.Location())
					}
					return errors.WithStack(w.Flush())
				},
			},
		},
	}
}

func seed(ctx context.Context, db *bun.DB) (*models.BookInstance, error) {
	genre := &models.Genre{Name: "Fantasy"}
	if err := genres.NewService(db).CreateGenre(ctx, genre); err != nil {
		return nil, err
	}
	author := &models.Author{FirstName: "J", LastName: "Tolkien"}
	if err := authors.NewService(db).CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	bookService := books.NewService(db)
	book := &models.Book{
		Title:    "The Hobbit",
		AuthorID: author.ID,
		GenreID:  genre.ID,
		Summary:  "A hobbit is swept into a quest for a dragon's hoard.",
	}
	if err := bookService.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	instanceService := bookinstances.NewService(db)
	instance := &models.BookInstance{BookID: book.ID}
	if err := instanceService.CreateBookInstance(ctx, instance); err != nil {
		return nil, err
	}
	return instanceService.RetrieveBookInstance(ctx, bookinstances.RetrieveBookInstanceOptions{ID: &instance.ID})
}

func newTable(out io.Writer, headers ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	return w
}

func dueLabel(bi *models.BookInstance) string {
	if bi.DueBack == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", bookinstances.FormatDate(bi.DueBack), humanize.Time(*bi.DueBack))
}
