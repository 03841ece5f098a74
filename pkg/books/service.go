package books

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// ParentColumn is a books column that references a parent entity.
type ParentColumn string

const (
	ByAuthor ParentColumn = "author_id"
	ByGenre  ParentColumn = "genre_id"
)

type RetrieveBookOptions struct {
	ID *int
}

type ListBooksOptions struct {
	Limit    *int
	Offset   *int
	AuthorID *int
	GenreID  *int
	Search   *string

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := checkReferences(ctx, tx, book); err != nil {
			return err
		}

		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		return errors.WithStack(err)
	})
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Relation("Genre")

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	var books []*models.Book
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Relation("Genre").
		Order("b.title ASC", "b.id ASC")

	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", *opts.AuthorID)
	}
	if opts.GenreID != nil {
		q = q.Where("b.genre_id = ?", *opts.GenreID)
	}
	if opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		q = q.Where("b.title LIKE ? ESCAPE '\\'", database.LikePattern(*opts.Search))
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}
	if err := validateBook(book); err != nil {
		return err
	}

	now := time.Now()
	book.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := checkReferences(ctx, tx, book); err != nil {
			return err
		}

		res, err := tx.
			NewUpdate().
			Model(book).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("Book")
		}
		return nil
	})
}

// DeleteBook deletes a book and all of its instances.
func (svc *Service) DeleteBook(ctx context.Context, bookID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.BookInstance)(nil)).
			Where("book_id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		res, err := tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("Book")
		}
		return nil
	})
}

// DeleteBooksTx deletes every book whose column references id, along with the
// instances of those books, and returns the number of books removed. It's
// the shared half of the genre and author cascades and must run inside the
// caller's transaction.
func DeleteBooksTx(ctx context.Context, tx bun.Tx, column ParentColumn, id int) (int, error) {
	bookIDs := tx.NewSelect().
		Model((*models.Book)(nil)).
		ColumnExpr("b.id").
		Where("b.? = ?", bun.Ident(string(column)), id)

	_, err := tx.NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("book_id IN (?)", bookIDs).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	res, err := tx.NewDelete().
		Model((*models.Book)(nil)).
		Where("? = ?", bun.Ident(string(column)), id).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// GetInstanceCount returns the number of copies of a book.
func (svc *Service) GetInstanceCount(ctx context.Context, bookID int) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.BookInstance)(nil)).
		Where("bi.book_id = ?", bookID).
		Count(ctx)
	return count, errors.WithStack(err)
}

// GetInstances returns the copies of a book in due date order.
func (svc *Service) GetInstances(ctx context.Context, bookID int) ([]*models.BookInstance, error) {
	var result []*models.BookInstance

	err := svc.db.NewSelect().
		Model(&result).
		Relation("Book").
		Relation("Book.Author").
		Where("bi.book_id = ?", bookID).
		Order("bi.due_back ASC", "bi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}

func validateBook(book *models.Book) error {
	book.Title = strings.TrimSpace(book.Title)
	switch {
	case book.Title == "":
		return errcodes.RequiredField("title")
	case utf8.RuneCountInString(book.Title) > models.BookTitleMaxLength:
		return errcodes.FieldTooLong("title", models.BookTitleMaxLength)
	case book.AuthorID == 0:
		return errcodes.RequiredField("author_id")
	case book.GenreID == 0:
		return errcodes.RequiredField("genre_id")
	case strings.TrimSpace(book.Summary) == "":
		return errcodes.RequiredField("summary")
	}
	return nil
}

func checkReferences(ctx context.Context, db bun.IDB, book *models.Book) error {
	exists, err := db.NewSelect().
		Model((*models.Author)(nil)).
		Where("a.id = ?", book.AuthorID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.UnknownReference("author_id", "author")
	}

	exists, err = db.NewSelect().
		Model((*models.Genre)(nil)).
		Where("g.id = ?", book.GenreID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.UnknownReference("genre_id", "genre")
	}
	return nil
}
