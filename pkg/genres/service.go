package genres

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveGenreOptions struct {
	ID *int
}

type ListGenresOptions struct {
	Limit  *int
	Offset *int
	Search *string

	includeTotal bool
}

type UpdateGenreOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) error {
	if err := validateGenre(genre); err != nil {
		return err
	}

	now := time.Now()
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = now
	}
	genre.UpdatedAt = genre.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	genre := &models.Genre{}

	q := svc.db.
		NewSelect().
		Model(genre)

	if opts.ID != nil {
		q = q.Where("g.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

func (svc *Service) ListGenres(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, error) {
	g, _, err := svc.listGenresWithTotal(ctx, opts)
	return g, errors.WithStack(err)
}

func (svc *Service) ListGenresWithTotal(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, int, error) {
	opts.includeTotal = true
	return svc.listGenresWithTotal(ctx, opts)
}

func (svc *Service) listGenresWithTotal(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, int, error) {
	var genres []*models.Genre
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&genres).
		Order("g.name ASC", "g.id ASC")

	if opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		q = q.Where("g.name LIKE ? ESCAPE '\\'", database.LikePattern(*opts.Search))
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

	return genres, total, nil
}

func (svc *Service) UpdateGenre(ctx context.Context, genre *models.Genre, opts UpdateGenreOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}
	if err := validateGenre(genre); err != nil {
		return err
	}

	now := time.Now()
	genre.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(genre).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errcodes.NotFound("Genre")
	}
	return nil
}

// DeleteGenre deletes a genre together with every book in it and every
// instance of those books.
func (svc *Service) DeleteGenre(ctx context.Context, genreID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := books.DeleteBooksTx(ctx, tx, books.ByGenre, genreID)
		if err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Genre)(nil)).
			Where("id = ?", genreID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("Genre")
		}
		return nil
	})
}

// GetBookCount returns the count of books with this genre.
func (svc *Service) GetBookCount(ctx context.Context, genreID int) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.Book)(nil)).
		Where("b.genre_id = ?", genreID).
		Count(ctx)
	return count, errors.WithStack(err)
}

// GetBooks returns all books with this genre.
func (svc *Service) GetBooks(ctx context.Context, genreID int) ([]*models.Book, error) {
	var result []*models.Book

	err := svc.db.NewSelect().
		Model(&result).
		Relation("Author").
		Where("b.genre_id = ?", genreID).
		Order("b.title ASC", "b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}

func validateGenre(genre *models.Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if genre.Name == "" {
		return errcodes.RequiredField("name")
	}
	if utf8.RuneCountInString(genre.Name) > models.GenreNameMaxLength {
		return errcodes.FieldTooLong("name", models.GenreNameMaxLength)
	}
	return nil
}
