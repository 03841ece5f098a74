package genres

import (
	"context"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestService_CreateGenre(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "  Fantasy  "}
	err := svc.CreateGenre(ctx, genre)
	require.NoError(t, err)

	assert.NotZero(t, genre.ID)
	assert.Equal(t, "Fantasy", genre.Name)
	assert.Equal(t, "Fantasy", genre.String())
	assert.Equal(t, models.GenrePath(genre.ID), genre.Location())
	assert.NotZero(t, genre.CreatedAt)
}

func TestService_CreateGenre_RequiresName(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	err := svc.CreateGenre(context.Background(), &models.Genre{Name: "   "})
	require.Error(t, err)

	var e *errcodes.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "validation_error", e.Code)
}

func TestService_CreateGenre_NameTooLong(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.CreateGenre(ctx, &models.Genre{Name: strings.Repeat("x", 51)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.ValidationError(`"name" length must be less than or equal to 50 characters`))

	// Length counts characters, not bytes.
	genre := &models.Genre{Name: strings.Repeat("ž", 50)}
	require.NoError(t, svc.CreateGenre(ctx, genre))

	genre.Name = strings.Repeat("ž", 51)
	assert.ErrorIs(t, svc.UpdateGenre(ctx, genre, UpdateGenreOptions{Columns: []string{"name"}}),
		errcodes.FieldTooLong("name", models.GenreNameMaxLength))
}

func TestService_RetrieveGenre_NotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveGenre(context.Background(), RetrieveGenreOptions{ID: lo.ToPtr(999)})
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestService_ListGenres_OrderedByName(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"Science Fiction", "Fantasy", "Horror", "Fantasy"} {
		require.NoError(t, svc.CreateGenre(ctx, &models.Genre{Name: name}))
	}

	genres, total, err := svc.ListGenresWithTotal(ctx, ListGenresOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, total)
	names := lo.Map(genres, func(g *models.Genre, _ int) string { return g.Name })
	assert.Equal(t, []string{"Fantasy", "Fantasy", "Horror", "Science Fiction"}, names)
	// Equal names fall back to id.
	assert.Less(t, genres[0].ID, genres[1].ID)
}

func TestService_ListGenres_SearchAndPaging(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range []string{"Fantasy", "Science Fiction", "Historical Fiction", "100% True"} {
		require.NoError(t, svc.CreateGenre(ctx, &models.Genre{Name: name}))
	}

	genres, total, err := svc.ListGenresWithTotal(ctx, ListGenresOptions{Search: lo.ToPtr("fiction")})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Historical Fiction", genres[0].Name)

	genres, err = svc.ListGenres(ctx, ListGenresOptions{Search: lo.ToPtr("%")})
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "100% True", genres[0].Name)

	genres, total, err = svc.ListGenresWithTotal(ctx, ListGenresOptions{Limit: lo.ToPtr(2), Offset: lo.ToPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, genres, 2)
	assert.Equal(t, "Fantasy", genres[0].Name)
}

func TestService_UpdateGenre(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, genre))

	genre.Name = "High Fantasy"
	err := svc.UpdateGenre(ctx, genre, UpdateGenreOptions{Columns: []string{"name"}})
	require.NoError(t, err)

	found, err := svc.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &genre.ID})
	require.NoError(t, err)
	assert.Equal(t, "High Fantasy", found.Name)

	missing := &models.Genre{ID: 999, Name: "Nope"}
	err = svc.UpdateGenre(ctx, missing, UpdateGenreOptions{Columns: []string{"name"}})
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestService_DeleteGenre_Cascades(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	fantasy := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, fantasy))
	horror := &models.Genre{Name: "Horror"}
	require.NoError(t, svc.CreateGenre(ctx, horror))

	_, err := db.ExecContext(ctx, `INSERT INTO authors (id, first_name, last_name) VALUES (1, 'J', 'Tolkien')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO books (id, title, author_id, genre_id, summary) VALUES
		(1, 'The Hobbit', 1, ?, 'x'),
		(2, 'The Silmarillion', 1, ?, 'x'),
		(3, 'Unrelated', 1, ?, 'x')`, fantasy.ID, fantasy.ID, horror.ID)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO book_instances (unique_id, book_id, status) VALUES
		('6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e31', 1, 0),
		('6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e32', 2, 0),
		('6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e33', 3, 0)`)
	require.NoError(t, err)

	count, err := svc.GetBookCount(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = svc.DeleteGenre(ctx, fantasy.ID)
	require.NoError(t, err)

	var books, instances, authors int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&books))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM book_instances`).Scan(&instances))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM authors`).Scan(&authors))
	assert.Equal(t, 1, books)
	assert.Equal(t, 1, instances)
	assert.Equal(t, 1, authors, "deleting a genre leaves authors alone")

	err = svc.DeleteGenre(ctx, fantasy.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestService_GetBooks(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, genre))
	_, err := db.ExecContext(ctx, `INSERT INTO authors (id, first_name, last_name) VALUES (1, 'J', 'Tolkien')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO books (title, author_id, genre_id, summary) VALUES
		('The Silmarillion', 1, ?, 'x'),
		('The Hobbit', 1, ?, 'x')`, genre.ID, genre.ID)
	require.NoError(t, err)

	books, err := svc.GetBooks(ctx, genre.ID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "J Tolkien - The Hobbit", books[0].String())
	assert.Equal(t, "J Tolkien - The Silmarillion", books[1].String())
}
