package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/migrations"
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

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `INSERT INTO genres (id, name) VALUES (1, 'Fantasy')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO authors (id, first_name, last_name) VALUES (1, 'J', 'Tolkien')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO books (id, title, author_id, genre_id, summary) VALUES (1, 'The Hobbit', 1, 1, 'x')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO book_instances (id, unique_id, book_id, status) VALUES
		(1, '6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e3f', 1, 2),
		(2, '6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e40', 1, 0)`)
	require.NoError(t, err)

	return db
}

func run(t *testing.T, db *bun.DB, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	err := newApp(db, out).Run(append([]string{"catalog"}, args...))
	require.NoError(t, err)
	return out.String()
}

func TestCatalog_Genres(t *testing.T) {
	db := newTestDB(t)

	out := run(t, db, "genres")
	assert.Contains(t, out, "LOCATION")
	assert.Contains(t, out, "Fantasy")
	assert.Contains(t, out, "/genres/1")
}

func TestCatalog_Books(t *testing.T) {
	db := newTestDB(t)

	out := run(t, db, "books", "--author", "1")
	assert.Contains(t, out, "J Tolkien - The Hobbit")
	assert.Contains(t, out, "/books/1")

	out = run(t, db, "authors")
	assert.Contains(t, out, "J Tolkien")
}

func TestCatalog_Instances(t *testing.T) {
	db := newTestDB(t)

	out := run(t, db, "instances", "--status", "taken")
	assert.Contains(t, out, "UUID:6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e3f")
	assert.Contains(t, out, "taken")
	assert.NotContains(t, out, "2e40")

	err := newApp(db, &bytes.Buffer{}).Run([]string{"catalog", "instances", "--status", "lost"})
	assert.Error(t, err)
}

func TestCatalog_Seed(t *testing.T) {
	db := newTestDB(t)

	out := run(t, db, "seed")
	assert.Contains(t, out, "created J Tolkien - The Hobbit UUID:")
	assert.Contains(t, out, "/book-instances/3")

	out = run(t, db, "books", "--genre", "2")
	assert.Contains(t, out, "J Tolkien - The Hobbit")
	assert.Contains(t, out, "/books/2")
}
