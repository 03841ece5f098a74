package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/config"
	"github.com/shishobooks/catalog/pkg/database"
	"github.com/shishobooks/catalog/pkg/migrations"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hobbitCopy = "6f1c9a9e-3d0b-4a4e-9d53-2f7b0c1d2e3f"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.NewForTest()
	db, err := database.New(cfg)
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	e, err := newEcho(cfg, db)
	require.NoError(t, err)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func errorCode(resp map[string]any) string {
	e, _ := resp["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestRoutes_ReverseMatchesLocations(t *testing.T) {
	e := newTestServer(t)

	assert.Equal(t, models.GenrePath(5), e.Reverse(models.RouteGenreDetail, 5))
	assert.Equal(t, models.AuthorPath(5), e.Reverse(models.RouteAuthorDetail, 5))
	assert.Equal(t, models.BookPath(5), e.Reverse(models.RouteBookDetail, 5))
	assert.Equal(t, models.BookInstancePath(5), e.Reverse(models.RouteBookInstanceDetail, 5))
}

func TestRoutes_CatalogLifecycle(t *testing.T) {
	e := newTestServer(t)

	rec, genre := do(t, e, http.MethodPost, "/genres", map[string]any{"name": "Fantasy"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Fantasy", genre["label"])
	assert.Equal(t, "/genres/1", genre["url"])

	rec, author := do(t, e, http.MethodPost, "/authors", map[string]any{"first_name": "J", "last_name": "Tolkien"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "J Tolkien", author["label"])

	rec, book := do(t, e, http.MethodPost, "/books", map[string]any{
		"title":     "The Hobbit",
		"author_id": 1,
		"genre_id":  1,
		"summary":   "There and back again.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "J Tolkien - The Hobbit", book["label"])
	assert.Equal(t, "/books/1", book["url"])

	rec, instance := do(t, e, http.MethodPost, "/book-instances", map[string]any{
		"unique_id": hobbitCopy,
		"book_id":   1,
		"due_back":  "2026-11-01",
		"status":    2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "J Tolkien - The Hobbit UUID:"+hobbitCopy, instance["label"])
	assert.Equal(t, "/book-instances/1", instance["url"])
	assert.Equal(t, "2026-11-01", instance["due_back"])
	assert.Equal(t, "taken", instance["status_label"])

	rec, resp := do(t, e, http.MethodPost, "/book-instances", map[string]any{
		"unique_id": hobbitCopy,
		"book_id":   1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(resp))

	rec, resp = do(t, e, http.MethodPost, "/book-instances", map[string]any{
		"book_id": 1,
		"status":  4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(resp))

	rec, resp = do(t, e, http.MethodGet, "/book-instances/1", nil, "Accept-Language", "lt-LT,lt;q=0.9,en;q=0.5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paimta", resp["status_label"])

	rec, resp = do(t, e, http.MethodGet, "/books/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1, resp["instance_count"], 0)

	rec, _ = do(t, e, http.MethodGet, "/books/1/instances", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status_label":"taken"`)

	rec, resp = do(t, e, http.MethodPatch, "/book-instances/1", map[string]any{"due_back": "", "status": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, resp["due_back"])
	assert.Equal(t, "available", resp["status_label"])

	rec, _ = do(t, e, http.MethodDelete, "/genres/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, resp = do(t, e, http.MethodGet, "/books/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(resp))

	rec, _ = do(t, e, http.MethodGet, "/book-instances/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = do(t, e, http.MethodGet, "/authors/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0, resp["book_count"], 0)
}

func TestRoutes_BookRequiresExistingParents(t *testing.T) {
	e := newTestServer(t)

	rec, resp := do(t, e, http.MethodPost, "/books", map[string]any{
		"title":     "Orphan",
		"author_id": 1,
		"genre_id":  1,
		"summary":   "x",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(resp))
}

func TestRoutes_ListsUseDefaultOrdering(t *testing.T) {
	e := newTestServer(t)

	for _, name := range []string{"Science Fiction", "Fantasy"} {
		rec, _ := do(t, e, http.MethodPost, "/genres", map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, resp := do(t, e, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 2, resp["total"], 0)

	genres, ok := resp["genres"].([]any)
	require.True(t, ok)
	require.Len(t, genres, 2)
	assert.Equal(t, "Fantasy", genres[0].(map[string]any)["name"])
	assert.Equal(t, "Science Fiction", genres[1].(map[string]any)["name"])
}

func TestRoutes_Labels(t *testing.T) {
	e := newTestServer(t)

	rec, resp := do(t, e, http.MethodGet, "/labels?lang=lt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lt", resp["locale"])
	labels, ok := resp["labels"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "paimta", labels["bookinstance.status.taken"])
	assert.Equal(t, "žanrai", labels["genre.verbose_name_plural"])

	rec, resp = do(t, e, http.MethodGet, "/labels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", resp["locale"])
	labels, ok = resp["labels"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "book instances", labels["bookinstance.verbose_name_plural"])
}

func TestRoutes_NotFound(t *testing.T) {
	e := newTestServer(t)

	rec, resp := do(t, e, http.MethodGet, "/shelves", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(resp))

	rec, _ = do(t, e, http.MethodGet, "/genres/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
