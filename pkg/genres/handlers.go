package genres

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/samber/lo"
	"github.com/shishobooks/catalog/pkg/books"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
)

type handler struct {
	genreService *Service
}

type genreResponse struct {
	*models.Genre
	Label     string `json:"label"`
	URL       string `json:"url"`
	BookCount int    `json:"book_count"`
}

func newGenreResponse(genre *models.Genre, bookCount int) genreResponse {
	return genreResponse{genre, genre.String(), genre.Location(), bookCount}
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	bookCount, err := h.genreService.GetBookCount(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newGenreResponse(genre, bookCount)))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListGenresQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genres, total, err := h.genreService.ListGenresWithTotal(ctx, ListGenresOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]genreResponse, len(genres))
	for i, g := range genres {
		bookCount, err := h.genreService.GetBookCount(ctx, g.ID)
		if err != nil {
			return errors.WithStack(err)
		}
		result[i] = newGenreResponse(g, bookCount)
	}

	response := map[string]any{
		"genres": result,
		"total":  total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateGenrePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genre := &models.Genre{Name: params.Name}
	if err := h.genreService.CreateGenre(ctx, genre); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, newGenreResponse(genre, 0)))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	params := UpdateGenrePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateGenreOptions{Columns: []string{}}
	if params.Name != nil && *params.Name != genre.Name {
		genre.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}

	if err := h.genreService.UpdateGenre(ctx, genre, opts); err != nil {
		return errors.WithStack(err)
	}

	bookCount, err := h.genreService.GetBookCount(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newGenreResponse(genre, bookCount)))
}

func (h *handler) books(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	// 404 for unknown genres rather than an empty list
	if _, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id}); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.genreService.GetBooks(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, lo.Map(list, func(b *models.Book, _ int) books.Response {
		return books.NewResponse(b)
	})))
}

func (h *handler) deleteGenre(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	err = h.genreService.DeleteGenre(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted genre and its books", logger.Data{"genre_id": id})

	return c.NoContent(http.StatusNoContent)
}
