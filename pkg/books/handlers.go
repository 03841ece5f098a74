package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/samber/lo"
	"github.com/shishobooks/catalog/pkg/bookinstances"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/locale"
	"github.com/shishobooks/catalog/pkg/models"
)

type handler struct {
	bookService *Service
	translator  *locale.Translator
}

// Response is the wire form of a book. InstanceCount is only filled in on
// detail responses.
type Response struct {
	*models.Book
	Label         string `json:"label"`
	URL           string `json:"url"`
	InstanceCount *int   `json:"instance_count,omitempty"`
}

func NewResponse(book *models.Book) Response {
	return Response{
		Book:  book,
		Label: book.String(),
		URL:   book.Location(),
	}
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	count, err := h.bookService.GetInstanceCount(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := NewResponse(book)
	resp.InstanceCount = &count
	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:    &params.Limit,
		Offset:   &params.Offset,
		AuthorID: params.AuthorID,
		GenreID:  params.GenreID,
		Search:   params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"books": lo.Map(books, func(b *models.Book, _ int) Response {
			return NewResponse(b)
		}),
		"total": total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:    params.Title,
		AuthorID: params.AuthorID,
		GenreID:  params.GenreID,
		Summary:  params.Summary,
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &book.ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, NewResponse(book)))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateBookOptions{Columns: []string{}}
	if params.Title != nil && *params.Title != book.Title {
		book.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.AuthorID != nil && *params.AuthorID != book.AuthorID {
		book.AuthorID = *params.AuthorID
		opts.Columns = append(opts.Columns, "author_id")
	}
	if params.GenreID != nil && *params.GenreID != book.GenreID {
		book.GenreID = *params.GenreID
		opts.Columns = append(opts.Columns, "genre_id")
	}
	if params.Summary != nil && *params.Summary != book.Summary {
		book.Summary = *params.Summary
		opts.Columns = append(opts.Columns, "summary")
	}

	if err := h.bookService.UpdateBook(ctx, book, opts); err != nil {
		return errors.WithStack(err)
	}

	// Reload to pick up a changed author or genre.
	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewResponse(book)))
}

func (h *handler) instances(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if _, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id}); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.bookService.GetInstances(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	trans := h.translator.FromRequest(c.Request())
	return errors.WithStack(c.JSON(http.StatusOK, lo.Map(list, func(bi *models.BookInstance, _ int) bookinstances.Response {
		return bookinstances.NewResponse(h.translator, trans, bi)
	})))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted book and its instances", logger.Data{"book_id": id})

	return c.NoContent(http.StatusNoContent)
}
