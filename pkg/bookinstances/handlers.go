package bookinstances

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/locale"
	"github.com/shishobooks/catalog/pkg/models"
)

type handler struct {
	instanceService *Service
	translator      *locale.Translator
}

// Response is the wire form of a book instance. DueBack shadows the model's
// timestamp so that clients see a plain date.
type Response struct {
	*models.BookInstance
	DueBack     *string `json:"due_back"`
	Label       string  `json:"label"`
	URL         string  `json:"url"`
	StatusLabel string  `json:"status_label"`
}

// NewResponse renders an instance with its status label in trans's language.
func NewResponse(t *locale.Translator, trans ut.Translator, instance *models.BookInstance) Response {
	var dueBack *string
	if instance.DueBack != nil {
		dueBack = lo.ToPtr(FormatDate(instance.DueBack))
	}
	return Response{
		BookInstance: instance,
		DueBack:      dueBack,
		Label:        instance.String(),
		URL:          instance.Location(),
		StatusLabel:  t.StatusLabel(trans, instance.Status),
	}
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book instance")
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, RetrieveBookInstanceOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	trans := h.translator.FromRequest(c.Request())
	return errors.WithStack(c.JSON(http.StatusOK, NewResponse(h.translator, trans, instance)))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBookInstancesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListBookInstancesOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		BookID: params.BookID,
	}
	if params.Status != nil {
		opts.Status = lo.ToPtr(models.LoanStatus(*params.Status))
	}

	instances, total, err := h.instanceService.ListBookInstancesWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	trans := h.translator.FromRequest(c.Request())
	response := map[string]any{
		"book_instances": lo.Map(instances, func(bi *models.BookInstance, _ int) Response {
			return NewResponse(h.translator, trans, bi)
		}),
		"total": total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instance := &models.BookInstance{
		BookID: params.BookID,
	}
	if params.UniqueID != "" {
		id, err := uuid.Parse(params.UniqueID)
		if err != nil {
			return errcodes.ValidationError(`"unique_id" must be a valid UUID`)
		}
		instance.UniqueID = id
	}
	dueBack, err := ParseDate(params.DueBack)
	if err != nil {
		return errors.WithStack(err)
	}
	instance.DueBack = dueBack
	if params.Status != nil {
		instance.Status = models.LoanStatus(*params.Status)
	}

	if err := h.instanceService.CreateBookInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	// Reload so the label includes the book and its author.
	instance, err = h.instanceService.RetrieveBookInstance(ctx, RetrieveBookInstanceOptions{
		ID: &instance.ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	trans := h.translator.FromRequest(c.Request())
	return errors.WithStack(c.JSON(http.StatusCreated, NewResponse(h.translator, trans, instance)))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book instance")
	}

	params := UpdateBookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, RetrieveBookInstanceOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateBookInstanceOptions{Columns: []string{}}
	if params.UniqueID != nil {
		uid, err := uuid.Parse(*params.UniqueID)
		if err != nil {
			return errcodes.ValidationError(`"unique_id" must be a valid UUID`)
		}
		if uid != instance.UniqueID {
			instance.UniqueID = uid
			opts.Columns = append(opts.Columns, "unique_id")
		}
	}
	if params.BookID != nil && *params.BookID != instance.BookID {
		instance.BookID = *params.BookID
		opts.Columns = append(opts.Columns, "book_id")
	}
	if params.DueBack != nil {
		// An empty string clears the due date.
		dueBack, err := ParseDate(*params.DueBack)
		if err != nil {
			return errors.WithStack(err)
		}
		if FormatDate(dueBack) != FormatDate(instance.DueBack) {
			instance.DueBack = dueBack
			opts.Columns = append(opts.Columns, "due_back")
		}
	}
	if params.Status != nil && models.LoanStatus(*params.Status) != instance.Status {
		instance.Status = models.LoanStatus(*params.Status)
		opts.Columns = append(opts.Columns, "status")
	}

	if err := h.instanceService.UpdateBookInstance(ctx, instance, opts); err != nil {
		return errors.WithStack(err)
	}

	instance, err = h.instanceService.RetrieveBookInstance(ctx, RetrieveBookInstanceOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	trans := h.translator.FromRequest(c.Request())
	return errors.WithStack(c.JSON(http.StatusOK, NewResponse(h.translator, trans, instance)))
}

func (h *handler) deleteInstance(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book instance")
	}

	if err := h.instanceService.DeleteBookInstance(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
