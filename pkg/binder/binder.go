package binder

import (
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/catalog/pkg/errcodes"
)

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Binder implements the Echo Binder interface for the catalog API. Listings
// bind from the query string and writes bind from a JSON body. Either way the
// result is trimmed by mold, filled with defaults, and validated.
type Binder struct {
	queryDecoder *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
}

// New initializes a new Binder instance with the catalog's validation
// functions registered.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	conform := modifiers.New()
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("date", dateValidator); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validate.RegisterValidation("loanstatus", loanStatusValidator); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Binder{queryDecoder, conform, validate}, nil
}

// Bind decodes the request into i, then trims, defaults, and validates it.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()

	switch {
	case req.ContentLength > 0:
		if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
			return errcodes.UnsupportedMediaType()
		}
		if err := b.decodeJSON(i, c); err != nil {
			return err
		}
	case req.Method == http.MethodGet:
		if err := b.decodeQuery(i, c); err != nil {
			return err
		}
	default:
		// POST and PATCH always carry a document.
		return errcodes.EmptyRequestBody()
	}

	if err := b.conform.Struct(req.Context(), i); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	if err := b.validate.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) || len(errs) == 0 {
			return errors.WithStack(err)
		}
		return errcodes.ValidationError(formatValidationError(errs[0]))
	}
	return nil
}

func (b *Binder) decodeJSON(i interface{}, c echo.Context) error {
	req := c.Request()
	defer req.Body.Close()

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(i)
	if err == nil {
		return nil
	}

	if matches := unknownFieldsRE.FindStringSubmatch(err.Error()); len(matches) > 1 {
		return errcodes.UnknownParameter(matches[1])
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errcodes.ValidationTypeError(formatUnmarshalTypeError(typeErr))
	}

	logger.FromEchoContext(c).Err(err).Error("unknown json decode error")
	return errcodes.MalformedPayload()
}

// decodeQuery reports the first failing key in sorted order so the same bad
// query always gets the same message.
func (b *Binder) decodeQuery(i interface{}, c echo.Context) error {
	err := b.queryDecoder.Decode(i, c.QueryParams())
	if err == nil {
		return nil
	}

	multi, ok := err.(schema.MultiError)
	if !ok || len(multi) == 0 {
		return errors.WithStack(err)
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	switch first := multi[keys[0]].(type) {
	case schema.ConversionError:
		return errcodes.ValidationTypeError(formatSchemaConversionError(first))
	case schema.UnknownKeyError:
		return errcodes.UnknownParameter(first.Key)
	default:
		return errors.WithStack(first)
	}
}
