package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	err := errors.WithStack(NotFound("Genre"))
	assert.True(t, errors.Is(err, NotFound("Genre")))
	assert.False(t, errors.Is(err, NotFound("Book")))
}

func TestError_As(t *testing.T) {
	err := errors.Wrap(Conflict("duplicate"), "create")

	var codeErr *Error
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, http.StatusConflict, codeErr.HTTPCode)
	assert.Equal(t, "conflict", codeErr.Code)
	assert.Equal(t, "duplicate", codeErr.Message)
}

func TestHandler_Payload(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		httpCode int
		code     string
	}{
		{"not found", NotFound("Book"), http.StatusNotFound, "not_found"},
		{"validation", ValidationError(`"name" is required`), http.StatusUnprocessableEntity, "validation_error"},
		{"conflict", errors.WithStack(Conflict("taken")), http.StatusConflict, "conflict"},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "method_not_allowed"},
		{"echo without message", &echo.HTTPError{Code: http.StatusNotFound}, http.StatusNotFound, "not_found"},
		{"unique constraint", errors.New("constraint failed: UNIQUE constraint failed: book_instances.unique_id (2067)"), http.StatusConflict, "conflict"},
		{"foreign key constraint", errors.Wrap(errors.New("FOREIGN KEY constraint failed"), "insert"), http.StatusUnprocessableEntity, "validation_error"},
		{"check constraint", errors.WithStack(errors.New("constraint failed: CHECK constraint failed: length(name) <= 50 (275)")), http.StatusUnprocessableEntity, "validation_error"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rr := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rr)

			NewHandler().Handle(tt.err, c)

			assert.Equal(t, tt.httpCode, rr.Code)
			assert.Contains(t, rr.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
}
