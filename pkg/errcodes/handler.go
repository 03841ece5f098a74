package errcodes

import (
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
	"github.com/shishobooks/catalog/pkg/database"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler that uses HTTP errors accordingly. Storage
// constraint failures that slipped past the services are reported as client
// errors, and anything else is an internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}

	httpCode, payload := h.generatePayload(err)

	switch {
	case httpCode == http.StatusInternalServerError:
		logger.FromEchoContext(c).Err(err).Error("server error")
	case httpCode == http.StatusConflict:
		logger.FromEchoContext(c).Info("write conflict", map[string]interface{}{"path": c.Path()})
	}

	if err := c.JSON(httpCode, payload); err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) generatePayload(err error) (int, map[string]interface{}) {
	code := ""
	msg := ""
	httpCode := http.StatusInternalServerError

	var he *echo.HTTPError
	var e *Error
	switch {
	case errors.As(err, &e):
		httpCode = e.HTTPCode
		code = e.Code
		msg = e.Message
	case errors.As(err, &he):
		httpCode = he.Code
		msg, _ = he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		code = strcase.ToSnake(msg)
	case database.IsUniqueViolation(err):
		return h.generatePayload(Conflict("A record with the same unique value already exists."))
	case database.IsForeignKeyViolation(err):
		return h.generatePayload(ValidationError("A referenced record does not exist."))
	case database.IsCheckViolation(err):
		return h.generatePayload(ValidationError("A value is outside the allowed range."))
	default:
		code = "internal_server_error"
		msg = "Internal Server Error"
	}

	return httpCode, map[string]interface{}{
		"error": map[string]interface{}{
			"code":        code,
			"message":     msg,
			"status_code": httpCode,
		},
	}
}
