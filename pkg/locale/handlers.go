package locale

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	translator *Translator
}

type labelsResponse struct {
	Locale string            `json:"locale"`
	Labels map[string]string `json:"labels"`
}

func (h *handler) labels(c echo.Context) error {
	trans := h.translator.FromRequest(c.Request())
	return errors.WithStack(c.JSON(http.StatusOK, labelsResponse{
		Locale: trans.Locale(),
		Labels: h.translator.Labels(trans),
	}))
}
