package locale

import "github.com/labstack/echo/v4"

// RegisterRoutesWithGroup registers the label catalog on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, translator *Translator) {
	h := &handler{translator: translator}

	g.GET("", h.labels)
}
