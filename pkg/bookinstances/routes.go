package bookinstances

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/catalog/pkg/locale"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book instance routes on a pre-configured
// group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, translator *locale.Translator) {
	h := &handler{
		instanceService: NewService(db),
		translator:      translator,
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve).Name = models.RouteBookInstanceDetail
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.deleteInstance)
}
