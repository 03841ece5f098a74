package models

import (
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

const (
	RouteGenreDetail = "genre_detail"

	GenreNameMaxLength = 50
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	Books     []*Book   `bun:"rel:has-many,join:id=genre_id" json:"books,omitempty"`
}

func (g *Genre) String() string {
	return g.Name
}

// Location is the detail path of the genre. It doesn't check that the genre
// exists.
func (g *Genre) Location() string {
	return GenrePath(g.ID)
}

func GenrePath(id int) string {
	return "/genres/" + strconv.Itoa(id)
}
