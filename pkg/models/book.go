package models

import (
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

const (
	RouteBookDetail = "book_detail"

	BookTitleMaxLength = 250
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int             `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Title     string          `bun:",nullzero" json:"title"`
	AuthorID  int             `bun:",nullzero" json:"author_id"`
	Author    *Author         `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	GenreID   int             `bun:",nullzero" json:"genre_id"`
	Genre     *Genre          `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	Summary   string          `bun:",nullzero" json:"summary"`
	Instances []*BookInstance `bun:"rel:has-many,join:id=book_id" json:"instances,omitempty"`
}

// String renders "<author> - <title>". The author part is empty unless the
// Author relation has been loaded.
func (b *Book) String() string {
	author := ""
	if b.Author != nil {
		author = b.Author.String()
	}
	return author + " - " + b.Title
}

func (b *Book) Location() string {
	return BookPath(b.ID)
}

func BookPath(id int) string {
	return "/books/" + strconv.Itoa(id)
}
