package models

import (
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

const (
	RouteAuthorDetail = "author_detail"

	AuthorNameMaxLength = 100
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FirstName string    `bun:",nullzero" json:"first_name"`
	LastName  string    `bun:",nullzero" json:"last_name"`
	Books     []*Book   `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}

func (a *Author) String() string {
	return a.FirstName + " " + a.LastName
}

func (a *Author) Location() string {
	return AuthorPath(a.ID)
}

func AuthorPath(id int) string {
	return "/authors/" + strconv.Itoa(id)
}
