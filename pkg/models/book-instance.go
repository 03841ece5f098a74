package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const RouteBookInstanceDetail = "bookinstance_detail"

// BookInstance is a physical, loanable copy of a Book.
type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID        int        `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	UniqueID  uuid.UUID  `bun:",notnull" json:"unique_id"`
	BookID    int        `bun:",nullzero" json:"book_id"`
	Book      *Book      `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	DueBack   *time.Time `json:"due_back"`
	Status    LoanStatus `bun:",notnull" json:"status"`
}

// String renders "<book> UUID:<unique id>". The book part needs the Book (and
// Book.Author) relation loaded to be complete.
func (bi *BookInstance) String() string {
	book := ""
	if bi.Book != nil {
		book = bi.Book.String()
	}
	return book + " UUID:" + bi.UniqueID.String()
}

func (bi *BookInstance) Location() string {
	return BookInstancePath(bi.ID)
}

func BookInstancePath(id int) string {
	return "/book-instances/" + strconv.Itoa(id)
}
