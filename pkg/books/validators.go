package books

type ListBooksQuery struct {
	Limit    int     `query:"limit" json:"limit,omitempty" default:"25" validate:"min=1,max=100"`
	Offset   int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	AuthorID *int    `query:"author_id" json:"author_id,omitempty" validate:"omitempty,min=1"`
	GenreID  *int    `query:"genre_id" json:"genre_id,omitempty" validate:"omitempty,min=1"`
	Search   *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreateBookPayload struct {
	Title    string `json:"title" mod:"trim" validate:"required,max=250"`
	AuthorID int    `json:"author_id" validate:"required,min=1"`
	GenreID  int    `json:"genre_id" validate:"required,min=1"`
	Summary  string `json:"summary" mod:"trim" validate:"required"`
}

type UpdateBookPayload struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=250"`
	AuthorID *int    `json:"author_id,omitempty" validate:"omitempty,min=1"`
	GenreID  *int    `json:"genre_id,omitempty" validate:"omitempty,min=1"`
	Summary  *string `json:"summary,omitempty" validate:"omitempty,min=1"`
}
