package bookinstances

type ListBookInstancesQuery struct {
	Limit  int  `query:"limit" json:"limit,omitempty" default:"25" validate:"min=1,max=100"`
	Offset int  `query:"offset" json:"offset,omitempty" validate:"min=0"`
	BookID *int `query:"book_id" json:"book_id,omitempty" validate:"omitempty,min=1"`
	Status *int `query:"status" json:"status,omitempty" validate:"omitempty,loanstatus"`
	// Lang is read by the translator; it's declared so the binder accepts it.
	Lang string `query:"lang" json:"lang,omitempty"`
}

type CreateBookInstancePayload struct {
	UniqueID string `json:"unique_id,omitempty" mod:"trim" validate:"omitempty,uuid"`
	BookID   int    `json:"book_id" validate:"required,min=1"`
	DueBack  string `json:"due_back,omitempty" mod:"trim" validate:"date"`
	Status   *int   `json:"status,omitempty" validate:"omitempty,loanstatus"`
}

type UpdateBookInstancePayload struct {
	UniqueID *string `json:"unique_id,omitempty" validate:"omitempty,uuid"`
	BookID   *int    `json:"book_id,omitempty" validate:"omitempty,min=1"`
	DueBack  *string `json:"due_back,omitempty" validate:"omitempty,date"`
	Status   *int    `json:"status,omitempty" validate:"omitempty,loanstatus"`
}
