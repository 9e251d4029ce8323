// internal/app/features/reviews/types.go
package reviews

import (
	reviewstore "github.com/dalemusser/devcamper/internal/app/store/reviews"
	"github.com/dalemusser/devcamper/internal/app/system/htmlsanitize"
)

// createInput is the accepted body of POST /bootcamps/{bootcampId}/reviews.
// Clients may send bootcamp and user too; they are ignored.
type createInput struct {
	Title  string `json:"title" label:"Title" validate:"required,max=100"`
	Text   string `json:"text" label:"Text" validate:"required"`
	Rating *int   `json:"rating" label:"Rating" validate:"required,min=1,max=10"`
}

func (in *createInput) sanitize() {
	in.Title = htmlsanitize.PlainText(in.Title)
	in.Text = htmlsanitize.PlainText(in.Text)
}

// updateInput is the accepted body of PUT /reviews/{id}. Absent fields are
// left unchanged; present ones must still be valid.
type updateInput struct {
	Title  *string `json:"title" label:"Title" validate:"omitnil,required,max=100"`
	Text   *string `json:"text" label:"Text" validate:"omitnil,required"`
	Rating *int    `json:"rating" label:"Rating" validate:"omitnil,min=1,max=10"`
}

func (in *updateInput) sanitize() {
	if in.Title != nil {
		s := htmlsanitize.PlainText(*in.Title)
		in.Title = &s
	}
	if in.Text != nil {
		s := htmlsanitize.PlainText(*in.Text)
		in.Text = &s
	}
}

func (in updateInput) patch() reviewstore.Patch {
	return reviewstore.Patch{Title: in.Title, Text: in.Text, Rating: in.Rating}
}
