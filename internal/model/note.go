package model

import (
	"time"

	"github.com/campusnotes/campusnotes-api/internal/query"
)

// Note is a study note attached to an uploaded file.
type Note struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Content        string    `json:"content"`
	Description    string    `json:"description,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	Semester       string    `json:"semester,omitempty"`
	Faculty        string    `json:"faculty,omitempty"`
	Year           *int      `json:"year,omitempty"`
	FileURL        string    `json:"fileUrl"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	SEOKeywords    StringSet `json:"seoKeywords"`
	SEODescription string    `json:"seoDescription,omitempty"`
	IsPublished    bool      `json:"isPublished"`
	Views          int       `json:"views"`
	Likes          int       `json:"likes"`
	Author         Author    `json:"author"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NoteInput is the body of note create and update requests.
type NoteInput struct {
	contentInput
	academicInput
	Content     *string `json:"content"`
	Description *string `json:"description"`
}

func (in NoteInput) Validate(partial bool) error {
	c := newFieldCheck(partial)
	in.contentInput.check(c)
	c.required("content", in.Content, "Content is required")
	in.academicInput.check(c)
	return c.err()
}

func (in NoteInput) Changes(create bool) []Change {
	var c changeSet
	in.contentInput.collect(&c, create)
	c.text("content", in.Content)
	c.text("description", in.Description)
	in.academicInput.collect(&c)
	return c
}

// NoteQuery lists the filters and sort keys accepted by GET /api/notes.
var NoteQuery = query.Spec{
	Filters: []query.Filter{
		{Name: "subject", Kind: query.String},
		{Name: "semester", Kind: query.String},
		{Name: "faculty", Kind: query.String},
		{Name: "year", Kind: query.Int},
		{Name: "isPublished", Kind: query.Bool},
	},
	Sorts: []string{"createdAt", "updatedAt", "title", "year", "views", "likes"},
}
