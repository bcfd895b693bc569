package model

import (
	"time"

	"github.com/campusnotes/campusnotes-api/internal/query"
)

type Assignment struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Instructions   string    `json:"instructions,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	Semester       string    `json:"semester,omitempty"`
	Faculty        string    `json:"faculty,omitempty"`
	Year           *int      `json:"year,omitempty"`
	DueDate        time.Time `json:"dueDate"`
	FileURL        string    `json:"fileUrl"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	SEOKeywords    StringSet `json:"seoKeywords"`
	SEODescription string    `json:"seoDescription,omitempty"`
	TotalMarks     *int      `json:"totalMarks,omitempty"`
	Difficulty     string    `json:"difficulty,omitempty"`
	IsPublished    bool      `json:"isPublished"`
	Author         Author    `json:"author"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type AssignmentInput struct {
	contentInput
	academicInput
	Description  *string `json:"description"`
	Instructions *string `json:"instructions"`
	DueDate      *string `json:"dueDate"`
	TotalMarks   *int    `json:"totalMarks"`
	Difficulty   *string `json:"difficulty"`
}

func (in AssignmentInput) Validate(partial bool) error {
	c := newFieldCheck(partial)
	in.contentInput.check(c)
	c.required("description", in.Description, "Description is required")
	c.date("dueDate", in.DueDate, "Due date is required")
	in.academicInput.check(c)
	c.nonNegative("totalMarks", in.TotalMarks)
	c.oneOf("difficulty", in.Difficulty, difficulties)
	return c.err()
}

// Changes expects a validated input; an unparsable due date is dropped.
func (in AssignmentInput) Changes(create bool) []Change {
	var c changeSet
	in.contentInput.collect(&c, create)
	c.text("description", in.Description)
	c.text("instructions", in.Instructions)
	if in.DueDate != nil {
		if due, err := ParseDate(*in.DueDate); err == nil {
			c = append(c, Change{Field: "dueDate", Value: due})
		}
	}
	c.number("totalMarks", in.TotalMarks)
	c.text("difficulty", in.Difficulty)
	in.academicInput.collect(&c)
	return c
}

var AssignmentQuery = query.Spec{
	Filters: []query.Filter{
		{Name: "subject", Kind: query.String},
		{Name: "semester", Kind: query.String},
		{Name: "faculty", Kind: query.String},
		{Name: "year", Kind: query.Int},
		{Name: "difficulty", Kind: query.String},
		{Name: "isPublished", Kind: query.Bool},
	},
	Sorts: []string{"createdAt", "updatedAt", "title", "year", "dueDate"},
}
