package model

import (
	"time"

	"github.com/campusnotes/campusnotes-api/internal/query"
)

// OldQuestion is a past exam question with its worked answer.
type OldQuestion struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Subject        string    `json:"subject"`
	Semester       string    `json:"semester,omitempty"`
	Faculty        string    `json:"faculty,omitempty"`
	Year           *int      `json:"year,omitempty"`
	Description    string    `json:"description,omitempty"`
	FileURL        string    `json:"fileUrl"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	SEOKeywords    StringSet `json:"seoKeywords"`
	SEODescription string    `json:"seoDescription,omitempty"`
	Difficulty     string    `json:"difficulty,omitempty"`
	IsPublished    bool      `json:"isPublished"`
	Author         Author    `json:"author"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type OldQuestionInput struct {
	contentInput
	academicInput
	Question    *string `json:"question"`
	Answer      *string `json:"answer"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty"`
}

func (in OldQuestionInput) Validate(partial bool) error {
	c := newFieldCheck(partial)
	in.contentInput.check(c)
	c.required("question", in.Question, "Question is required")
	c.required("answer", in.Answer, "Answer is required")
	c.required("subject", in.Subject, "Subject is required")
	in.academicInput.check(c)
	c.oneOf("difficulty", in.Difficulty, difficulties)
	return c.err()
}

func (in OldQuestionInput) Changes(create bool) []Change {
	var c changeSet
	in.contentInput.collect(&c, create)
	c.text("question", in.Question)
	c.text("answer", in.Answer)
	c.text("description", in.Description)
	c.text("difficulty", in.Difficulty)
	in.academicInput.collect(&c)
	return c
}

var OldQuestionQuery = query.Spec{
	Filters: []query.Filter{
		{Name: "subject", Kind: query.String},
		{Name: "semester", Kind: query.String},
		{Name: "faculty", Kind: query.String},
		{Name: "year", Kind: query.Int},
		{Name: "difficulty", Kind: query.String},
		{Name: "isPublished", Kind: query.Bool},
	},
	Sorts: []string{"createdAt", "updatedAt", "title", "year"},
}
