package model

import (
	"time"

	"github.com/campusnotes/campusnotes-api/internal/query"
)

type Blog struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Sections        Sections  `json:"sections"`
	Excerpt         string    `json:"excerpt,omitempty"`
	Category        string    `json:"category,omitempty"`
	Description     string    `json:"description,omitempty"`
	FileURL         string    `json:"fileUrl"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	SEOKeywords     StringSet `json:"seoKeywords"`
	SEODescription  string    `json:"seoDescription,omitempty"`
	IsPublished     bool      `json:"isPublished"`
	IsFeatured      bool      `json:"isFeatured"`
	ReadTimeMinutes *int      `json:"readTimeMinutes,omitempty"`
	Views           int       `json:"views"`
	Likes           int       `json:"likes"`
	Author          Author    `json:"author"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BlogInput struct {
	contentInput
	Sections        *[]Section `json:"sections"`
	Excerpt         *string    `json:"excerpt"`
	Category        *string    `json:"category"`
	Description     *string    `json:"description"`
	IsFeatured      *bool      `json:"isFeatured"`
	ReadTimeMinutes *int       `json:"readTimeMinutes"`
}

func (in BlogInput) Validate(partial bool) error {
	c := newFieldCheck(partial)
	in.contentInput.check(c)
	c.requiredSlice("sections", in.Sections != nil, "Sections must be an array")
	c.nonNegative("readTimeMinutes", in.ReadTimeMinutes)
	return c.err()
}

func (in BlogInput) Changes(create bool) []Change {
	var c changeSet
	in.contentInput.collect(&c, create)
	if in.Sections != nil {
		c = append(c, Change{Field: "sections", Value: Sections(*in.Sections)})
	}
	c.text("excerpt", in.Excerpt)
	c.text("category", in.Category)
	c.text("description", in.Description)
	c.flag("isFeatured", in.IsFeatured)
	c.number("readTimeMinutes", in.ReadTimeMinutes)
	return c
}

var BlogQuery = query.Spec{
	Filters: []query.Filter{
		{Name: "category", Kind: query.String},
		{Name: "isPublished", Kind: query.Bool},
		{Name: "isFeatured", Kind: query.Bool},
	},
	Sorts: []string{"createdAt", "updatedAt", "title", "views", "likes"},
}
