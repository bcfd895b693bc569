package model

import (
	"slices"
	"strings"
	"time"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/gosimple/slug"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// fieldCheck runs the same validators for create and partial update. On update
// (partial) an absent field is skipped, but a present required field may not be blank.
type fieldCheck struct {
	errs    common.ValidationError
	partial bool
}

func newFieldCheck(partial bool) *fieldCheck {
	return &fieldCheck{partial: partial}
}

func (c *fieldCheck) required(field string, value *string, message string) {
	if value == nil {
		if !c.partial {
			c.errs.Add(field, message)
		}
		return
	}
	if strings.TrimSpace(*value) == "" {
		c.errs.Add(field, message)
	}
}

func (c *fieldCheck) requiredSlice(field string, present bool, message string) {
	if !present && !c.partial {
		c.errs.Add(field, message)
	}
}

func (c *fieldCheck) oneOf(field string, value *string, allowed []string) {
	if value == nil {
		return
	}
	v := strings.TrimSpace(*value)
	if v != "" && !slices.Contains(allowed, v) {
		c.errs.Add(field, field+" must be one of: "+strings.Join(allowed, ", "))
	}
}

func (c *fieldCheck) positive(field string, value *int) {
	if value != nil && *value <= 0 {
		c.errs.Add(field, field+" must be a positive number")
	}
}

func (c *fieldCheck) nonNegative(field string, value *int) {
	if value != nil && *value < 0 {
		c.errs.Add(field, field+" must not be negative")
	}
}

func (c *fieldCheck) date(field string, value *string, message string) {
	if value == nil {
		if !c.partial {
			c.errs.Add(field, message)
		}
		return
	}
	if _, err := ParseDate(*value); err != nil {
		c.errs.Add(field, "Invalid due date")
	}
}

func (c *fieldCheck) err() error {
	return c.errs.Err()
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// changeSet accumulates the fields present in an input, trimmed.
type changeSet []Change

func (c *changeSet) text(field string, v *string) {
	if v != nil {
		*c = append(*c, Change{Field: field, Value: strings.TrimSpace(*v)})
	}
}

// title also derives the SEO slug.
func (c *changeSet) title(v *string) {
	if v == nil {
		return
	}
	t := strings.TrimSpace(*v)
	*c = append(*c, Change{Field: "title", Value: t}, Change{Field: "slug", Value: slug.Make(t)})
}

func (c *changeSet) number(field string, v *int) {
	if v != nil {
		*c = append(*c, Change{Field: field, Value: *v})
	}
}

func (c *changeSet) flag(field string, v *bool) {
	if v != nil {
		*c = append(*c, Change{Field: field, Value: *v})
	}
}

func (c *changeSet) keywords(v *[]string) {
	if v != nil {
		*c = append(*c, Change{Field: "seoKeywords", Value: NewStringSet(*v)})
	}
}

func (c *changeSet) published(v *bool, create bool) {
	if v == nil && create {
		*c = append(*c, Change{Field: "isPublished", Value: true})
		return
	}
	c.flag("isPublished", v)
}

// contentInput holds the fields every resource type accepts.
type contentInput struct {
	Title          *string   `json:"title"`
	FileURL        *string   `json:"fileUrl"`
	ImageURL       *string   `json:"imageUrl"`
	SEOKeywords    *[]string `json:"seoKeywords"`
	SEODescription *string   `json:"seoDescription"`
	IsPublished    *bool     `json:"isPublished"`
}

func (in contentInput) check(c *fieldCheck) {
	c.required("title", in.Title, "Title is required")
	c.required("fileUrl", in.FileURL, "File URL is required")
}

func (in contentInput) collect(c *changeSet, create bool) {
	c.title(in.Title)
	c.text("fileUrl", in.FileURL)
	c.text("imageUrl", in.ImageURL)
	c.keywords(in.SEOKeywords)
	c.text("seoDescription", in.SEODescription)
	c.published(in.IsPublished, create)
}

// academicInput holds the classification fields of notes, assignments and old questions.
type academicInput struct {
	Subject  *string `json:"subject"`
	Semester *string `json:"semester"`
	Faculty  *string `json:"faculty"`
	Year     *int    `json:"year"`
}

func (in academicInput) check(c *fieldCheck) {
	c.positive("year", in.Year)
}

func (in academicInput) collect(c *changeSet) {
	c.text("subject", in.Subject)
	c.text("semester", in.Semester)
	c.text("faculty", in.Faculty)
	c.number("year", in.Year)
}
