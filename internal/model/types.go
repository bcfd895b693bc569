package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Change is one field assignment of a create or partial update, keyed by API field name.
type Change struct {
	Field string
	Value any
}

// Author is the read-only author join embedded in every resource.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StringSet is a set of strings stored as a JSON array column.
type StringSet []string

// NewStringSet trims, drops blanks and removes duplicates while keeping first-seen order.
func NewStringSet(values []string) StringSet {
	set := make(StringSet, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	return set
}

func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(src any) error {
	*s = StringSet{}
	return scanJSON(src, s)
}

// Section is one block of a blog post; either part may be empty.
type Section struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Sections is the ordered body of a blog post, stored as a JSON array column.
type Sections []Section

func (s Sections) Value() (driver.Value, error) {
	if s == nil {
		s = Sections{}
	}
	b, err := json.Marshal([]Section(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Sections) Scan(src any) error {
	*s = Sections{}
	return scanJSON(src, s)
}

func scanJSON(src any, dest any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
