package repository

import "github.com/campusnotes/campusnotes-api/internal/model"

func academicCols() []Column {
	return []Column{
		textCol("subject", "subject"),
		textCol("semester", "semester"),
		textCol("faculty", "faculty"),
		nullCol("year", "year"),
	}
}

func seoCols() []Column {
	return []Column{
		textCol("fileUrl", "file_url"),
		textCol("imageUrl", "image_url"),
		jsonCol("seoKeywords", "seo_keywords"),
		textCol("seoDescription", "seo_description"),
		boolCol("isPublished", "is_published", true),
	}
}

func columns(groups ...[]Column) []Column {
	var out []Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var NoteSchema = Schema[model.Note]{
	Table: "notes",
	Columns: columns(
		[]Column{
			textCol("title", "title"),
			textCol("slug", "slug"),
			textCol("content", "content"),
			textCol("description", "description"),
		},
		academicCols(),
		seoCols(),
		[]Column{
			counterCol("views", "views"),
			counterCol("likes", "likes"),
		},
	),
	Search: []string{"title", "description"},
	Dest: func(n *model.Note) []any {
		return []any{
			&n.ID,
			&n.Title, &n.Slug, &n.Content, &n.Description,
			&n.Subject, &n.Semester, &n.Faculty, &n.Year,
			&n.FileURL, &n.ImageURL, &n.SEOKeywords, &n.SEODescription, &n.IsPublished,
			&n.Views, &n.Likes,
			&n.CreatedAt, &n.UpdatedAt,
			&n.Author.ID, &n.Author.Name, &n.Author.Email,
		}
	},
}

var AssignmentSchema = Schema[model.Assignment]{
	Table: "assignments",
	Columns: columns(
		[]Column{
			textCol("title", "title"),
			textCol("slug", "slug"),
			textCol("description", "description"),
			textCol("instructions", "instructions"),
			nullCol("dueDate", "due_date"),
			nullCol("totalMarks", "total_marks"),
			textCol("difficulty", "difficulty"),
		},
		academicCols(),
		seoCols(),
	),
	Search: []string{"title", "description"},
	Dest: func(a *model.Assignment) []any {
		return []any{
			&a.ID,
			&a.Title, &a.Slug, &a.Description, &a.Instructions,
			&a.DueDate, &a.TotalMarks, &a.Difficulty,
			&a.Subject, &a.Semester, &a.Faculty, &a.Year,
			&a.FileURL, &a.ImageURL, &a.SEOKeywords, &a.SEODescription, &a.IsPublished,
			&a.CreatedAt, &a.UpdatedAt,
			&a.Author.ID, &a.Author.Name, &a.Author.Email,
		}
	},
}

var OldQuestionSchema = Schema[model.OldQuestion]{
	Table: "old_questions",
	Columns: columns(
		[]Column{
			textCol("title", "title"),
			textCol("slug", "slug"),
			textCol("question", "question"),
			textCol("answer", "answer"),
			textCol("description", "description"),
			textCol("difficulty", "difficulty"),
		},
		academicCols(),
		seoCols(),
	),
	Search: []string{"title", "question", "answer"},
	Dest: func(q *model.OldQuestion) []any {
		return []any{
			&q.ID,
			&q.Title, &q.Slug, &q.Question, &q.Answer, &q.Description, &q.Difficulty,
			&q.Subject, &q.Semester, &q.Faculty, &q.Year,
			&q.FileURL, &q.ImageURL, &q.SEOKeywords, &q.SEODescription, &q.IsPublished,
			&q.CreatedAt, &q.UpdatedAt,
			&q.Author.ID, &q.Author.Name, &q.Author.Email,
		}
	},
}

var BlogSchema = Schema[model.Blog]{
	Table: "blogs",
	Columns: columns(
		[]Column{
			textCol("title", "title"),
			textCol("slug", "slug"),
			jsonCol("sections", "sections"),
			textCol("excerpt", "excerpt"),
			textCol("category", "category"),
			textCol("description", "description"),
			boolCol("isFeatured", "is_featured", false),
			nullCol("readTimeMinutes", "read_time_minutes"),
		},
		seoCols(),
		[]Column{
			counterCol("views", "views"),
			counterCol("likes", "likes"),
		},
	),
	Search: []string{"title", "excerpt", "description"},
	Dest: func(b *model.Blog) []any {
		return []any{
			&b.ID,
			&b.Title, &b.Slug, &b.Sections, &b.Excerpt, &b.Category, &b.Description,
			&b.IsFeatured, &b.ReadTimeMinutes,
			&b.FileURL, &b.ImageURL, &b.SEOKeywords, &b.SEODescription, &b.IsPublished,
			&b.Views, &b.Likes,
			&b.CreatedAt, &b.UpdatedAt,
			&b.Author.ID, &b.Author.Name, &b.Author.Email,
		}
	},
}
