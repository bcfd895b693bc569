package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/query"
)

// Column maps an API field to a table column.
type Column struct {
	Field string
	Name  string
	// Default is written on create when the field is absent.
	Default any
	// ReadOnly columns are selected but never written by create or update.
	ReadOnly bool
}

func textCol(field, name string) Column {
	return Column{Field: field, Name: name, Default: ""}
}

// nullCol is stored as NULL when absent.
func nullCol(field, name string) Column {
	return Column{Field: field, Name: name}
}

func boolCol(field, name string, def bool) Column {
	return Column{Field: field, Name: name, Default: def}
}

func jsonCol(field, name string) Column {
	return Column{Field: field, Name: name, Default: "[]"}
}

func counterCol(field, name string) Column {
	return Column{Field: field, Name: name, ReadOnly: true}
}

// Schema describes how one resource type is stored.
type Schema[T any] struct {
	Table   string
	Columns []Column
	// Search lists the API fields matched by the free-text search.
	Search []string
	// Dest returns scan targets in select order: id, Columns..., created_at,
	// updated_at, author id, author name, author email.
	Dest func(*T) []any
}

func (s *Schema[T]) column(field string) (Column, bool) {
	switch field {
	case "createdAt":
		return Column{Field: field, Name: "created_at", ReadOnly: true}, true
	case "updatedAt":
		return Column{Field: field, Name: "updated_at", ReadOnly: true}, true
	}
	for _, c := range s.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

func (s *Schema[T]) selectFrom() string {
	cols := make([]string, 0, len(s.Columns)+6)
	cols = append(cols, "t.id")
	for _, c := range s.Columns {
		cols = append(cols, "t."+c.Name)
	}
	cols = append(cols, "t.created_at", "t.updated_at", "u.id", "u.name", "u.email")
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + s.Table + " t JOIN users u ON u.id = t.author_id"
}

// Repository is the MySQL store for one resource type.
type Repository[T any] struct {
	db     *sql.DB
	schema Schema[T]
}

func NewRepository[T any](db *sql.DB, schema Schema[T]) *Repository[T] {
	return &Repository[T]{db: db, schema: schema}
}

// List returns one page of matching rows and the total number of matches.
func (r *Repository[T]) List(ctx context.Context, p query.Params) ([]T, int, error) {
	listSQL, countSQL, args, err := r.buildList(p)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", r.schema.Table, err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	rows, err := r.db.QueryContext(ctx, listSQL, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", r.schema.Table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var item T
		if err := rows.Scan(r.schema.Dest(&item)...); err != nil {
			return nil, 0, fmt.Errorf("scanning %s: %w", r.schema.Table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", r.schema.Table, err)
	}

	return items, total, nil
}

// buildList returns the page query (without its LIMIT/OFFSET args), the count
// query and the shared WHERE args. Fields are resolved through the schema, so
// only known columns reach the SQL text.
func (r *Repository[T]) buildList(p query.Params) (string, string, []any, error) {
	var (
		where []string
		args  []any
	)

	for _, cond := range p.Conditions {
		col, ok := r.schema.column(cond.Field)
		if !ok {
			return "", "", nil, fmt.Errorf("%s: unknown filter %q", r.schema.Table, cond.Field)
		}
		where = append(where, "t."+col.Name+" = ?")
		args = append(args, cond.Value)
	}

	if p.Search != "" && len(r.schema.Search) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(p.Search)) + "%"
		ors := make([]string, 0, len(r.schema.Search))
		for _, field := range r.schema.Search {
			col, ok := r.schema.column(field)
			if !ok {
				return "", "", nil, fmt.Errorf("%s: unknown search field %q", r.schema.Table, field)
			}
			ors = append(ors, "LOWER(t."+col.Name+") LIKE ?")
			args = append(args, pattern)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = query.DefaultSort
	}
	sortCol, ok := r.schema.column(sortBy)
	if !ok {
		return "", "", nil, fmt.Errorf("%s: unknown sort field %q", r.schema.Table, sortBy)
	}
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}

	listSQL := r.schema.selectFrom() + whereSQL +
		" ORDER BY t." + sortCol.Name + " " + dir + ", t.id " + dir + " LIMIT ? OFFSET ?"
	countSQL := "SELECT COUNT(*) FROM " + r.schema.Table + " t JOIN users u ON u.id = t.author_id" + whereSQL

	return listSQL, countSQL, args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// FindByID returns the row with its author join, or common.ErrNotFound.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.db.QueryRowContext(ctx, r.schema.selectFrom()+" WHERE t.id = ?", id).Scan(r.schema.Dest(&item)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("finding %s %s: %w", r.schema.Table, id, err)
	}
	return &item, nil
}

// Create inserts a row. Absent writable fields take their column default.
func (r *Repository[T]) Create(ctx context.Context, id, authorID string, changes []model.Change) (*T, error) {
	values := make(map[string]any, len(changes))
	for _, ch := range changes {
		col, ok := r.schema.column(ch.Field)
		if !ok || col.ReadOnly {
			return nil, fmt.Errorf("%s: field %q is not writable", r.schema.Table, ch.Field)
		}
		values[ch.Field] = ch.Value
	}

	cols := []string{"id", "author_id"}
	args := []any{id, authorID}
	for _, c := range r.schema.Columns {
		if c.ReadOnly {
			continue
		}
		v, ok := values[c.Field]
		if !ok {
			v = c.Default
		}
		cols = append(cols, c.Name)
		args = append(args, v)
	}

	stmt := "INSERT INTO " + r.schema.Table + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		placeholders(len(cols)) + ")"
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("inserting %s: %w", r.schema.Table, err)
	}

	return r.FindByID(ctx, id)
}

// Update writes only the given fields and returns the row as stored. An empty
// change set still bumps updated_at.
func (r *Repository[T]) Update(ctx context.Context, id string, changes []model.Change) (*T, error) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	for _, ch := range changes {
		col, ok := r.schema.column(ch.Field)
		if !ok || col.ReadOnly {
			return nil, fmt.Errorf("%s: field %q is not writable", r.schema.Table, ch.Field)
		}
		sets = append(sets, col.Name+" = ?")
		args = append(args, ch.Value)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP(3)")
	args = append(args, id)

	stmt := "UPDATE " + r.schema.Table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", r.schema.Table, id, err)
	}

	// MySQL reports zero affected rows for a no-op write, so existence is
	// decided by the read.
	return r.FindByID(ctx, id)
}

// Delete removes the row permanently.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM "+r.schema.Table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", r.schema.Table, id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
