package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/query"
)

// ResourceStore persists one resource type.
type ResourceStore[T any] interface {
	List(ctx context.Context, p query.Params) ([]T, int, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, id, authorID string, changes []model.Change) (*T, error)
	Update(ctx context.Context, id string, changes []model.Change) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Input is a decoded create or update body.
type Input interface {
	Validate(partial bool) error
	Changes(create bool) []model.Change
}

// AuthorLookup resolves the author of a new resource.
type AuthorLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ResourceService implements list, read, create, update and delete for one
// resource type.
type ResourceService[T any] struct {
	name  string
	store ResourceStore[T]
	users AuthorLookup
	spec  query.Spec
}

func NewResourceService[T any](name string, store ResourceStore[T], users AuthorLookup, spec query.Spec) *ResourceService[T] {
	return &ResourceService[T]{name: name, store: store, users: users, spec: spec}
}

// QuerySpec lists the filters and sort keys List accepts.
func (s *ResourceService[T]) QuerySpec() query.Spec {
	return s.spec
}

func (s *ResourceService[T]) List(ctx context.Context, p query.Params) (query.Page[T], error) {
	items, total, err := s.store.List(ctx, p)
	if err != nil {
		return query.Page[T]{}, fmt.Errorf("%s.list: %w", s.name, err)
	}
	return query.NewPage(items, total, p), nil
}

func (s *ResourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

// Create validates in, checks that the author exists and stores the item.
func (s *ResourceService[T]) Create(ctx context.Context, authorID string, in Input) (*T, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Invalid("author", "Author not found")
		}
		return nil, fmt.Errorf("%s.create: resolving author: %w", s.name, err)
	}

	id := uuid.NewString()
	item, err := s.store.Create(ctx, id, authorID, in.Changes(true))
	if err != nil {
		return nil, fmt.Errorf("%s.create: %w", s.name, err)
	}

	slog.Info("resource created", "resource", s.name, "id", id, "author_id", authorID)
	return item, nil
}

// Update applies only the fields present in in.
func (s *ResourceService[T]) Update(ctx context.Context, id string, in Input) (*T, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, in.Changes(false))
}

// Delete removes the item permanently and returns its id.
func (s *ResourceService[T]) Delete(ctx context.Context, id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return "", err
	}

	slog.Info("resource deleted", "resource", s.name, "id", id)
	return id, nil
}
