package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/crypto"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/query"
)

// fakeUsers is an in-memory UserStore with a unique email index.
type fakeUsers struct {
	byID map[string]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*model.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	stored := *user
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(ctx context.Context, id string, changes []model.Change) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	for _, ch := range changes {
		switch ch.Field {
		case "name":
			u.Name = ch.Value.(string)
		case "phoneNumber":
			u.PhoneNumber = ch.Value.(string)
		case "bio":
			u.Bio = ch.Value.(string)
		case "profileImageUrl":
			u.ProfileImageURL = ch.Value.(string)
		case "profileFileUrl":
			u.ProfileFileURL = ch.Value.(string)
		case "institution":
			u.Institution = ch.Value.(string)
		case "department":
			u.Department = ch.Value.(string)
		case "passwordHash":
			u.PasswordHash = ch.Value.(string)
		case "isActive":
			u.IsActive = ch.Value.(bool)
		default:
			return nil, fmt.Errorf("users: field %q is not writable", ch.Field)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	return f.GetByID(ctx, id)
}

func newTestAuthService() (*AuthService, *fakeUsers) {
	users := newFakeUsers()
	hasher := crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	return NewAuthService(users, hasher, crypto.NewTokenService("test-secret", time.Hour)), users
}

// recordingStore is a ResourceStore that remembers its last call.
type recordingStore struct {
	calls    []string
	lastID   string
	author   string
	changes  []model.Change
	params   query.Params
	items    []model.Note
	total    int
	notFound bool
}

func (s *recordingStore) List(_ context.Context, p query.Params) ([]model.Note, int, error) {
	s.calls = append(s.calls, "list")
	s.params = p
	return s.items, s.total, nil
}

func (s *recordingStore) FindByID(_ context.Context, id string) (*model.Note, error) {
	s.calls = append(s.calls, "find")
	s.lastID = id
	if s.notFound {
		return nil, common.ErrNotFound
	}
	return &model.Note{ID: id}, nil
}

func (s *recordingStore) Create(_ context.Context, id, authorID string, changes []model.Change) (*model.Note, error) {
	s.calls = append(s.calls, "create")
	s.lastID, s.author, s.changes = id, authorID, changes
	return &model.Note{ID: id, Author: model.Author{ID: authorID}}, nil
}

func (s *recordingStore) Update(_ context.Context, id string, changes []model.Change) (*model.Note, error) {
	s.calls = append(s.calls, "update")
	s.lastID, s.changes = id, changes
	if s.notFound {
		return nil, common.ErrNotFound
	}
	return &model.Note{ID: id}, nil
}

func (s *recordingStore) Delete(_ context.Context, id string) error {
	s.calls = append(s.calls, "delete")
	s.lastID = id
	if s.notFound {
		return common.ErrNotFound
	}
	return nil
}
