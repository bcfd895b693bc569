package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusnotes/campusnotes-api/internal/access"
	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/crypto"
	"github.com/campusnotes/campusnotes-api/internal/metrics"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/query"
	"github.com/campusnotes/campusnotes-api/internal/service"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]model.User
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	u := *user
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Update(ctx context.Context, id string, changes []model.Change) (*model.User, error) {
	m.mu.Lock()
	u, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return nil, common.ErrNotFound
	}
	for _, ch := range changes {
		switch ch.Field {
		case "name":
			u.Name = ch.Value.(string)
		case "bio":
			u.Bio = ch.Value.(string)
		case "passwordHash":
			u.PasswordHash = ch.Value.(string)
		case "isActive":
			u.IsActive = ch.Value.(bool)
		}
	}
	m.byID[id] = u
	m.mu.Unlock()
	return m.GetByID(ctx, id)
}

// memNotes keeps notes in memory and orders them by creation sequence.
type memNotes struct {
	mu    sync.Mutex
	users *memUsers
	rows  map[string]model.Note
	clock time.Time
}

func (m *memNotes) apply(n *model.Note, changes []model.Change) {
	for _, ch := range changes {
		switch ch.Field {
		case "title":
			n.Title = ch.Value.(string)
		case "slug":
			n.Slug = ch.Value.(string)
		case "content":
			n.Content = ch.Value.(string)
		case "description":
			n.Description = ch.Value.(string)
		case "subject":
			n.Subject = ch.Value.(string)
		case "fileUrl":
			n.FileURL = ch.Value.(string)
		case "isPublished":
			n.IsPublished = ch.Value.(bool)
		case "seoKeywords":
			n.SEOKeywords = ch.Value.(model.StringSet)
		}
	}
}

func (m *memNotes) List(_ context.Context, p query.Params) ([]model.Note, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []model.Note
	for _, n := range m.rows {
		if p.Search != "" {
			term := strings.ToLower(p.Search)
			if !strings.Contains(strings.ToLower(n.Title), term) && !strings.Contains(strings.ToLower(n.Description), term) {
				continue
			}
		}
		keep := true
		for _, c := range p.Conditions {
			switch c.Field {
			case "subject":
				keep = keep && n.Subject == c.Value
			case "isPublished":
				keep = keep && n.IsPublished == c.Value
			}
		}
		if keep {
			matched = append(matched, n)
		}
	}
	slices.SortFunc(matched, func(a, b model.Note) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if p.Desc {
			return -c
		}
		return c
	})

	total := len(matched)
	start := min(p.Offset(), total)
	end := min(start+p.Limit, total)
	return matched[start:end], total, nil
}

func (m *memNotes) FindByID(_ context.Context, id string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &n, nil
}

func (m *memNotes) Create(ctx context.Context, id, authorID string, changes []model.Change) (*model.Note, error) {
	author, err := m.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.clock = m.clock.Add(time.Second)
	n := model.Note{
		ID:          id,
		SEOKeywords: model.StringSet{},
		Author:      model.Author{ID: author.ID, Name: author.Name, Email: author.Email},
		CreatedAt:   m.clock,
		UpdatedAt:   m.clock,
	}
	m.apply(&n, changes)
	m.rows[id] = n
	m.mu.Unlock()

	return m.FindByID(ctx, id)
}

func (m *memNotes) Update(ctx context.Context, id string, changes []model.Change) (*model.Note, error) {
	m.mu.Lock()
	n, ok := m.rows[id]
	if ok {
		m.apply(&n, changes)
		n.UpdatedAt = n.UpdatedAt.Add(time.Millisecond)
		m.rows[id] = n
	}
	m.mu.Unlock()
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.FindByID(ctx, id)
}

func (m *memNotes) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func newTestRouter(t *testing.T, opts ...access.Option) http.Handler {
	t.Helper()
	users := &memUsers{byID: make(map[string]model.User)}
	notes := &memNotes{users: users, rows: make(map[string]model.Note), clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	hasher := crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	tokens := crypto.NewTokenService("test-secret", time.Hour)

	return NewRouter(Deps{
		Auth:  service.NewAuthService(users, hasher, tokens),
		Notes: service.NewResourceService[model.Note]("notes", notes, users, model.NoteQuery),
		// The remaining stores are never reached by these tests.
		Assignments:  service.NewResourceService[model.Assignment]("assignments", nil, users, model.AssignmentQuery),
		OldQuestions: service.NewResourceService[model.OldQuestion]("old_questions", nil, users, model.OldQuestionQuery),
		Blogs:        service.NewResourceService[model.Blog]("blogs", nil, users, model.BlogQuery),
		Tokens:       tokens,
		Policy:       access.NewPolicy(opts...),
		Metrics:      metrics.New(prometheus.NewRegistry()),
	})
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

func registerAndLogin(t *testing.T, h http.Handler, email, role string) model.AuthResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secret1", "name": "User " + role, "role": role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", email, rec.Code, rec.Body.String())
	}
	return decode[model.AuthResponse](t, rec)
}

func TestScenario_StudentForbiddenAdminCreates(t *testing.T) {
	h := newTestRouter(t)
	note := map[string]string{"title": "T", "content": "C", "fileUrl": "u"}

	student := registerAndLogin(t, h, "a@example.com", model.RoleStudent)
	if student.User.Role != model.RoleStudent {
		t.Fatalf("student role = %q", student.User.Role)
	}
	if rec := do(t, h, http.MethodPost, "/api/notes", student.Token, note); rec.Code != http.StatusForbidden {
		t.Fatalf("student create: status %d, want 403", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/notes", "", note); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: status %d, want 401", rec.Code)
	}

	admin := registerAndLogin(t, h, "b@example.com", model.RoleAdmin)
	rec := do(t, h, http.MethodPost, "/api/notes", admin.Token, note)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create: status %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[model.Note](t, rec)
	if !created.IsPublished {
		t.Error("isPublished should default to true")
	}

	rec = do(t, h, http.MethodGet, "/api/notes/"+created.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	got := decode[model.Note](t, rec)
	if got.Title != "T" || got.Content != "C" || got.FileURL != "u" {
		t.Errorf("get = %+v", got)
	}
	if got.Author.Name != admin.User.Name || got.Author.Email != "b@example.com" {
		t.Errorf("author = %+v, want name %q email b@example.com", got.Author, admin.User.Name)
	}
}

func TestScenario_SearchPagination(t *testing.T) {
	h := newTestRouter(t)
	admin := registerAndLogin(t, h, "admin@example.com", model.RoleAdmin)

	for i := 0; i < 12; i++ {
		rec := do(t, h, http.MethodPost, "/api/notes", admin.Token, map[string]string{
			"title": "Algorithms part", "content": "C", "fileUrl": "u",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed: status %d", rec.Code)
		}
	}
	for i := 0; i < 3; i++ {
		do(t, h, http.MethodPost, "/api/notes", admin.Token, map[string]string{
			"title": "Networks", "content": "C", "fileUrl": "u",
		})
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		rec := do(t, h, http.MethodGet, "/api/notes?search=ALGO&limit=5&page="+strconv.Itoa(page), "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list page %d: status %d", page, rec.Code)
		}
		got := decode[query.Page[model.Note]](t, rec)
		if got.Total != 12 || got.TotalPages != 3 || got.Page != page || got.Limit != 5 {
			t.Errorf("page %d envelope = %+v", page, got)
		}
		wantCount := 5
		if page == 3 {
			wantCount = 2
		}
		if got.Count != wantCount || len(got.Items) != wantCount {
			t.Errorf("page %d count = %d, want %d", page, got.Count, wantCount)
		}
		for _, n := range got.Items {
			if seen[n.ID] {
				t.Errorf("note %s appears on more than one page", n.ID)
			}
			seen[n.ID] = true
		}
	}
	if len(seen) != 12 {
		t.Errorf("saw %d distinct notes across pages, want 12", len(seen))
	}
}

func TestListRejectsBadParams(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/notes?sortBy=password&limit=500", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	body := decode[map[string][]common.FieldError](t, rec)
	if len(body["errors"]) != 2 {
		t.Errorf("errors = %v, want sortBy and limit", body["errors"])
	}
}

func TestCreateValidation(t *testing.T) {
	h := newTestRouter(t)
	admin := registerAndLogin(t, h, "admin@example.com", model.RoleAdmin)

	rec := do(t, h, http.MethodPost, "/api/notes", admin.Token, map[string]string{"title": "only a title"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	body := decode[map[string][]common.FieldError](t, rec)
	fields := map[string]bool{}
	for _, f := range body["errors"] {
		fields[f.Field] = true
	}
	if !fields["content"] || !fields["fileUrl"] || fields["title"] {
		t.Errorf("errors = %v, want content and fileUrl only", body["errors"])
	}
}

func TestUpdateDeleteLifecycle(t *testing.T) {
	h := newTestRouter(t)
	admin := registerAndLogin(t, h, "admin@example.com", model.RoleAdmin)

	rec := do(t, h, http.MethodPost, "/api/notes", admin.Token, map[string]any{
		"title": "T", "content": "C", "fileUrl": "u", "description": "keep me",
	})
	created := decode[model.Note](t, rec)

	rec = do(t, h, http.MethodPut, "/api/notes/"+created.ID, admin.Token, map[string]any{"title": "Renamed", "isPublished": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[model.Note](t, rec)
	if updated.Title != "Renamed" || updated.Slug != "renamed" || updated.IsPublished {
		t.Errorf("update = %+v", updated)
	}
	if updated.Description != "keep me" || updated.Content != "C" {
		t.Errorf("absent fields changed: %+v", updated)
	}

	rec = do(t, h, http.MethodDelete, "/api/notes/"+created.ID, admin.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	if body := decode[map[string]string](t, rec); body["id"] != created.ID {
		t.Errorf("delete body = %v", body)
	}

	if rec := do(t, h, http.MethodGet, "/api/notes/"+created.ID, "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/notes/"+created.ID, admin.Token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", rec.Code)
	}
}

func TestMalformedID(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/notes/12345", "/api/users/12345"} {
		rec := do(t, h, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: status %d, want 400", path, rec.Code)
		}
	}
}

func TestMutationsCheckedBeforeStore(t *testing.T) {
	h := newTestRouter(t)
	student := registerAndLogin(t, h, "s@example.com", model.RoleStudent)

	// Blog storage is nil here; reaching it would panic.
	tests := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodPost, "/api/blogs", "", http.StatusUnauthorized},
		{http.MethodPut, "/api/blogs/7f1e7c0a-0000-4000-8000-000000000000", student.Token, http.StatusForbidden},
		{http.MethodDelete, "/api/old-questions/7f1e7c0a-0000-4000-8000-000000000000", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/assignments", student.Token, http.StatusForbidden},
	}
	for _, tt := range tests {
		if rec := do(t, h, tt.method, tt.path, tt.token, map[string]string{}); rec.Code != tt.want {
			t.Errorf("%s %s: status %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestAuthFlows(t *testing.T) {
	h := newTestRouter(t)
	user := registerAndLogin(t, h, "me@example.com", "")

	rec := do(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ME@example.com", "password": "secret1", "name": "Dup",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register: status %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "me@example.com", "password": "nope!!"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login: status %d, want 401", rec.Code)
	}

	if rec := do(t, h, http.MethodGet, "/api/auth/me", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous me: status %d, want 401", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/auth/me", user.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status %d", rec.Code)
	}
	if me := decode[map[string]any](t, rec); me["email"] != "me@example.com" || me["passwordHash"] != nil {
		t.Errorf("me = %v", me)
	}

	rec = do(t, h, http.MethodPut, "/api/users/"+user.User.ID+"/password", user.Token,
		map[string]string{"oldPassword": "wrong1", "newPassword": "secret2"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("wrong old password: status %d, want 400", rec.Code)
	}

	rec = do(t, h, http.MethodPut, "/api/users/"+user.User.ID+"/deactivate", user.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "me@example.com", "password": "secret1"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login after deactivate: status %d, want 401", rec.Code)
	}
}

func TestProfileOwnership(t *testing.T) {
	h := newTestRouter(t, access.WithProfileOwnership(true))
	a := registerAndLogin(t, h, "a@example.com", "")
	b := registerAndLogin(t, h, "b@example.com", "")

	if rec := do(t, h, http.MethodPut, "/api/users/"+b.User.ID, a.Token, map[string]string{"bio": "x"}); rec.Code != http.StatusForbidden {
		t.Errorf("edit other: status %d, want 403", rec.Code)
	}
	rec := do(t, h, http.MethodPut, "/api/users/"+a.User.ID, a.Token, map[string]string{"bio": "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit self: status %d", rec.Code)
	}
	if got := decode[model.UserResponse](t, rec); got.Bio != "hello" {
		t.Errorf("bio = %q", got.Bio)
	}
}

func TestAuxiliaryEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
	health := decode[map[string]string](t, rec)
	if health["status"] != "ok" {
		t.Errorf("health = %v", health)
	}
	if _, err := time.Parse(time.RFC3339, health["timestamp"]); err != nil {
		t.Errorf("health timestamp %q: %v", health["timestamp"], err)
	}

	rec = do(t, h, http.MethodGet, "/api/subjects", "", nil)
	if subjects := decode[[]model.SemesterSubjects](t, rec); len(subjects) != 8 {
		t.Errorf("subjects has %d semesters, want 8", len(subjects))
	}

	if rec := do(t, h, http.MethodGet, "/metrics", "", nil); rec.Code != http.StatusOK {
		t.Errorf("metrics: status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/nope", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route: status %d, want 404", rec.Code)
	}
}
