package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campusnotes/campusnotes-api/internal/access"
	"github.com/campusnotes/campusnotes-api/internal/metrics"
	"github.com/campusnotes/campusnotes-api/internal/middleware"
	"github.com/campusnotes/campusnotes-api/internal/model"
	"github.com/campusnotes/campusnotes-api/internal/service"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Auth         *service.AuthService
	Notes        *service.ResourceService[model.Note]
	Assignments  *service.ResourceService[model.Assignment]
	OldQuestions *service.ResourceService[model.OldQuestion]
	Blogs        *service.ResourceService[model.Blog]
	Tokens       middleware.TokenVerifier
	Policy       *access.Policy
	// Metrics is optional; nil disables instrumentation and /metrics.
	Metrics *metrics.Metrics
}

// NewRouter wires every route. Each route is guarded by the access policy
// before its handler touches a store.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
	}
	r.Use(middleware.Authenticate(d.Tokens))

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse("Route not found"))
	})

	r.Get("/health", HandleHealth)

	guard := func(res access.Resource, op access.Op) func(http.Handler) http.Handler {
		return middleware.Authorize(d.Policy, res, op)
	}

	authHandler := NewAuthHandler(d.Auth)
	userHandler := NewUserHandler(d.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/subjects", HandleSubjects)

		r.Route("/auth", func(r chi.Router) {
			r.With(guard(access.Auth, access.OpRegister)).Post("/register", authHandler.HandleRegister)
			r.With(guard(access.Auth, access.OpLogin)).Post("/login", authHandler.HandleLogin)
			r.With(guard(access.Auth, access.OpMe)).Get("/me", authHandler.HandleMe)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.With(guard(access.Users, access.OpRead)).Get("/", userHandler.HandleGet)
			r.With(guard(access.Users, access.OpUpdate)).Put("/", userHandler.HandleUpdate)
			r.With(guard(access.Users, access.OpChangePassword)).Put("/password", userHandler.HandleChangePassword)
			r.With(guard(access.Users, access.OpDeactivate)).Put("/deactivate", userHandler.HandleDeactivate)
		})

		mountResource(r, access.Notes, guard,
			NewResourceHandler[model.Note, model.NoteInput]("notes", "Note", d.Notes))
		mountResource(r, access.Assignments, guard,
			NewResourceHandler[model.Assignment, model.AssignmentInput]("assignments", "Assignment", d.Assignments))
		mountResource(r, access.OldQuestions, guard,
			NewResourceHandler[model.OldQuestion, model.OldQuestionInput]("old_questions", "Old question", d.OldQuestions))
		mountResource(r, access.Blogs, guard,
			NewResourceHandler[model.Blog, model.BlogInput]("blogs", "Blog", d.Blogs))
	})

	return r
}

func mountResource[T any, I service.Input](
	r chi.Router,
	res access.Resource,
	guard func(access.Resource, access.Op) func(http.Handler) http.Handler,
	h *ResourceHandler[T, I],
) {
	r.Route("/"+string(res), func(r chi.Router) {
		r.With(guard(res, access.OpList)).Get("/", h.HandleList)
		r.With(guard(res, access.OpCreate)).Post("/", h.HandleCreate)
		r.With(guard(res, access.OpRead)).Get("/{id}", h.HandleGet)
		r.With(guard(res, access.OpUpdate)).Put("/{id}", h.HandleUpdate)
		r.With(guard(res, access.OpDelete)).Delete("/{id}", h.HandleDelete)
	})
}
