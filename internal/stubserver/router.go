// Package stubserver is the in-tree implementation of the schedule REST
// backend. It exists for local development and for the integration tests
// that drive the real client against real HTTP.
package stubserver

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokens *TokenService,
	authHandler *AuthHandler,
	scheduleHandler *ScheduleHandler,
	departmentHandler *DepartmentHandler,
	profileHandler *ProfileHandler,
	requestHandler *RequestHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftdesk-stub"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokens.JWTAuth()))
		r.Use(AuthRequired)

		r.Get("/schedule/me", scheduleHandler.MyMonth)
		r.Put("/schedule/day/me", scheduleHandler.UpsertMyDay)
		r.Delete("/schedule/day/me", scheduleHandler.DeleteMyDay)

		r.Get("/employee/profile/me", profileHandler.Me)

		r.Post("/service-requests", requestHandler.Create)
		r.Get("/service-requests/me", requestHandler.Mine)

		// Manager only
		r.Group(func(r chi.Router) {
			r.Use(ManagerOnly)

			r.Get("/schedule/{userID}", scheduleHandler.EmployeeMonth)
			r.Put("/schedule/day/{userID}", scheduleHandler.UpsertEmployeeDay)
			r.Delete("/schedule/day/{userID}", scheduleHandler.DeleteEmployeeDay)
			r.Put("/schedule/range/{userID}", scheduleHandler.UpsertEmployeeRange)

			r.Get("/department/employees", departmentHandler.Employees)

			r.Get("/service-requests", requestHandler.All)
			r.Patch("/service-requests/{requestID}", requestHandler.UpdateStatus)

			r.Get("/employee/profile/{userID}", profileHandler.Get)
			r.Put("/employee/profile/add/{userID}", profileHandler.Upsert)
		})
	})

	return r
}

// Server bundles the storage, the token service and the router.
type Server struct {
	Store   *Storage
	Tokens  *TokenService
	Handler http.Handler
}

func New(dbPath, jwtSecret, tokenExpiration string) (*Server, error) {
	store, err := OpenStorage(dbPath)
	if err != nil {
		return nil, err
	}
	tokens := NewTokenService(jwtSecret, tokenExpiration)
	router := NewRouter(
		tokens,
		NewAuthHandler(store, tokens),
		NewScheduleHandler(store),
		NewDepartmentHandler(store),
		NewProfileHandler(store),
		NewRequestHandler(store),
	)
	return &Server{Store: store, Tokens: tokens, Handler: router}, nil
}

func (s *Server) Close() error {
	return s.Store.Close()
}
