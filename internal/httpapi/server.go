// Package httpapi exposes the interview engine over HTTP: auth,
// step-wise session endpoints, and feedback report delivery.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/prepdesk/prepdesk/internal/auth"
	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/store"
)

// Stepper advances an interview session by one step.
type Stepper interface {
	RunStep(ctx context.Context, state interview.State, firstCall bool) interview.State
}

// SessionStore persists session state between steps.
type SessionStore interface {
	Save(ctx context.Context, state interview.State) error
	Load(ctx context.Context, sessionID string) (*interview.State, error)
	AppendAttempt(ctx context.Context, a store.Attempt) error
}

// UserStore manages user accounts.
type UserStore interface {
	Create(ctx context.Context, u store.User) (int64, error)
	ByEmail(ctx context.Context, email string) (*store.User, error)
	ByID(ctx context.Context, id int64) (*store.User, error)
}

// ReportSender emails a rendered report. A nil sender disables email
// delivery.
type ReportSender interface {
	SendReport(to, subject string, pdf []byte) error
}

// Server is the HTTP front end.
type Server struct {
	engine   Stepper
	sessions SessionStore
	users    UserStore
	tokens   *auth.TokenIssuer
	mailer   ReportSender
	logger   *slog.Logger

	router chi.Router
}

// Options configures optional Server collaborators.
type Options struct {
	Mailer      ReportSender
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewServer wires the router.
func NewServer(engine Stepper, sessions SessionStore, users UserStore, tokens *auth.TokenIssuer, opts Options) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		users:    users,
		tokens:   tokens,
		mailer:   opts.Mailer,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/interview", s.handleInterview)
			r.Post("/interview/report", s.handleReport)
		})
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
