package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/finboard-go/internal/config"
	"github.com/cloud-ru/finboard-go/internal/listing"
	"github.com/cloud-ru/finboard-go/internal/logging"
	"github.com/cloud-ru/finboard-go/internal/service"
	"github.com/cloud-ru/finboard-go/web"
)

var pages = []string{"home.html", "overview.html", "calculator.html"}

// Server serves the dashboard pages and the JSON API
type Server struct {
	cfg         *config.Config
	log         *logrus.Entry
	tracer      trace.Tracer
	catalog     *listing.Catalog
	projections *service.ProjectionService

	templates map[string]*template.Template
	cards     []homeCard
	router    *mux.Router
}

// New parses the embedded templates and registers every route
func New(cfg *config.Config, log logrus.FieldLogger, tracer trace.Tracer, catalog *listing.Catalog, projections *service.ProjectionService) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		log:         logging.Component(log, "server"),
		tracer:      tracer,
		catalog:     catalog,
		projections: projections,
		templates:   make(map[string]*template.Template, len(pages)),
	}

	for _, page := range pages {
		t, err := template.ParseFS(web.TemplatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		s.templates[page] = t
	}

	cards, err := renderCards(homeCards)
	if err != nil {
		return nil, err
	}
	s.cards = cards

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	chain := []mux.MiddlewareFunc{s.withRequestID, s.withTracing, s.withMetrics, s.withLogging, withSecurityHeaders}
	r.Use(chain...)

	// mux skips middleware for unmatched requests
	r.NotFoundHandler = wrap(http.NotFoundHandler(), chain)
	r.MethodNotAllowedHandler = wrap(http.HandlerFunc(methodNotAllowed), chain)

	r.PathPrefix("/static/").Handler(staticHandler()).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	for _, k := range listing.Kinds {
		r.HandleFunc("/"+k.Name, s.handleOverview(k)).Methods(http.MethodGet)
	}
	r.HandleFunc("/calculator", s.handleCalculator).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/projection", s.handleProjectionAPI).Methods(http.MethodGet)
	api.HandleFunc("/listings/{kind}", s.handleListingsAPI).Methods(http.MethodGet)

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.Handle(s.cfg.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i].Middleware(h)
	}
	return h
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.cfg.Addr(),
		Handler:        s.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.WithField("addr", srv.Addr).Info("Starting finboard server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		s.log.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}

type navItem struct {
	Name   string
	Path   string
	Active bool
}

type pageData struct {
	Title   string
	Nav     []navItem
	Content any
}

var navRoutes = []navItem{
	{Name: "Home", Path: "/"},
	{Name: "Stocks", Path: "/stock"},
	{Name: "ETFs", Path: "/etf"},
	{Name: "Calculator", Path: "/calculator"},
}

// navigation marks the sidebar entry for path. Home only matches exactly,
// other entries also match their sub-paths.
func navigation(path string) []navItem {
	items := make([]navItem, len(navRoutes))
	for i, item := range navRoutes {
		if item.Path == "/" {
			item.Active = path == "/"
		} else {
			item.Active = path == item.Path || strings.HasPrefix(path, item.Path+"/")
		}
		items[i] = item
	}
	return items
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	t, ok := s.templates[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	data := pageData{Title: title, Nav: navigation(r.URL.Path), Content: content}
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.WithError(err).WithField("page", page).Error("Failed to render template")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func staticHandler() http.Handler {
	files := http.FileServer(http.FS(web.StaticFS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
