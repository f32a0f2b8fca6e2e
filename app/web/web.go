// Package web implements the local HTTP front-end for staffdb
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/jmoiron/sqlx"
)

// Connector provides the shared database handle
type Connector interface {
	Connection(ctx context.Context) (*sqlx.DB, error)
}

// Server represents the web server
type Server struct {
	conn        Connector
	version     string
	insertLimit *limiter.Limiter // rate limit for employee inserts
}

// Config holds server configuration
type Config struct {
	Connector  Connector
	Version    string
	InsertRate float64 // max inserts per second per client, defaults to 10
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Connector == nil {
		return nil, fmt.Errorf("web server initialization failed: Connector is required")
	}

	rate := cfg.InsertRate
	if rate <= 0 {
		rate = 10
	}
	lmt := tollbooth.NewLimiter(rate, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})

	return &Server{conn: cfg.Connector, version: cfg.Version, insertLimit: lmt}, nil
}

// Run starts the web server and blocks until ctx is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(100),
		rest.AppInfo("staffdb", "umputun", s.version),
		rest.Ping,
		rest.SizeLimit(64*1024),
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /connection", s.handleConnection)
		api.HandleFunc("POST /schema", s.handleSchema)
		api.HandleFunc("GET /employees", s.handleSearchEmployees)
		api.With(tollbooth.HTTPMiddleware(s.insertLimit)).HandleFunc("POST /employees", s.handleAddEmployee)
	})

	return router
}
