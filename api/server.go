package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-admin/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(backend Backend) (Server, error) {
	if backend.Gateway == nil || backend.Source == nil || backend.Parser == nil {
		return Server{}, fmt.Errorf("api: gateway, source and session parser are required")
	}
	env := config.Environ()

	port := backend.Port
	if port == "" {
		port = "8080"
	}
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(backend, withEnv(env), withStartupTime(startupTime))

	// Syncs post whole collections, so the write timeout stays generous
	readTimeout := env.Seconds("READ_TIMEOUT_SECONDS", 180*time.Second)
	writeTimeout := env.Seconds("WRITE_TIMEOUT_SECONDS", 180*time.Second)
	idleTimeout := env.Seconds("IDLE_TIMEOUT_SECONDS", 180*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	env         config.Env
	startupTime time.Time
	logOutput   io.Writer
}

func withEnv(env config.Env) func(*router) {
	return func(r *router) {
		r.env = env
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withLogOutput(out io.Writer) func(*router) {
	return func(r *router) {
		r.logOutput = out
	}
}

func newRouter(backend Backend, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now(), logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	if router.env.Bool("HTTP_REQUEST_LOG", true) {
		chiRouter.Use(ColoredHTTPLoggingMiddleware(router.logOutput))
	}

	acceptedOrigins := backend.AcceptedOrigins
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(backend, router.startupTime)
	authMiddleware := newAuthMiddleware(backend.Parser)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// Uptime is the time since NewServer.
func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}
