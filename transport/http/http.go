package http

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sage/config"
	"sage/shared/constant"
	"sage/transport/http/middleware"
	"sage/transport/http/response"
	"sage/transport/http/router"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	State    ServerState
	app      middleware.AppMiddleware
	authRole middleware.AuthRole
	mux      chi.Router
	server   *http.Server
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, authRole middleware.AuthRole) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		app:      app,
		authRole: authRole,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady

	h.server = &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	if h.Config.App.CORS.Enable {
		corsConfig := h.Config.App.CORS

		h.mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	h.mux.Use(h.app.Tracing)
	h.mux.Use(h.app.RateLimit())
	h.mux.Use(h.authRole.APIKey)
	h.mux.Use(h.authRole.Auth)
	h.mux.Use(h.authRole.RBAC)

	h.mux.Get("/health", h.healthCheck)

	h.Router.SetupRoutes(h.mux)
}

// healthCheck reports readiness. During the shutdown grace period it answers
// with a preparing-shutdown status so load balancers drain the instance.
func (h *HTTP) healthCheck(w http.ResponseWriter, r *http.Request) {
	switch h.State {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
