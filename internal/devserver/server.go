// Package devserver is an in-memory implementation of the admin backend API.
// It exists so the admin client can be run and tested end to end without the
// real service. It is not meant for production use.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/waitlistadmin/internal/devserver/config"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// requestValidator plugs go-playground/validator into echo.
type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

type Server struct {
	cfg       *config.Config
	logger    logging.Logger
	store     *Store
	echo      *echo.Echo
	jwtSecret []byte
}

// New builds the server, seeds the store and registers the routes.
func New(cfg *config.Config, logger logging.Logger) (*Server, error) {
	store := NewStore(cfg.BcryptCost, time.Now)
	if _, err := store.AddAdmin(cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	Seed(store)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}

	s := &Server{
		cfg:       cfg,
		logger:    logger.With("module", "devserver"),
		store:     store,
		echo:      e,
		jwtSecret: []byte(cfg.JWTSecret),
	}
	e.HTTPErrorHandler = s.errorHandler
	e.Use(s.requestLogger)
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	api := s.echo.Group(s.cfg.BasePath)

	api.POST("/admin/login-admin", s.loginAdmin)
	api.POST("/admin/verify-admin", s.verifyAdmin)
	api.POST("/add_to_waitlist", s.addToWaitlist)

	// Guarded per route: unknown paths under the base path must stay 404.
	authed := s.requireAdmin
	api.POST("/validate-token", s.validateToken, authed)
	api.POST("/admin/update-profile", s.updateProfile, authed)
	api.POST("/admin/create-admin", s.createAdmin, authed)
	api.POST("/admin/fetch-admins", s.fetchAdmins, authed)
	api.GET("/get_waitlist", s.getWaitlist, authed)
	api.GET("/usage-tracking/get-tracking-data", s.trackingData, authed)
	api.GET("/user-analytics", s.userAnalytics, authed)
	api.GET("/fetch-users", s.fetchUsers, authed)
	api.GET("/fetch-user/:id", s.fetchUser, authed)
	api.POST("/create-user", s.createUser, authed)
	api.POST("/update-user-verification", s.updateUserVerification, authed)
}

// Handler exposes the routes, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Store gives access to the backing data.
func (s *Server) Store() *Store {
	return s.store
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(sctx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.Addr, "base_path", s.cfg.BasePath)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
